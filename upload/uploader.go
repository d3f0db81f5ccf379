// Package upload pushes the finished video to YouTube via the Data API
// v3 using a refresh-token OAuth2 flow.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/types"
)

// Uploader handles YouTube video upload
type Uploader struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates a new Uploader
func New(cfg *config.Config) *Uploader {
	return &Uploader{cfg: cfg, log: logging.WithComponent("upload")}
}

// Run uploads the video with its metadata and returns the video id and URL
func (u *Uploader) Run(ctx context.Context, videoFile string, metadata *types.VideoMetadata) (string, string, error) {
	client, err := u.oauthClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("youtube auth: %w", err)
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("youtube service: %w", err)
	}

	snippet := &youtube.VideoSnippet{
		Title:                metadata.Title,
		Description:          metadata.Description,
		Tags:                 metadata.Tags,
		CategoryId:           metadata.CategoryID,
		DefaultLanguage:      u.cfg.Upload.DefaultLanguage,
		DefaultAudioLanguage: u.cfg.Upload.DefaultLanguage,
	}
	status := &youtube.VideoStatus{
		PrivacyStatus:           metadata.Visibility,
		SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
	}
	if metadata.ScheduledTimeUTC != "" && metadata.Visibility == "public" {
		// scheduling requires the video to start private
		status.PrivacyStatus = "private"
		status.PublishAt = metadata.ScheduledTimeUTC
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	u.log.Info().Str("title", metadata.Title).Msg("uploading video")
	call := svc.Videos.Insert([]string{"snippet", "status"}, &youtube.Video{Snippet: snippet, Status: status})
	call.NotifySubscribers(u.cfg.Upload.NotifySubscribers)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	videoURL := "https://www.youtube.com/watch?v=" + uploaded.Id
	u.log.Info().Str("video_id", uploaded.Id).Str("url", videoURL).Msg("upload complete")
	return uploaded.Id, videoURL, nil
}

// oauthClient creates an OAuth2 HTTP client using env credentials
func (u *Uploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}
	return &http.Client{
		Transport: &oauth2.Transport{Source: conf.TokenSource(ctx, token)},
	}, nil
}

// LogUpload saves the upload result to the logs directory
func LogUpload(videoID, videoURL, videoFile, logsDir string, metadata *types.VideoMetadata) error {
	entry := map[string]any{
		"video_id":      videoID,
		"video_url":     videoURL,
		"title":         metadata.Title,
		"scheduled_utc": metadata.ScheduledTimeUTC,
		"uploaded_at":   time.Now().UTC().Format(time.RFC3339),
		"video_file":    videoFile,
	}
	data, _ := json.MarshalIndent(entry, "", "  ")
	path := filepath.Join(logsDir, "upload_"+time.Now().Format("20060102_150405")+".json")
	return os.WriteFile(path, data, 0644)
}
