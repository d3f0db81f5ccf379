// Package assets makes the media a render needs available as local
// files under the engine-readable staging directory.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/types"
)

// Fixed branding assets shipped with the render engine; never staged
// per request.
const (
	OutroImage       = "branding/outro.png"
	PlaceholderImage = "branding/placeholder.jpg"
)

// ErrUnreachable marks a source that could not be fetched or copied
var ErrUnreachable = errors.New("asset source unreachable")

// Staged holds the resolved local paths for one render
type Staged struct {
	AudioPath     string
	HeroImage     string
	ContextImage  string
	OutroImage    string
	CompanyLogo   string
	ImageDegraded bool
}

// Stager copies or downloads request media into the staging directory,
// naming files by video id so concurrent renders of different videos
// never collide.
type Stager struct {
	cfg        config.Render
	httpClient *http.Client
	log        zerolog.Logger
}

// NewStager creates a new Stager
func NewStager(cfg config.Render) *Stager {
	return &Stager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// one hop is enough for CDN-style redirects
				if len(via) > 1 {
					return fmt.Errorf("too many redirects fetching %s", req.URL)
				}
				return nil
			},
		},
		log: logging.WithComponent("assets"),
	}
}

// Stage resolves the request's audio and hero image. A missing or
// unreachable audio source is fatal; the image degrades to the bundled
// placeholder since the render can survive without it.
func (s *Stager) Stage(ctx context.Context, req types.RenderRequest) (*Staged, error) {
	if err := os.MkdirAll(s.cfg.StagingDir, 0755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	audioPath, err := s.stageOne(ctx, req.AudioPath, s.stagedPath(req.VideoID, "audio", req.AudioPath, ".mp3"))
	if err != nil {
		return nil, fmt.Errorf("stage audio: %w", err)
	}

	heroPath, err := s.stageOne(ctx, req.ImagePath, s.stagedPath(req.VideoID, "hero", req.ImagePath, ".jpg"))
	degraded := false
	if err != nil {
		s.log.Warn().Err(err).Str("video_id", req.VideoID).Msg("hero image unavailable, using placeholder")
		heroPath = PlaceholderImage
		degraded = true
	}

	return &Staged{
		AudioPath:     audioPath,
		HeroImage:     heroPath,
		ContextImage:  heroPath,
		OutroImage:    OutroImage,
		CompanyLogo:   s.logoFor(req.Company),
		ImageDegraded: degraded,
	}, nil
}

// logoFor returns the bundled logo path for companies the engine has
// branding for, empty otherwise.
func (s *Stager) logoFor(company string) string {
	if company == "" {
		return ""
	}
	path := filepath.Join(s.cfg.WorkingDir, "public", "branding", "logos",
		strings.ToLower(strings.ReplaceAll(company, " ", "-"))+".png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// stagedPath builds the deterministic destination name for one asset,
// keeping the source extension when it has one.
func (s *Stager) stagedPath(videoID, kind, source, fallbackExt string) string {
	ext := fallbackExt
	if e := filepath.Ext(strings.SplitN(source, "?", 2)[0]); e != "" {
		ext = e
	}
	return filepath.Join(s.cfg.StagingDir, fmt.Sprintf("%s_%s%s", videoID, kind, ext))
}

func (s *Stager) stageOne(ctx context.Context, source, dest string) (string, error) {
	switch {
	case source == "":
		return "", fmt.Errorf("%w: empty source", ErrUnreachable)
	case isRemote(source):
		if err := s.download(ctx, source, dest); err != nil {
			return "", err
		}
	default:
		if err := copyFile(source, dest); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
		}
	}
	return dest, nil
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// download fetches a remote asset to dest, removing any partial file on
// failure so a retry never sees a truncated asset.
func (s *Stager) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUnreachable, rawURL, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("%w: download %s: %v", ErrUnreachable, rawURL, err)
	}
	return f.Close()
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
