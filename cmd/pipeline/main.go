package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"news-shorts-pipeline/audio"
	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/render"
	"news-shorts-pipeline/research"
	"news-shorts-pipeline/script"
	"news-shorts-pipeline/types"
	"news-shorts-pipeline/upload"
)

func main() {
	// .env for local dev; CI injects real env vars
	_ = godotenv.Load()
	logging.Setup(os.Stdout)
	log := logging.WithComponent("pipeline")

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("load config")
	}

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("create dir")
		}
	}

	runID := uuid.NewString()[:8]
	runDir := filepath.Join(cfg.Paths.Output, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("create run dir")
	}
	log.Info().Str("run_id", runID).Str("dir", runDir).Msg("pipeline starting")

	ctx := context.Background()
	state := &types.PipelineState{
		RunID:     runID,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		saveJSON(filepath.Join(runDir, "pipeline_state.json"), state)
		if state.Error != "" {
			log.Error().Str("error", state.Error).Msg("pipeline failed")
			os.Exit(1)
		}
		log.Info().Str("url", state.YouTubeURL).Msg("pipeline complete")
	}()

	// Stage 1: research
	scraper, err := research.New(cfg)
	if err != nil {
		state.Error = "research init: " + err.Error()
		return
	}
	news, err := scraper.Run(ctx)
	if err != nil {
		state.Error = "research: " + err.Error()
		return
	}
	state.News = news
	saveJSON(filepath.Join(runDir, "news.json"), news)

	// Stage 2: script
	writer := script.New(cfg)
	sc, err := writer.Run(ctx, news)
	if err != nil {
		state.Error = "script: " + err.Error()
		return
	}
	state.Script = sc
	saveJSON(filepath.Join(runDir, "script.json"), sc)

	// Stage 3: narration audio
	audioGen := audio.New(cfg)
	audioFile, duration, err := audioGen.Run(ctx, sc, filepath.Join(runDir, "audio"))
	if err != nil {
		state.Error = "audio: " + err.Error()
		return
	}
	state.AudioFile = audioFile

	// Stage 4: render
	heroImage := ""
	if len(news.ImageURLs) > 0 {
		heroImage = news.ImageURLs[0]
	}
	req := types.RenderRequest{
		VideoID:       runID,
		Title:         sc.Title,
		Script:        sc.FullScript,
		Hook:          sc.Hook,
		Body:          sc.Body,
		CTA:           sc.CTA,
		Opinion:       sc.Impact,
		AudioPath:     audioFile,
		ImagePath:     heroImage,
		AudioDuration: duration,
		Topic:         news.Topic,
		Company:       news.Company,
		NewsSource:    news.Source,
		NewsType:      news.NewsType,
	}
	svc := render.NewService(cfg.Render)
	result := svc.RenderVideo(ctx, req, types.RenderOptions{})
	state.Render = &result
	saveJSON(filepath.Join(runDir, "render_result.json"), result)
	if !result.Success {
		state.Error = "render: " + result.Error
		return
	}

	// Stage 5: upload
	meta := upload.NewGenerator(cfg).Generate(ctx, news, sc)
	state.Metadata = meta
	saveJSON(filepath.Join(runDir, "metadata.json"), meta)

	uploader := upload.New(cfg)
	videoID, videoURL, err := uploader.Run(ctx, result.VideoPath, meta)
	if err != nil {
		state.Error = "upload: " + err.Error()
		return
	}
	state.YouTubeID = videoID
	state.YouTubeURL = videoURL
	_ = upload.LogUpload(videoID, videoURL, result.VideoPath, cfg.Paths.Logs, meta)
}

func saveJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}
