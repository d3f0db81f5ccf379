// Package contract assembles and persists the JSON payload consumed by
// the external render engine. The payload is write-once per render
// attempt and fully reconstructible from its inputs.
package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"news-shorts-pipeline/assets"
	"news-shorts-pipeline/timing"
	"news-shorts-pipeline/types"
)

// The single visual theme the engine ships with. Not user-configurable.
var defaultStyle = types.ContractStyle{
	Theme:           "dark-news",
	PrimaryColor:    "#0f1115",
	AccentColor:     "#e63946",
	ShowSubtitles:   true,
	ShowProgressBar: true,
	Effects:         true,
}

// Build combines the request, staged assets and derived timing into the
// full data contract. Pure assembly, no I/O; two calls with identical
// inputs differ only in the generatedAt timestamp.
func Build(req types.RenderRequest, staged *assets.Staged, subs []types.SubtitleWord, secs []types.VideoSection, fps int) *types.RenderDataContract {
	return &types.RenderDataContract{
		Meta: types.ContractMeta{
			VideoID:          req.VideoID,
			Title:            req.Title,
			Topic:            req.Topic,
			Source:           req.NewsSource,
			Company:          req.Company,
			NewsType:         req.NewsType,
			DurationInFrames: timing.SecondsToFrames(req.AudioDuration, fps),
			FPS:              fps,
			GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		},
		Content: types.ContractContent{
			Hook:       contentFor(secs, "hook"),
			Headline:   contentFor(secs, "headline"),
			Body:       contentFor(secs, "main"),
			Impact:     contentFor(secs, "impact"),
			CTA:        contentFor(secs, "outro"),
			FullScript: req.Script,
		},
		Assets: types.ContractAssets{
			AudioPath:     staged.AudioPath,
			AudioDuration: req.AudioDuration,
			HeroImage:     staged.HeroImage,
			ContextImage:  staged.ContextImage,
			OutroImage:    staged.OutroImage,
			CompanyLogo:   staged.CompanyLogo,
		},
		Subtitles: subs,
		Sections:  secs,
		Style:     defaultStyle,
	}
}

// WriteFile persists the contract as indented JSON at path, creating
// parent directories as needed.
func WriteFile(c *types.RenderDataContract, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create contract dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contract: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write contract: %w", err)
	}
	return nil
}

func contentFor(secs []types.VideoSection, name string) string {
	for _, s := range secs {
		if s.Name == name {
			return s.Content
		}
	}
	return ""
}
