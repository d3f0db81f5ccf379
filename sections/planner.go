// Package sections allocates the five narrative stages of a news short
// (hook, headline, main, impact, outro) onto the frame timeline and
// pulls each stage's text out of the full narration.
package sections

import (
	"fmt"
	"math"

	"news-shorts-pipeline/timing"
	"news-shorts-pipeline/types"
)

// MinDurationSec is the shortest audio the proportional allocation can
// cover. Below this the fixed hook/headline/impact caps eat the whole
// timeline and the outro remainder goes negative, so shorter requests
// are rejected before planning.
const MinDurationSec = 21.0

// Options carries explicit content overrides and the image reference
// assigned to each stage. Empty override fields fall back to the
// extraction heuristics on the full script.
type Options struct {
	Hook    string
	Body    string
	CTA     string
	Opinion string

	HeroImage    string
	ContextImage string
	OutroImage   string
}

const defaultCTA = "Sígueme para más noticias en 60 segundos."

// Plan splits the timeline into the five fixed sections. Durations are
// proportional to the audio length with caps on the short stages; the
// outro takes whatever remains. The returned ranges are contiguous,
// non-overlapping and span [0, SecondsToFrames(durationSec, fps))
// exactly.
func Plan(script, title string, durationSec float64, fps int, opts Options) ([]types.VideoSection, error) {
	outroSec := outroSeconds(durationSec)
	if outroSec < 0 {
		return nil, fmt.Errorf("audio too short to plan sections: %.1fs (minimum %.0fs)", durationSec, MinDurationSec)
	}

	hook := opts.Hook
	if hook == "" {
		hook = ExtractHook(script)
	}
	body := opts.Body
	if body == "" {
		body = ExtractBody(script)
	}
	impact := opts.Opinion
	if impact == "" {
		impact = ExtractImpact(script)
	}
	cta := opts.CTA
	if cta == "" {
		cta = defaultCTA
	}

	type stage struct {
		name    string
		seconds float64
		content string
		image   string
		effects types.SectionEffects
	}
	stages := []stage{
		{"hook", math.Min(8, durationSec*0.15), hook, opts.HeroImage, types.SectionEffects{Zoom: 1.15, Glow: true}},
		{"headline", math.Min(4, durationSec*0.07), title, opts.HeroImage, types.SectionEffects{Zoom: 1.05}},
		{"main", durationSec * 0.55, body, opts.HeroImage, types.SectionEffects{Zoom: 1.08, Parallax: true}},
		{"impact", math.Min(5, durationSec*0.09), impact, opts.ContextImage, types.SectionEffects{Zoom: 1.1, Blur: 1.5, Glow: true}},
		{"outro", outroSec, cta, opts.OutroImage, types.SectionEffects{Blur: 3}},
	}

	totalFrames := timing.SecondsToFrames(durationSec, fps)
	out := make([]types.VideoSection, 0, len(stages))
	cursor := 0.0
	for _, s := range stages {
		start := timing.SecondsToFrames(cursor, fps)
		cursor += s.seconds
		end := timing.SecondsToFrames(cursor, fps)
		if s.name == "outro" {
			// Pinned so float rounding in the cursor can never leave a
			// gap at the end of the timeline.
			end = totalFrames
		}
		out = append(out, types.VideoSection{
			Name:            s.name,
			StartFrame:      start,
			EndFrame:        end,
			DurationSeconds: s.seconds,
			Content:         s.content,
			Image:           s.image,
			Effects:         s.effects,
		})
	}
	return out, nil
}

func outroSeconds(d float64) float64 {
	return d - math.Min(8, d*0.15) - math.Min(4, d*0.07) - d*0.55 - math.Min(5, d*0.09)
}
