// Package audio generates the narration audio through an external TTS
// command and measures its real duration, which becomes the
// authoritative timeline length for the render.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/types"
)

// Generator handles TTS audio generation
type Generator struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates a new Generator
func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, log: logging.WithComponent("audio")}
}

// Run synthesizes the full narration into outputDir and returns the
// audio path plus its measured duration in seconds. Set TTS_COMMAND to
// a binary accepting --text/--output; edge-tts is the fallback.
func (g *Generator) Run(ctx context.Context, script *types.Script, outputDir string) (string, float64, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("create audio dir: %w", err)
	}

	outFile := filepath.Join(outputDir, "narration.mp3")
	if err := g.synthesize(ctx, script.FullScript, outFile); err != nil {
		return "", 0, fmt.Errorf("tts: %w", err)
	}

	duration, err := probeDuration(ctx, outFile)
	if err != nil {
		return "", 0, fmt.Errorf("measure audio duration: %w", err)
	}

	g.log.Info().Str("file", outFile).Float64("duration_sec", duration).Msg("narration ready")
	return outFile, duration, nil
}

func (g *Generator) synthesize(ctx context.Context, text, outFile string) error {
	ttsCmd := strings.TrimSpace(os.Getenv("TTS_COMMAND"))
	if ttsCmd == "" {
		if _, err := exec.LookPath("edge-tts"); err != nil {
			return fmt.Errorf("no TTS engine: set TTS_COMMAND or install edge-tts")
		}
		ttsCmd = "edge-tts"
	}

	voice := g.cfg.Audio.Voice
	if voice == "" {
		voice = "es-ES-AlvaroNeural"
	}

	var build func() *exec.Cmd
	switch {
	case ttsCmd == "edge-tts":
		build = func() *exec.Cmd {
			return exec.CommandContext(ctx, "edge-tts",
				"--voice", voice,
				"--text", text,
				"--write-media", outFile,
			)
		}
	default:
		build = func() *exec.Cmd {
			return exec.CommandContext(ctx, ttsCmd,
				"--text", text,
				"--output", outFile,
			)
		}
	}

	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		cmd := build()
		var out []byte
		out, err = cmd.CombinedOutput()
		if err == nil {
			return nil
		}
		err = fmt.Errorf("%w: %s", err, out)
		g.log.Warn().Err(err).Int("attempt", attempt).Msg("tts attempt failed")
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	return err
}

// probeDuration asks ffprobe for the exact audio length in seconds
func probeDuration(ctx context.Context, audioFile string) (float64, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioFile,
	).Output()
	if err != nil {
		return 0, err
	}
	var dur float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &dur)
	return dur, err
}
