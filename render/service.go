// Package render turns a news script plus narration audio into a
// finished short video by driving the external render engine. The
// Service sequences staging, timing derivation, data-contract assembly
// and engine invocation under a retry policy.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"news-shorts-pipeline/assets"
	"news-shorts-pipeline/config"
	"news-shorts-pipeline/contract"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/sections"
	"news-shorts-pipeline/subtitles"
	"news-shorts-pipeline/timing"
	"news-shorts-pipeline/types"
)

// executor abstracts the engine subprocess so the retry policy can be
// tested without spawning processes
type executor interface {
	Execute(ctx context.Context, inv Invocation, onProgress func(int)) error
}

// Service is the render orchestrator. One Service owns one mutable
// status record; calls to RenderVideo on the same instance must be
// serialized by the caller. Run one Service per concurrent render.
type Service struct {
	cfg    config.Render
	stager *assets.Stager
	exec   executor
	log    zerolog.Logger

	mu        sync.Mutex
	status    types.RenderStatus
	startedAt time.Time
}

// NewService creates a Service with the default subprocess executor
func NewService(cfg config.Render) *Service {
	return &Service{
		cfg:    cfg,
		stager: assets.NewStager(cfg),
		exec:   NewExecutor(cfg),
		log:    logging.WithComponent("render"),
		status: types.RenderStatus{Phase: types.PhaseIdle},
	}
}

// Status returns an immutable snapshot of the current render progress
func (s *Service) Status() types.RenderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	if st.IsRendering {
		st.ElapsedTime = time.Since(s.startedAt)
	}
	return st
}

func (s *Service) setStatus(phase types.RenderPhase, progress int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Phase = phase
	s.status.Progress = progress
	s.status.Message = message
	s.status.IsRendering = phase != types.PhaseIdle
	s.status.ElapsedTime = time.Since(s.startedAt)
}

// RenderVideo runs the full render pipeline for one request. It never
// returns an error: every failure is normalized into a RenderResult
// with Success=false and a diagnostic message.
func (s *Service) RenderVideo(ctx context.Context, req types.RenderRequest, opts types.RenderOptions) (result types.RenderResult) {
	start := time.Now()
	s.mu.Lock()
	s.startedAt = start
	s.mu.Unlock()
	s.setStatus(types.PhasePreparing, 0, "verifying setup")

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("video_id", req.VideoID).Msg("render panicked")
			result = s.fail(start, fmt.Sprintf("internal error: %v", r))
		}
	}()

	v := s.VerifySetup()
	if !v.IsValid {
		return s.fail(start, "render engine setup invalid: "+strings.Join(v.Errors, "; "))
	}
	for _, w := range v.Warnings {
		s.log.Warn().Str("video_id", req.VideoID).Msg(w)
	}

	if req.AudioDuration < sections.MinDurationSec {
		return s.fail(start, fmt.Sprintf("audio duration %.1fs below renderable minimum %.0fs", req.AudioDuration, sections.MinDurationSec))
	}

	for _, dir := range []string{s.cfg.OutputDir, s.cfg.TempDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return s.fail(start, fmt.Sprintf("create %s: %v", dir, err))
		}
	}

	s.setStatus(types.PhasePreparing, 5, "staging assets")
	staged, err := s.stager.Stage(ctx, req)
	if err != nil {
		return s.fail(start, fmt.Sprintf("stage assets: %v", err))
	}

	// Subtitles and sections are independent derivations of the same
	// (script, duration) pair; compute them concurrently and converge
	// before contract assembly.
	s.setStatus(types.PhasePreparing, 10, "deriving timing")
	var (
		subs []types.SubtitleWord
		secs []types.VideoSection
	)
	var g errgroup.Group
	g.Go(func() error {
		subs = subtitles.Segment(req.Script, req.AudioDuration, s.cfg.FPS, s.cfg.SubtitlePadding)
		return nil
	})
	g.Go(func() error {
		var planErr error
		secs, planErr = sections.Plan(req.Script, req.Title, req.AudioDuration, s.cfg.FPS, sections.Options{
			Hook:         req.Hook,
			Body:         req.Body,
			CTA:          req.CTA,
			Opinion:      req.Opinion,
			HeroImage:    staged.HeroImage,
			ContextImage: staged.ContextImage,
			OutroImage:   staged.OutroImage,
		})
		return planErr
	})
	if err := g.Wait(); err != nil {
		return s.fail(start, fmt.Sprintf("plan sections: %v", err))
	}

	payload := contract.Build(req, staged, subs, secs, s.cfg.FPS)
	propsFile := filepath.Join(s.cfg.TempDir, req.VideoID+"_props.json")
	if err := contract.WriteFile(payload, propsFile); err != nil {
		return s.fail(start, fmt.Sprintf("persist data contract: %v", err))
	}

	inv := s.buildInvocation(req, opts, propsFile)
	maxRetries := s.cfg.MaxRetries
	if opts.MaxRetries > 0 {
		maxRetries = opts.MaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		s.setStatus(types.PhaseRendering, 0, fmt.Sprintf("rendering (attempt %d/%d)", attempt, maxRetries))
		s.log.Info().Str("video_id", req.VideoID).Int("attempt", attempt).Int("max", maxRetries).Msg("render attempt")

		lastErr = s.renderOnce(ctx, inv)
		if lastErr == nil {
			s.setStatus(types.PhaseFinalizing, 100, "collecting result")
			res := s.buildResult(req, inv, start, attempt)
			s.setStatus(types.PhaseIdle, 100, "done")
			s.log.Info().Str("video_id", req.VideoID).Str("output", inv.OutputPath).Dur("render_time", res.RenderTime).Msg("render complete")
			return res
		}

		s.log.Warn().Err(lastErr).Str("video_id", req.VideoID).Int("attempt", attempt).Msg("render attempt failed")
		if attempt < maxRetries {
			select {
			case <-time.After(s.cfg.RetryDelay()):
			case <-ctx.Done():
				return s.fail(start, fmt.Sprintf("render cancelled: %v", ctx.Err()))
			}
		}
	}

	return s.fail(start, fmt.Sprintf("render failed after %d attempts: %v", maxRetries, lastErr))
}

// renderOnce runs a single engine invocation and validates that the
// promised output file actually exists. An exit code of zero with no
// file on disk is still a failure.
func (s *Service) renderOnce(ctx context.Context, inv Invocation) error {
	err := s.exec.Execute(ctx, inv, func(pct int) {
		s.setStatus(types.PhaseRendering, pct, "rendering")
	})
	if err != nil {
		return err
	}

	info, statErr := os.Stat(inv.OutputPath)
	if statErr != nil {
		return fmt.Errorf("engine reported success but output %s is missing", inv.OutputPath)
	}
	if info.Size() == 0 {
		return fmt.Errorf("engine reported success but output %s is empty", inv.OutputPath)
	}
	return nil
}

func (s *Service) buildInvocation(req types.RenderRequest, opts types.RenderOptions, propsFile string) Invocation {
	comp := s.cfg.Composition
	if opts.Preview {
		comp = s.cfg.PreviewComp
	}

	name := opts.OutputName
	if name == "" {
		name = req.VideoID + ".mp4"
	}

	timeout := s.cfg.Timeout()
	if opts.TimeoutSec > 0 {
		timeout = time.Duration(opts.TimeoutSec) * time.Second
	}

	return Invocation{
		Composition: comp,
		PropsFile:   propsFile,
		OutputPath:  filepath.Join(s.cfg.OutputDir, name),
		CRF:         s.crfFor(opts.Quality),
		Timeout:     timeout,
	}
}

func (s *Service) crfFor(quality string) int {
	switch quality {
	case "draft":
		return 28
	case "high":
		return 16
	default:
		return s.cfg.CRF
	}
}

func (s *Service) buildResult(req types.RenderRequest, inv Invocation, start time.Time, attempts int) types.RenderResult {
	var size int64
	if info, err := os.Stat(inv.OutputPath); err == nil {
		size = info.Size()
	}
	return types.RenderResult{
		Success:       true,
		VideoPath:     inv.OutputPath,
		DurationSec:   req.AudioDuration,
		FileSizeBytes: size,
		FileSize:      formatBytes(size),
		RenderTime:    time.Since(start),
		Metadata: types.RenderMetadata{
			Composition: inv.Composition,
			Width:       s.cfg.Width,
			Height:      s.cfg.Height,
			FPS:         s.cfg.FPS,
			Codec:       s.cfg.Codec,
			CRF:         inv.CRF,
			TotalFrames: timing.SecondsToFrames(req.AudioDuration, s.cfg.FPS),
			StartedAt:   start.UTC().Format(time.RFC3339),
			FinishedAt:  time.Now().UTC().Format(time.RFC3339),
			Attempts:    attempts,
		},
	}
}

func (s *Service) fail(start time.Time, msg string) types.RenderResult {
	s.setStatus(types.PhaseIdle, 0, msg)
	s.log.Error().Str("error", msg).Msg("render failed")
	return types.RenderResult{
		Success:    false,
		RenderTime: time.Since(start),
		Error:      msg,
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
