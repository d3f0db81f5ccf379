package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
)

// ErrTimeout marks a render attempt killed by the wall-clock limit
var ErrTimeout = errors.New("render timed out")

// Invocation describes one render-engine run
type Invocation struct {
	Composition string
	PropsFile   string
	OutputPath  string
	CRF         int
	Timeout     time.Duration
}

// Executor invokes the external render engine as a subprocess, parses
// its stdout for progress and enforces a wall-clock timeout.
type Executor struct {
	cfg config.Render
	log zerolog.Logger

	// Command is the engine launcher, "npx" unless a test stubs it.
	Command string
}

// NewExecutor creates an Executor for the configured engine directory
func NewExecutor(cfg config.Render) *Executor {
	return &Executor{
		cfg:     cfg,
		log:     logging.WithComponent("render.executor"),
		Command: "npx",
	}
}

// progress lines look like "Rendered 42%" or just "42%"
var progressRe = regexp.MustCompile(`(\d{1,3})\s*%`)

// Execute runs one render attempt. onProgress receives 0-100 as the
// engine reports frames rendered; it may be nil. A non-zero exit
// returns an error carrying the captured output, and expiry of the
// timeout kills the process and returns ErrTimeout. The timeout timer
// is released on every exit path.
func (e *Executor) Execute(ctx context.Context, inv Invocation, onProgress func(int)) error {
	ctx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	args := e.buildArgs(inv)
	e.log.Debug().Strs("args", args).Msg("invoking render engine")

	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = e.cfg.WorkingDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start render engine: %w", err)
	}

	// Scan stdout incrementally so progress reaches the status record
	// while the engine is still running.
	var tail bytes.Buffer
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		tail.WriteString(line)
		tail.WriteByte('\n')
		if m := progressRe.FindStringSubmatch(line); m != nil && onProgress != nil {
			if pct, convErr := strconv.Atoi(m[1]); convErr == nil && pct >= 0 && pct <= 100 {
				onProgress(pct)
			}
		}
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// keep draining so the engine never blocks on a full pipe
		io.Copy(io.Discard, stdout)
	}

	err = cmd.Wait()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w after %s", ErrTimeout, inv.Timeout)
	}
	if err != nil {
		return fmt.Errorf("render engine exited: %w: %s%s", err, tail.String(), stderr.String())
	}
	if scanErr != nil {
		return fmt.Errorf("read engine output: %w", scanErr)
	}
	return nil
}

func (e *Executor) buildArgs(inv Invocation) []string {
	args := []string{
		"remotion", "render",
		inv.Composition,
		inv.OutputPath,
		"--props=" + inv.PropsFile,
		"--codec=" + e.cfg.Codec,
		fmt.Sprintf("--crf=%d", inv.CRF),
		"--pixel-format=" + e.cfg.PixelFormat,
	}
	if e.cfg.GPUEnabled {
		args = append(args, "--gl=angle")
	}
	if e.cfg.Concurrency > 0 {
		args = append(args, fmt.Sprintf("--concurrency=%d", e.cfg.Concurrency))
	}
	return args
}
