package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	base zerolog.Logger
)

// Setup initialises the global zerolog logger exactly once. Level comes
// from LOG_LEVEL when set, defaulting to info.
func Setup(out io.Writer) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			if parsed, err := zerolog.ParseLevel(env); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		if out == nil {
			out = os.Stdout
		}
		base = zerolog.New(out).With().Timestamp().Logger()
	})
}

// Base returns the configured base logger instance
func Base() zerolog.Logger {
	Setup(nil)
	return base
}

// WithComponent returns a child logger annotated with the given component name
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
