package bootstrap

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/superheroes/config"
)

// switchWriter lets the log format change while loggers keep their writer.
type switchWriter struct {
	mu  sync.RWMutex
	out io.Writer
	w   io.Writer
}

func newSwitchWriter(out io.Writer) *switchWriter {
	return &switchWriter{out: out, w: out}
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

func (s *switchWriter) setFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if format == "console" {
		s.w = zerolog.ConsoleWriter{Out: s.out, TimeFormat: time.RFC3339}
		return
	}
	s.w = s.out
}

// applyLogging sets the global level and output format.
func applyLogging(w *switchWriter, cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	w.setFormat(cfg.Format)
}

// NewLogger builds a standalone logger for CLI commands.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	w := newSwitchWriter(os.Stderr)
	applyLogging(w, cfg)
	return zerolog.New(w).With().Timestamp().Logger()
}
