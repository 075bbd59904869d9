package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

func parseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// NewLogger returns a logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "promptlab",
	})
	lvl, _ := parseLevel(c.Log.Level)
	logger.SetLevel(lvl)
	return logger
}

// OpenLogFile opens the configured log file for appending. Without a file
// it returns a logger sink that discards everything, so a full-screen UI
// is never written over.
func (c Config) OpenLogFile() (io.WriteCloser, error) {
	if c.Log.File == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
