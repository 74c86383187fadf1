// Package logging builds the charmbracelet/log loggers used across tileview.
//
// The terminal viewer owns stdout and the alternate screen, so it logs to a
// rotating file; the SSH server and the bench command log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/tileview/internal/config"
)

// New creates a logger writing to w at the configured level.
func New(w io.Writer, prefix string, cfg config.LogConfig) (*log.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// NewStderr creates a logger on stderr.
func NewStderr(prefix string, cfg config.LogConfig) (*log.Logger, error) {
	return New(os.Stderr, prefix, cfg)
}

// NewFile creates a logger writing to the configured rotating file. An empty
// file path discards output. The returned closer releases the file.
func NewFile(prefix string, cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	if cfg.File == "" {
		l, err := New(io.Discard, prefix, cfg)
		return l, nopCloser{}, err
	}

	path := config.ExpandPath(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(1, cfg.MaxSizeMB),
		MaxBackups: max(0, cfg.MaxBackups),
	}

	l, err := New(sink, prefix, cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, sink, nil
}

// ParseLevel maps a config level name to a log level; empty means info.
func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
