// Package logging installs the process-wide slog default. Records go through
// a charmbracelet/log handler: to a dated file under ~/.reel/logs while the
// interactive UI owns the terminal, or to stderr for one-shot commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the active logger, nil until Init or InitFile runs.
	Logger *log.Logger

	logFile *os.File
)

// Init logs to w. Debug enables debug records; otherwise only warnings and
// errors are written.
func Init(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          "reel",
	})
	slog.SetDefault(slog.New(Logger))
	return Logger
}

// InitFile logs to ~/.reel/logs/reel-YYYY-MM-DD.log. dir overrides the
// directory when non-empty.
func InitFile(dir string, debug bool) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".reel", "logs")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("reel-%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f

	Init(f, debug).Info("reel started", "pid", os.Getpid())
	return path, nil
}

// Close flushes and closes the log file, if one is open.
func Close() {
	if Logger != nil && logFile != nil {
		Logger.Info("reel shutting down")
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// WithPrefix returns a logger with a prefix.
func WithPrefix(prefix string) *log.Logger {
	if Logger != nil {
		return Logger.WithPrefix(prefix)
	}
	return log.Default().WithPrefix(prefix)
}
