// Package log configures the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	charmlog "charm.land/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup routes slog to a rotating JSON log file. It is used while the TUI
// owns the terminal. Only the first call has an effect.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // Max size in MB
			MaxBackups: 0,  // Number of backups
			MaxAge:     30, // Days
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// SetupConsole routes slog to w with human readable output. Info messages
// are hidden unless debug is set so that command output stays clean. Only
// the first call to Setup or SetupConsole has an effect.
func SetupConsole(w io.Writer, debug bool) {
	initOnce.Do(func() {
		level := charmlog.WarnLevel
		if debug {
			level = charmlog.DebugLevel
		}

		logger := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "pkcegen",
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// Initialized reports whether logging has been configured.
func Initialized() bool {
	return initialized.Load()
}
