// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/nbup/nbup/internal/style"
)

// Setup installs a tint handler on stderr as the default slog logger.
// verbosity follows the -v count flag: 0 warns only, 1 adds info, 2+ debug.
func Setup(verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !style.HasColor(),
	})
	slog.SetDefault(slog.New(handler))
}
