package goggles

import (
	"log/slog"

	"github.com/gogpu/goggles/font"
)

// SetLogger configures the logger shared by goggles and the font package.
// By default nothing is logged. Pass nil to restore silent output.
// SetLogger is safe for concurrent use.
//
// Log levels:
//   - [slog.LevelDebug]: cache purges, unresolvable glyphs, buffer refcounts, skipped paths
//   - [slog.LevelInfo]: handles opened and closed, variable composites
//   - [slog.LevelWarn]: unreadable optional tables
//
// Example:
//
//	goggles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) { font.SetLogger(l) }

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger { return font.Logger() }
