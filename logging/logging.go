// Package logging configures the global slog logger for the clipnest binary.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Setup installs the global slog logger. Format is "text", "json" or "auto";
// auto picks the tinted handler when stderr is a terminal. Call once after
// config loading.
func Setup(format, level string) {
	w := os.Stderr

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	useTint := false
	switch strings.ToLower(format) {
	case "text", "tint", "human":
		useTint = true
	case "json":
		useTint = false
	default:
		useTint = isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	}

	var h slog.Handler
	if useTint {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      lvl,
			TimeFormat: "15:04:05.000",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(h))
}
