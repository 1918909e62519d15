// Package config handles application configuration and setup
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// Instruction tracing is logged at debug level and therefore enables it.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug, opts.Trace:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Palette contains the colors used to present the display.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// CreatePalette parses the display colors of the options.
func CreatePalette(opts options.OutputFlags) (Palette, error) {
	fg, err := ParseColor(opts.Foreground)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing foreground color: %w", err)
	}
	bg, err := ParseColor(opts.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("parsing background color: %w", err)
	}
	return Palette{Foreground: fg, Background: bg}, nil
}

// ParseColor parses a color in the #RRGGBB notation, the leading # is optional.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': expected 6 hex digits", s)
	}
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}
