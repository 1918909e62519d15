// Package app provides the main application helpers for the emulator.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the loaded program and the emulation settings.
func PrintInfo(logger *log.Logger, opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
		log.Int("cycles", opts.Cycles),
	)
}

// NewFrontend returns the frontend selected in the options.
func NewFrontend(logger *log.Logger, opts options.Program, palette config.Palette) (emulator.Frontend, error) {
	switch opts.Frontend {
	case options.FrontendWindow:
		return window.New(logger, opts.Scale, palette), nil

	case options.FrontendTerminal:
		return terminal.New(logger, os.Stdin, os.Stdout), nil

	case options.FrontendHeadless:
		var dump io.Writer
		if opts.Dump {
			dump = os.Stdout
		}
		return headless.New(logger, dump), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// NewAudio returns the audio output for the sound timer. A nil output and a
// no-op close function are returned if sound is muted, the headless frontend
// is used or no audio device is available.
func NewAudio(logger *log.Logger, opts options.Program) (emulator.Audio, func()) {
	if opts.Mute || opts.Frontend == options.FrontendHeadless {
		return nil, func() {}
	}

	beeper, err := audio.NewBeeper()
	if err != nil {
		logger.Warn("Audio output is not available, running muted", log.Err(err))
		return nil, func() {}
	}

	return beeper, func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}
