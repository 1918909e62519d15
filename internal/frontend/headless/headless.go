// Package headless implements a frontend without any user interface. It runs
// programs for a fixed number of frames and can dump the final display, which
// is useful for testing programs and for running in scripts.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrogolib/log"
)

// Headless is a frontend that keeps the last presented frame in memory.
type Headless struct {
	logger *log.Logger
	dump   io.Writer // optional, receives the final display as text

	last      chip8.Screen
	presented int
}

// New returns a headless frontend. If dump is not nil the display is written
// to it as text when the emulation ends.
func New(logger *log.Logger, dump io.Writer) *Headless {
	return &Headless{
		logger: logger,
		dump:   dump,
	}
}

// Run runs the emulator until the frame limit is reached or the context is cancelled.
func (h *Headless) Run(ctx context.Context, emu *emulator.Emulator) error {
	runErr := emu.Run(ctx, h)

	h.logger.Debug("Emulation finished",
		log.Int("frames", emu.Frames()),
		log.Hex("pc", emu.Machine().PC()))

	if h.dump != nil {
		if _, err := fmt.Fprint(h.dump, h.last.String()); err != nil {
			return fmt.Errorf("dumping display: %w", err)
		}
	}
	return runErr
}

// PollInput does nothing, there is no input source.
func (h *Headless) PollInput(emulator.Keypad) error {
	return nil
}

// Present stores the frame.
func (h *Headless) Present(screen *chip8.Screen) error {
	h.last = *screen
	h.presented++
	return nil
}

// Screen returns the last presented frame.
func (h *Headless) Screen() chip8.Screen {
	return h.last
}

// Presented returns the number of frames presented.
func (h *Headless) Presented() int {
	return h.presented
}
