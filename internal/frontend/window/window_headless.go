//go:build headless

package window

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrogolib/log"
)

var errNoWindow = errors.New("window frontend is not available in headless builds")

// Window is not available in headless builds.
type Window struct{}

// New returns a window frontend that fails to run.
func New(*log.Logger, int, config.Palette) *Window {
	return &Window{}
}

// Run always fails in headless builds.
func (w *Window) Run(context.Context, *emulator.Emulator) error {
	return errNoWindow
}
