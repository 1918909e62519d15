//go:build !headless

package window

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

const title = "retrochip8"

var ebitenKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Window presents the display in a desktop window and reads the keypad from
// the keyboard. Esc quits, P pauses and Backspace resets the machine.
type Window struct {
	logger  *log.Logger
	scale   int
	palette config.Palette

	ctx    context.Context
	emu    *emulator.Emulator
	err    error
	keys   [chip8.KeyCount]bool
	pixels []byte
	image  *ebiten.Image
}

// New returns a window frontend with the given pixel scale.
func New(logger *log.Logger, scale int, palette config.Palette) *Window {
	return &Window{
		logger:  logger,
		scale:   scale,
		palette: palette,
		pixels:  newPixelBuffer(),
	}
}

// Run opens the window and emulates one frame per tick until the window is
// closed, the frame limit is reached or an error occurs.
func (w *Window) Run(ctx context.Context, emu *emulator.Emulator) error {
	w.ctx = ctx
	w.emu = emu

	ebiten.SetWindowSize(chip8.DisplayWidth*w.scale, chip8.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(emulator.FrameRate)
	ebiten.SetRunnableOnUnfocused(true)

	w.logger.Debug("Opening window", log.Int("scale", w.scale))
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return w.err
}

// Update is called by ebiten at FrameRate.
func (w *Window) Update() error {
	if err := w.ctx.Err(); err != nil {
		w.err = err
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.err = emulator.ErrQuit
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		w.emu.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if err := w.emu.Reset(); err != nil {
			w.err = err
			return ebiten.Termination
		}
	}

	if err := w.pollKeys(); err != nil {
		w.err = err
		return ebiten.Termination
	}

	if err := w.emu.Frame(); err != nil {
		w.err = err
		return ebiten.Termination
	}
	if w.emu.Done() {
		return ebiten.Termination
	}
	return nil
}

// pollKeys forwards changes of the bound keyboard keys to the keypad.
func (w *Window) pollKeys() error {
	for _, binding := range keymap.Bindings {
		pressed := ebiten.IsKeyPressed(ebitenKeys[binding.Char])
		if pressed == w.keys[binding.Key] {
			continue
		}
		w.keys[binding.Key] = pressed
		if err := w.emu.SetKey(binding.Key, pressed); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the display scaled to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	display := w.emu.Machine().Display()
	fillPixels(w.pixels, &display, w.palette)
	w.image.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.image, op)

	if w.emu.Paused() {
		text.Draw(screen, "PAUSED", basicfont.Face7x13, 8, 18, w.palette.Foreground)
	}
}

// Layout returns the scaled display size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * w.scale, chip8.DisplayHeight * w.scale
}
