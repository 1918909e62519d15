// Package terminal implements a frontend that renders the display with block
// characters in a terminal and reads the keypad from the keyboard.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// holdFrames is the number of frames a key stays pressed after its last
// character was received, terminals do not report key releases.
const holdFrames = 6

// Control characters that quit the emulator.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// ANSI escape sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var errAlreadyRun = errors.New("terminal frontend can only be run once")

// Terminal is a frontend for text terminals.
type Terminal struct {
	logger  *log.Logger
	started atomic.Bool
	in      io.Reader
	out     io.Writer

	fd       int // file descriptor of the input terminal, -1 if input is no terminal
	oldState *term.State

	input chan byte
	done  chan struct{}
	held  [chip8.KeyCount]int

	last  chip8.Screen
	drawn bool
}

// New returns a terminal frontend reading keys from in and rendering to out.
// If in is a terminal it is switched to raw mode while running.
func New(logger *log.Logger, in io.Reader, out io.Writer) *Terminal {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
		fd:     fd,
		input:  make(chan byte, 64),
		done:   make(chan struct{}),
	}
}

// Run prepares the terminal and runs the emulator until it stops.
// The terminal state is restored before returning. A terminal can only be run
// once since the input reader stays blocked on the input until the next
// character arrives or the input is closed.
func (t *Terminal) Run(ctx context.Context, emu *emulator.Emulator) error {
	if !t.started.CompareAndSwap(false, true) {
		return errAlreadyRun
	}
	if err := t.open(); err != nil {
		return err
	}
	defer t.close()

	go t.readInput()
	return emu.Run(ctx, t)
}

func (t *Terminal) open() error {
	if t.fd >= 0 {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("enabling terminal raw mode: %w", err)
		}
		t.oldState = state
		t.logger.Debug("Enabled terminal raw mode")
	}

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

func (t *Terminal) close() {
	close(t.done)
	_, _ = io.WriteString(t.out, showCursor+"\r\n")

	if t.oldState != nil {
		if err := term.Restore(t.fd, t.oldState); err != nil {
			t.logger.Error("Restoring terminal state failed", log.Err(err))
		}
		t.oldState = nil
	}
}

// readInput forwards all bytes read from the input to the input channel.
func (t *Terminal) readInput() {
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			select {
			case t.input <- b:
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// PollInput releases keys whose hold time expired and presses the keys of
// all characters received since the last frame.
func (t *Terminal) PollInput(keys emulator.Keypad) error {
	for key, frames := range t.held {
		if frames == 0 {
			continue
		}
		t.held[key]--
		if t.held[key] == 0 {
			if err := keys.SetKey(key, false); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case b := <-t.input:
			if err := t.handleInput(keys, b); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (t *Terminal) handleInput(keys emulator.Keypad, b byte) error {
	if b == keyCtrlC || b == keyEscape {
		return emulator.ErrQuit
	}

	key, ok := keymap.KeyForRune(rune(b))
	if !ok {
		return nil
	}
	if t.held[key] == 0 {
		if err := keys.SetKey(key, true); err != nil {
			return err
		}
	}
	t.held[key] = holdFrames
	return nil
}

// Present redraws the terminal if the display changed since the last frame.
func (t *Terminal) Present(screen *chip8.Screen) error {
	if t.drawn && *screen == t.last {
		return nil
	}
	t.last = *screen
	t.drawn = true

	if _, err := io.WriteString(t.out, cursorHome+render(screen)); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// render draws two display rows per text line using half block characters.
func render(screen *chip8.Screen) string {
	var sb strings.Builder
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			top := screen.Pixel(x, y)
			bottom := screen.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
