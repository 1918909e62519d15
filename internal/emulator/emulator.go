// Package emulator drives a CHIP-8 machine: it executes instructions at a fixed
// number of cycles per frame, ticks the timers at 60 Hz and connects the machine
// to input, display and audio frontends.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the frequency of frames and timer ticks in Hz.
const FrameRate = 60

// ErrQuit is returned by frontends when the user requested to quit.
var ErrQuit = errors.New("quit requested")

// Keypad receives key state changes from an input source.
type Keypad interface {
	SetKey(key int, pressed bool) error
}

// Surface presents frames and polls input, it is driven by the frame clock of Run.
type Surface interface {
	PollInput(keys Keypad) error
	Present(screen *chip8.Screen) error
}

// Frontend connects a running emulator to the user.
type Frontend interface {
	Run(ctx context.Context, emu *Emulator) error
}

// Audio plays a tone while active.
type Audio interface {
	SetActive(active bool)
}

// Emulator owns a machine and the program loaded into it.
type Emulator struct {
	logger  *log.Logger
	opts    options.Emulator
	machine *chip8.Machine
	program []byte
	audio   Audio

	frames      int
	paused      bool
	soundActive bool
	waiting     bool
}

// New returns an emulator with the program loaded into a freshly initialized machine.
func New(logger *log.Logger, program []byte, opts options.Emulator) (*Emulator, error) {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	if opts.Cycles <= 0 {
		opts.Cycles = options.DefaultCycles
	}

	e := &Emulator{
		logger:  logger,
		opts:    opts,
		machine: chip8.New(rng),
		program: program,
	}
	if err := e.machine.LoadProgram(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return e, nil
}

// SetAudio sets the audio output that follows the sound timer, nil disables it.
func (e *Emulator) SetAudio(audio Audio) {
	e.audio = audio
}

// Machine returns the emulated machine.
func (e *Emulator) Machine() *chip8.Machine {
	return e.machine
}

// Frames returns the number of frames emulated.
func (e *Emulator) Frames() int {
	return e.frames
}

// Paused returns whether the emulation is paused.
func (e *Emulator) Paused() bool {
	return e.paused
}

// Done returns whether the configured frame limit has been reached.
func (e *Emulator) Done() bool {
	return e.opts.Frames > 0 && e.frames >= e.opts.Frames
}

// SetKey forwards a key state change to the machine.
func (e *Emulator) SetKey(key int, pressed bool) error {
	if err := e.machine.SetKeyState(key, pressed); err != nil {
		return fmt.Errorf("setting key state: %w", err)
	}
	e.logger.Debug("Key state changed",
		log.Int("key", key),
		log.String("state", keyState(pressed)))
	return nil
}

func keyState(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}

// Frame emulates one 60 Hz frame: the configured number of instructions is
// executed and the timers are advanced once. A paused emulator does nothing.
func (e *Emulator) Frame() error {
	if e.paused {
		return nil
	}

	for range e.opts.Cycles {
		if err := e.step(); err != nil {
			e.setSound(false)
			return err
		}
	}

	e.machine.AdvanceTimers()
	e.setSound(e.machine.SoundActive())
	e.frames++
	return nil
}

// step executes a single instruction and adds context to fatal errors.
func (e *Emulator) step() error {
	pc := e.machine.PC()
	if e.opts.Trace {
		e.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.String("instruction", e.machine.DisassembleAt(pc)))
	}

	if err := e.machine.Step(); err != nil {
		return fmt.Errorf("executing '%s' at $%03X: %w", e.machine.DisassembleAt(pc), pc, err)
	}

	waiting := e.machine.WaitingForKey()
	if waiting && !e.waiting {
		e.logger.Debug("Waiting for key press", log.Hex("pc", pc))
	}
	e.waiting = waiting
	return nil
}

// setSound forwards changes of the sound state to the audio output.
func (e *Emulator) setSound(active bool) {
	if active == e.soundActive {
		return
	}
	e.soundActive = active
	if e.audio != nil {
		e.audio.SetActive(active)
	}
}

// TogglePause pauses or resumes the emulation. Sound is stopped while paused.
func (e *Emulator) TogglePause() {
	e.paused = !e.paused
	if e.paused {
		e.setSound(false)
		e.logger.Info("Emulation paused")
	} else {
		e.setSound(e.machine.SoundActive())
		e.logger.Info("Emulation resumed")
	}
}

// Reset reinitializes the machine and reloads the program.
func (e *Emulator) Reset() error {
	e.machine.Reset()
	if err := e.machine.LoadProgram(e.program); err != nil {
		return fmt.Errorf("reloading program: %w", err)
	}
	e.setSound(false)
	e.waiting = false
	e.logger.Info("Machine reset")
	return nil
}

// Run drives the surface at FrameRate until the context is cancelled, the
// frame limit is reached or an error occurs. Every frame input is polled first,
// then the frame is emulated and presented.
func (e *Emulator) Run(ctx context.Context, surface Surface) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()
	defer e.setSound(false)

	for !e.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := surface.PollInput(e); err != nil {
			return err
		}
		if err := e.Frame(); err != nil {
			return err
		}

		screen := e.machine.Display()
		if err := surface.Present(&screen); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}
	}
	return nil
}
