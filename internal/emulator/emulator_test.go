package emulator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// program encodes instruction words as ROM bytes.
func program(words ...uint16) []byte {
	data := make([]byte, 0, len(words)*2)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	return data
}

func newTestEmulator(t *testing.T, opts options.Emulator, words ...uint16) *Emulator {
	t.Helper()

	emu, err := New(log.NewTestLogger(t), program(words...), opts)
	assert.NoError(t, err)
	return emu
}

type mockAudio struct {
	changes []bool
}

func (m *mockAudio) SetActive(active bool) {
	m.changes = append(m.changes, active)
}

type mockSurface struct {
	polls    int
	presents []chip8.Screen
	pollErr  error
	keys     map[int]bool // key states set on the first poll
}

func (m *mockSurface) PollInput(keys Keypad) error {
	m.polls++
	if m.polls == 1 {
		for key, pressed := range m.keys {
			if err := keys.SetKey(key, pressed); err != nil {
				return err
			}
		}
	}
	return m.pollErr
}

func (m *mockSurface) Present(screen *chip8.Screen) error {
	m.presents = append(m.presents, *screen)
	return nil
}

func TestNew(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{}, 0x1200)
	assert.Equal(t, options.DefaultCycles, emu.opts.Cycles)
	assert.Equal(t, byte(0x12), emu.Machine().ReadMemory(chip8.ProgramStart))

	_, err := New(log.NewTestLogger(t), make([]byte, chip8.MaxProgramSize+1), options.Emulator{})
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}

func TestFrameRunsCycles(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 10},
		0x7001, // add V0, 1
		0x1200, // jp $200
	)

	assert.NoError(t, emu.Frame())
	assert.Equal(t, byte(5), emu.Machine().Register(0))
	assert.Equal(t, 1, emu.Frames())

	assert.NoError(t, emu.Frame())
	assert.Equal(t, byte(10), emu.Machine().Register(0))
}

func TestFrameAdvancesTimersAndSound(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 3},
		0x6102, // ld V1, 2
		0xF118, // ld ST, V1
		0x1204, // jp $204
	)
	audio := &mockAudio{}
	emu.SetAudio(audio)

	assert.NoError(t, emu.Frame())
	assert.Equal(t, byte(1), emu.Machine().SoundTimer())
	assert.Equal(t, []bool{true}, audio.changes)

	assert.NoError(t, emu.Frame())
	assert.Equal(t, byte(0), emu.Machine().SoundTimer())
	assert.Equal(t, []bool{true, false}, audio.changes)

	assert.NoError(t, emu.Frame())
	assert.Len(t, audio.changes, 2)
}

func TestFrameError(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 10}, 0x00EE)

	err := emu.Frame()
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.ErrorContains(t, err, "$200")
	assert.Equal(t, 0, emu.Frames())
}

func TestFrameTrace(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 2, Trace: true}, 0xF00A)
	assert.NoError(t, emu.Frame())
	assert.True(t, emu.Machine().WaitingForKey())
	assert.Equal(t, uint16(chip8.ProgramStart), emu.Machine().PC())
}

func TestTogglePause(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 1},
		0x6105, // ld V1, 5
		0xF118, // ld ST, V1
		0x1204, // jp $204
	)
	audio := &mockAudio{}
	emu.SetAudio(audio)
	for range 2 {
		assert.NoError(t, emu.Frame())
	}
	assert.Equal(t, []bool{true}, audio.changes)

	emu.TogglePause()
	assert.True(t, emu.Paused())
	assert.Equal(t, []bool{true, false}, audio.changes)

	pc := emu.Machine().PC()
	timer := emu.Machine().SoundTimer()
	assert.NoError(t, emu.Frame())
	assert.Equal(t, pc, emu.Machine().PC())
	assert.Equal(t, timer, emu.Machine().SoundTimer())

	emu.TogglePause()
	assert.False(t, emu.Paused())
	assert.Equal(t, []bool{true, false, true}, audio.changes)
}

func TestReset(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 4},
		0x6A07, // ld VA, 7
		0x1202, // jp $202
	)
	assert.NoError(t, emu.Frame())
	assert.Equal(t, byte(7), emu.Machine().Register(0xA))

	assert.NoError(t, emu.Reset())
	assert.Equal(t, byte(0), emu.Machine().Register(0xA))
	assert.Equal(t, uint16(chip8.ProgramStart), emu.Machine().PC())
	assert.Equal(t, byte(0x6A), emu.Machine().ReadMemory(chip8.ProgramStart))
}

func TestSetKey(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{}, 0x1200)

	assert.NoError(t, emu.SetKey(0xA, true))
	assert.True(t, emu.Machine().KeyPressed(0xA))
	assert.True(t, errors.Is(emu.SetKey(16, true), chip8.ErrInvalidKeyIndex))
}

func TestRunFrameLimit(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{Cycles: 10, Frames: 3},
		0xF50A, // ld V5, K
		0xA000, // ld I, $000
		0xD005, // drw V0, V0, 5
		0x1206, // jp $206
	)
	surface := &mockSurface{keys: map[int]bool{0x4: true}}

	assert.NoError(t, emu.Run(context.Background(), surface))
	assert.Equal(t, 3, emu.Frames())
	assert.Equal(t, 3, surface.polls)
	assert.Len(t, surface.presents, 3)
	assert.Equal(t, byte(4), emu.Machine().Register(5))
	assert.Equal(t, 14, surface.presents[2].Lit())
}

func TestRunQuit(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{}, 0x1200)
	surface := &mockSurface{pollErr: ErrQuit}

	err := emu.Run(context.Background(), surface)
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Equal(t, 0, emu.Frames())
}

func TestRunCancel(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{}, 0x1200)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := emu.Run(ctx, &mockSurface{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, emu.Frames() > 0)
}

func TestRunError(t *testing.T) {
	emu := newTestEmulator(t, options.Emulator{}, 0xFFFF)

	err := emu.Run(context.Background(), &mockSurface{})
	assert.True(t, errors.Is(err, chip8.ErrIllegalInstruction))
}
