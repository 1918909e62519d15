package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x12, 0x34, 0x56, 0x78}
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, data)},
		}

		program, err := New().Load(opts)
		assert.NoError(t, err)
		assert.Len(t, program, len(data))
		assert.Equal(t, data, program)
	})

	t.Run("padding of the buffer loader is removed", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0x12, 0x02, 0x00}
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, data)},
		}

		program, err := New().Load(opts)
		assert.NoError(t, err)
		assert.Len(t, program, len(data))
		assert.Equal(t, data, program)
	})

	t.Run("load largest ROM", func(t *testing.T) {
		data := make([]byte, chip8.MaxProgramSize)
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, data)},
		}

		program, err := New().Load(opts)
		assert.NoError(t, err)
		assert.Len(t, program, chip8.MaxProgramSize)
	})

	t.Run("error on too large ROM", func(t *testing.T) {
		data := make([]byte, chip8.MaxProgramSize+1)
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, data)},
		}

		_, err := New().Load(opts)
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("error on empty ROM", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: createTempFile(t, nil)},
		}

		_, err := New().Load(opts)
		assert.True(t, errors.Is(err, errEmptyROM))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.ch8"},
		}

		_, err := New().Load(opts)
		assert.ErrorContains(t, err, "opening file")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(name, data, 0o600))
	return name
}
