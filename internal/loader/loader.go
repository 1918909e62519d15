// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

var errEmptyROM = errors.New("ROM file is empty")

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM file named in the options. CHIP-8 ROMs have no header,
// the file is read as raw buffer and its content returned as program data.
// The buffer loader pads the data to a full bank, the file size is used to
// cut off the padding. Files that do not fit into the program space are rejected.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file size of %s: %w", opts.Input, err)
	}

	size := info.Size()
	switch {
	case size == 0:
		return nil, errEmptyROM
	case size > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: ROM size %d exceeds available memory space of %d bytes",
			chip8.ErrProgramTooLarge, size, chip8.MaxProgramSize)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	if int64(len(cart.PRG)) < size {
		return nil, fmt.Errorf("reading ROM: read %d of %d bytes", len(cart.PRG), size)
	}
	return cart.PRG[:size], nil
}
