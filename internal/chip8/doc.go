// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// A Machine owns all emulated state:
//   - 4KB of byte addressable memory, the font table is stored at 0x000
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 16-bit index register I and a 16-bit program counter
//   - a 16 entry return address stack
//   - a 64x32 monochrome display buffer
//   - 16 key states and the delay and sound timers
//
// # Memory Layout
//
//	0x000-0x04F: Font glyphs for the hexadecimal digits 0-F (5 bytes each)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: Program space (MaxProgramSize bytes)
//
// # Execution Model
//
// The machine does not run on its own. A driver calls Step to execute exactly one
// instruction and AdvanceTimers at a fixed 60 Hz cadence. The key wait instruction
// does not block, it rewinds the program counter so that it is executed again on the
// next Step until a key is pressed.
//
// # Usage Example
//
//	m := chip8.New(nil)
//	if err := m.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for range 10 {
//		if err := m.Step(); err != nil {
//			return err
//		}
//	}
//	m.AdvanceTimers()
//	screen := m.Display()
package chip8
