package chip8

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the register index that receives carry, borrow and collision flags.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// InstructionSize is the size of an encoded instruction in bytes.
	InstructionSize = 2
)

// Machine contains the complete state of one emulated CHIP-8 system.
// It is not safe for concurrent use, a single driver goroutine owns it.
type Machine struct {
	memory    [MemorySize]byte
	registers [RegisterCount]byte
	index     uint16
	pc        uint16

	stack [StackDepth]uint16
	sp    uint8

	screen Screen
	keys   [KeyCount]bool

	delayTimer byte
	soundTimer byte

	waitingForKey bool

	rng *rand.Rand
}

// New returns an initialized machine. The random source is used for the random
// number instruction, if it is nil a time seeded source is used.
func New(rng *rand.Rand) *Machine {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	m := &Machine{rng: rng}
	m.Reset()
	return m
}

// Reset returns all state to the power on values: memory, registers, stack, display,
// keys and timers are cleared, the font is written to the reserved area and the
// program counter is set to ProgramStart. The random source is kept.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	copy(m.memory[FontAddress:], font[:])
	m.registers = [RegisterCount]byte{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackDepth]uint16{}
	m.sp = 0
	m.screen.clear()
	m.keys = [KeyCount]bool{}
	m.delayTimer = 0
	m.soundTimer = 0
	m.waitingForKey = false
}

// LoadProgram copies the program into memory starting at ProgramStart.
// Registers, timers and the program counter are not modified. A program larger
// than MaxProgramSize is rejected without writing any memory.
func (m *Machine) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the available %d bytes",
			ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], data)
	return nil
}

// SetKeyState sets the pressed state of the key with the given index.
func (m *Machine) SetKeyState(key int, pressed bool) error {
	if key < 0 || key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKeyIndex, key)
	}
	m.keys[key] = pressed
	return nil
}

// KeyPressed returns whether the key with the given index is pressed.
// Invalid indexes are reported as not pressed.
func (m *Machine) KeyPressed(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Display returns a snapshot of the display buffer.
func (m *Machine) Display() Screen {
	return m.screen
}

// AdvanceTimers performs one 60 Hz timer tick, both timers are decremented
// if they are not zero.
func (m *Machine) AdvanceTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// SoundActive returns whether the sound timer is running and a tone should be played.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// WaitingForKey returns whether the last executed instruction was a key wait
// that found no pressed key.
func (m *Machine) WaitingForKey() bool {
	return m.waitingForKey
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// Index returns the index register.
func (m *Machine) Index() uint16 { return m.index }

// SP returns the number of return addresses on the stack.
func (m *Machine) SP() int { return int(m.sp) }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() byte { return m.delayTimer }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() byte { return m.soundTimer }

// Register returns the value of register Vi, i is masked to 0x0-0xF.
func (m *Machine) Register(i int) byte {
	return m.registers[i&0x0F]
}

// ReadMemory returns the byte at the given address. Addresses outside of memory return 0.
func (m *Machine) ReadMemory(address uint16) byte {
	if int(address) >= MemorySize {
		return 0
	}
	return m.memory[address]
}

// Opcode returns the instruction word at the program counter without executing it.
func (m *Machine) Opcode() (uint16, error) {
	return m.fetchAt(m.pc)
}

// fetchAt reads the big endian instruction word at address.
func (m *Machine) fetchAt(address uint16) (uint16, error) {
	if int(address)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetching instruction at $%04X", ErrMemoryFault, address)
	}
	return uint16(m.memory[address])<<8 | uint16(m.memory[address+1]), nil
}

// checkRange verifies that count bytes starting at address are inside of memory.
func checkRange(address uint16, count int) error {
	if int(address)+count > MemorySize {
		return fmt.Errorf("%w: accessing %d bytes at $%04X", ErrMemoryFault, count, address)
	}
	return nil
}
