package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program does not fit into the program space.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidKeyIndex is returned for key indexes outside of 0x0-0xF.
	ErrInvalidKeyIndex = errors.New("invalid key index")
	// ErrIllegalInstruction is matched by all IllegalInstructionError values.
	ErrIllegalInstruction = errors.New("illegal instruction")
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrMemoryFault is returned when an instruction or operand address is outside of memory.
	ErrMemoryFault = errors.New("memory fault")
)

// IllegalInstructionError describes an instruction word that matches no known opcode.
type IllegalInstructionError struct {
	Opcode  uint16
	Address uint16
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction $%04X at $%03X", e.Opcode, e.Address)
}

// Is reports whether target is ErrIllegalInstruction.
func (e *IllegalInstructionError) Is(target error) bool {
	return target == ErrIllegalInstruction
}
