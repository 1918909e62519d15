package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonics maps the operations to the instruction definitions of the CHIP-8
// reference tables, several operations share one mnemonic.
var mnemonics = map[Op]*chip8.Instruction{
	OpCls:       chip8.Cls,
	OpRet:       chip8.Ret,
	OpJump:      chip8.Jp,
	OpJumpV0:    chip8.Jp,
	OpCall:      chip8.Call,
	OpSkipEqImm: chip8.Se,
	OpSkipEqReg: chip8.Se,
	OpSkipNeImm: chip8.Sne,
	OpSkipNeReg: chip8.Sne,
	OpLoadImm:   chip8.Ld,
	OpMove:      chip8.Ld,
	OpLoadIndex: chip8.Ld,
	OpGetDelay:  chip8.Ld,
	OpWaitKey:   chip8.Ld,
	OpSetDelay:  chip8.Ld,
	OpSetSound:  chip8.Ld,
	OpFont:      chip8.Ld,
	OpBCD:       chip8.Ld,
	OpStore:     chip8.Ld,
	OpLoad:      chip8.Ld,
	OpAddImm:    chip8.Add,
	OpAdd:       chip8.Add,
	OpAddIndex:  chip8.Add,
	OpOr:        chip8.Or,
	OpAnd:       chip8.And,
	OpXor:       chip8.Xor,
	OpSub:       chip8.Sub,
	OpSubn:      chip8.Subn,
	OpShr:       chip8.Shr,
	OpShl:       chip8.Shl,
	OpRandom:    chip8.Rnd,
	OpDraw:      chip8.Drw,
	OpSkipKey:   chip8.Skp,
	OpSkipNoKey: chip8.Sknp,
}

// Disassemble returns the assembly representation of an instruction word,
// for example "ld VA, $12". Words that are no valid instruction are returned
// as a data directive.
func Disassemble(word uint16) string {
	ins := Decode(word)
	definition, ok := mnemonics[ins.Op]
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	params := formatParams(ins)
	if params == "" {
		return definition.Name
	}
	return definition.Name + " " + params
}

// formatParams formats the operands of a decoded instruction.
//
//nolint:cyclop // one case per operand layout
func formatParams(ins Instruction) string {
	switch ins.Op {
	case OpJump, OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpJumpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpSkipEqImm, OpSkipNeImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case OpSkipEqReg, OpSkipNeReg, OpMove, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShr, OpShl, OpSkipKey, OpSkipNoKey:
		return fmt.Sprintf("V%X", ins.X)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpGetDelay:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpFont:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpBCD:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpStore:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLoad:
		return fmt.Sprintf("V%X, [I]", ins.X)
	default:
		return ""
	}
}

// DisassembleAt returns the disassembly of the instruction at the given address.
func (m *Machine) DisassembleAt(address uint16) string {
	word, err := m.fetchAt(address)
	if err != nil {
		return "<out of memory>"
	}
	return Disassemble(word)
}
