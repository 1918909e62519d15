package chip8

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// Op identifies the operation of a decoded instruction.
type Op uint8

// Operations of the instruction set, the comment shows the encoding.
const (
	OpIllegal   Op = iota
	OpNop          // 0000
	OpCls          // 00E0
	OpRet          // 00EE
	OpJump         // 1nnn
	OpCall         // 2nnn
	OpSkipEqImm    // 3xnn
	OpSkipNeImm    // 4xnn
	OpSkipEqReg    // 5xy0
	OpLoadImm      // 6xnn
	OpAddImm       // 7xnn
	OpMove         // 8xy0
	OpOr           // 8xy1
	OpAnd          // 8xy2
	OpXor          // 8xy3
	OpAdd          // 8xy4
	OpSub          // 8xy5
	OpShr          // 8xy6
	OpSubn         // 8xy7
	OpShl          // 8xyE
	OpSkipNeReg    // 9xy0
	OpLoadIndex    // Annn
	OpJumpV0       // Bnnn
	OpRandom       // Cxnn
	OpDraw         // Dxyn
	OpSkipKey      // Ex9E
	OpSkipNoKey    // ExA1
	OpGetDelay     // Fx07
	OpWaitKey      // Fx0A
	OpSetDelay     // Fx15
	OpSetSound     // Fx18
	OpAddIndex     // Fx1E
	OpFont         // Fx29
	OpBCD          // Fx33
	OpStore        // Fx55
	OpLoad         // Fx65
)

var opNames = [...]string{
	OpIllegal:   "illegal",
	OpNop:       "nop",
	OpCls:       "cls",
	OpRet:       "ret",
	OpJump:      "jump",
	OpCall:      "call",
	OpSkipEqImm: "skip_eq_imm",
	OpSkipNeImm: "skip_ne_imm",
	OpSkipEqReg: "skip_eq_reg",
	OpLoadImm:   "load_imm",
	OpAddImm:    "add_imm",
	OpMove:      "move",
	OpOr:        "or",
	OpAnd:       "and",
	OpXor:       "xor",
	OpAdd:       "add",
	OpSub:       "sub",
	OpShr:       "shr",
	OpSubn:      "subn",
	OpShl:       "shl",
	OpSkipNeReg: "skip_ne_reg",
	OpLoadIndex: "load_index",
	OpJumpV0:    "jump_v0",
	OpRandom:    "random",
	OpDraw:      "draw",
	OpSkipKey:   "skip_key",
	OpSkipNoKey: "skip_no_key",
	OpGetDelay:  "get_delay",
	OpWaitKey:   "wait_key",
	OpSetDelay:  "set_delay",
	OpSetSound:  "set_sound",
	OpAddIndex:  "add_index",
	OpFont:      "font",
	OpBCD:       "bcd",
	OpStore:     "store",
	OpLoad:      "load",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpIllegal]
}

// Instruction is a decoded instruction word with all operand views.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // fourth nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits
}

// encoding is the strict bit pattern of an operation: a word encodes the
// operation if word&mask equals the table key.
type encoding struct {
	op   Op
	mask uint16
}

// encodings maps the fixed bits of the reference opcode table entries to the
// operations. Entries of the reference tables that are missing here, like
// the 0nnn machine code call, decode to OpIllegal.
var encodings = map[uint16]encoding{
	0x00E0: {OpCls, 0xFFFF},
	0x00EE: {OpRet, 0xFFFF},
	0x1000: {OpJump, 0xF000},
	0x2000: {OpCall, 0xF000},
	0x3000: {OpSkipEqImm, 0xF000},
	0x4000: {OpSkipNeImm, 0xF000},
	0x5000: {OpSkipEqReg, 0xF00F},
	0x6000: {OpLoadImm, 0xF000},
	0x7000: {OpAddImm, 0xF000},
	0x8000: {OpMove, 0xF00F},
	0x8001: {OpOr, 0xF00F},
	0x8002: {OpAnd, 0xF00F},
	0x8003: {OpXor, 0xF00F},
	0x8004: {OpAdd, 0xF00F},
	0x8005: {OpSub, 0xF00F},
	0x8006: {OpShr, 0xF00F},
	0x8007: {OpSubn, 0xF00F},
	0x800E: {OpShl, 0xF00F},
	0x9000: {OpSkipNeReg, 0xF00F},
	0xA000: {OpLoadIndex, 0xF000},
	0xB000: {OpJumpV0, 0xF000},
	0xC000: {OpRandom, 0xF000},
	0xD000: {OpDraw, 0xF000},
	0xE09E: {OpSkipKey, 0xF0FF},
	0xE0A1: {OpSkipNoKey, 0xF0FF},
	0xF007: {OpGetDelay, 0xF0FF},
	0xF00A: {OpWaitKey, 0xF0FF},
	0xF015: {OpSetDelay, 0xF0FF},
	0xF018: {OpSetSound, 0xF0FF},
	0xF01E: {OpAddIndex, 0xF0FF},
	0xF029: {OpFont, 0xF0FF},
	0xF033: {OpBCD, 0xF0FF},
	0xF055: {OpStore, 0xF0FF},
	0xF065: {OpLoad, 0xF0FF},
}

// Decode splits the instruction word into its fields and identifies the operation.
// Words that match no entry of the opcode tables decode to OpIllegal.
func Decode(word uint16) Instruction {
	return Instruction{
		Op:   decodeOp(word),
		Word: word,
		X:    uint8(word >> 8 & 0x0F),
		Y:    uint8(word >> 4 & 0x0F),
		N:    uint8(word & 0x0F),
		NN:   uint8(word & 0xFF),
		NNN:  word & 0x0FFF,
	}
}

// decodeOp looks up the word in the opcode tables of its leading nibble. A
// table match is only accepted if the trailing nibbles that the table leaves
// open match the strict encoding of the operation as well.
func decodeOp(word uint16) Op {
	if word == 0x0000 {
		return OpNop
	}

	for _, opcode := range chip8.Opcodes[int(word>>12)] {
		if opcode.Info.Mask&word != opcode.Info.Value {
			continue
		}

		enc, ok := encodings[opcode.Info.Value]
		if !ok || word&enc.mask != opcode.Info.Value || mnemonics[enc.op] != opcode.Instruction {
			continue
		}
		return enc.op
	}
	return OpIllegal
}

// IsSkip returns whether the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	switch i.Op {
	case OpSkipEqImm, OpSkipNeImm, OpSkipEqReg, OpSkipNeReg, OpSkipKey, OpSkipNoKey:
		return true
	default:
		return false
	}
}
