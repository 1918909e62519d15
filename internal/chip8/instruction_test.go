package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	ins := Decode(0xD7A3)

	assert.Equal(t, OpDraw, ins.Op)
	assert.Equal(t, uint16(0xD7A3), ins.Word)
	assert.Equal(t, uint8(0x7), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x3), ins.N)
	assert.Equal(t, uint8(0xA3), ins.NN)
	assert.Equal(t, uint16(0x7A3), ins.NNN)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
	}{
		{0x0000, OpNop},
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x0200, OpIllegal},
		{0x1234, OpJump},
		{0x2234, OpCall},
		{0x3A12, OpSkipEqImm},
		{0x4A12, OpSkipNeImm},
		{0x5AB0, OpSkipEqReg},
		{0x5AB1, OpIllegal},
		{0x6A12, OpLoadImm},
		{0x7A12, OpAddImm},
		{0x8AB0, OpMove},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAdd},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x8AB8, OpIllegal},
		{0x9AB0, OpSkipNeReg},
		{0x9AB5, OpIllegal},
		{0xA123, OpLoadIndex},
		{0xB123, OpJumpV0},
		{0xCA12, OpRandom},
		{0xDAB5, OpDraw},
		{0xEA9E, OpSkipKey},
		{0xEAA1, OpSkipNoKey},
		{0xEA9F, OpIllegal},
		{0xFA07, OpGetDelay},
		{0xFA0A, OpWaitKey},
		{0xFA15, OpSetDelay},
		{0xFA18, OpSetSound},
		{0xFA1E, OpAddIndex},
		{0xFA29, OpFont},
		{0xFA33, OpBCD},
		{0xFA55, OpStore},
		{0xFA65, OpLoad},
		{0xFA75, OpIllegal},
	}

	for _, tt := range tests {
		t.Run(Disassemble(tt.word), func(t *testing.T) {
			assert.Equal(t, tt.op, Decode(tt.word).Op)
		})
	}
}

func TestEncodingsMatchOpcodeTables(t *testing.T) {
	for value, enc := range encodings {
		t.Run(enc.op.String(), func(t *testing.T) {
			found := false
			for _, opcode := range chip8.Opcodes[int(value>>12)] {
				if opcode.Info.Value == value && opcode.Instruction == mnemonics[enc.op] {
					found = true
				}
			}
			assert.True(t, found)

			// all operand bits set
			word := value | ^enc.mask
			assert.Equal(t, enc.op, Decode(word).Op)
		})
	}
}

func TestDecodeStrictTrailingNibbles(t *testing.T) {
	for _, word := range []uint16{0x0123, 0x00E1, 0x5AB1, 0x8AB8, 0x8ABF, 0x9AB1, 0xEA00, 0xFA00, 0xFAFF} {
		assert.Equal(t, OpIllegal, Decode(word).Op)
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "draw", OpDraw.String())
	assert.Equal(t, "illegal", Op(200).String())
}

func TestInstructionIsSkip(t *testing.T) {
	assert.True(t, Decode(0x3A12).IsSkip())
	assert.True(t, Decode(0xEAA1).IsSkip())
	assert.False(t, Decode(0x1234).IsSkip())
}
