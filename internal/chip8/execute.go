package chip8

// Step executes exactly one instruction: the word at the program counter is
// fetched, the program counter is advanced and the decoded instruction executed.
// If the instruction fails no state is modified and the program counter keeps
// pointing at the failing instruction.
func (m *Machine) Step() error {
	address := m.pc
	word, err := m.fetchAt(address)
	if err != nil {
		return err
	}

	m.pc += InstructionSize
	m.waitingForKey = false

	if err := m.execute(Decode(word), address); err != nil {
		m.pc = address
		return err
	}
	return nil
}

// execute dispatches the decoded instruction. address is the location the
// instruction was fetched from, the program counter already points past it.
//
//nolint:cyclop,funlen // a flat dispatch over the instruction set
func (m *Machine) execute(ins Instruction, address uint16) error {
	vx := &m.registers[ins.X]
	vy := m.registers[ins.Y]

	switch ins.Op {
	case OpNop:

	case OpCls:
		m.screen.clear()

	case OpRet:
		return m.ret()

	case OpJump:
		m.pc = ins.NNN

	case OpCall:
		return m.call(ins.NNN)

	case OpSkipEqImm:
		m.skipIf(*vx == ins.NN)

	case OpSkipNeImm:
		m.skipIf(*vx != ins.NN)

	case OpSkipEqReg:
		m.skipIf(*vx == vy)

	case OpLoadImm:
		*vx = ins.NN

	case OpAddImm:
		*vx += ins.NN

	case OpMove:
		*vx = vy

	case OpOr:
		*vx |= vy

	case OpAnd:
		*vx &= vy

	case OpXor:
		*vx ^= vy

	case OpAdd:
		sum := uint16(*vx) + uint16(vy)
		*vx = byte(sum)
		m.setFlag(sum > 0xFF)

	case OpSub:
		noBorrow := *vx >= vy
		*vx -= vy
		m.setFlag(noBorrow)

	case OpShr:
		lsb := *vx & 0x01
		*vx >>= 1
		m.registers[FlagRegister] = lsb

	case OpSubn:
		noBorrow := vy >= *vx
		*vx = vy - *vx
		m.setFlag(noBorrow)

	case OpShl:
		msb := *vx >> 7
		*vx <<= 1
		m.registers[FlagRegister] = msb

	case OpSkipNeReg:
		m.skipIf(*vx != vy)

	case OpLoadIndex:
		m.index = ins.NNN

	case OpJumpV0:
		m.pc = ins.NNN + uint16(m.registers[0])

	case OpRandom:
		*vx = byte(m.rng.UintN(256)) & ins.NN

	case OpDraw:
		return m.draw(ins)

	case OpSkipKey:
		m.skipIf(m.KeyPressed(int(*vx)))

	case OpSkipNoKey:
		m.skipIf(!m.KeyPressed(int(*vx)))

	case OpGetDelay:
		*vx = m.delayTimer

	case OpWaitKey:
		m.waitKey(vx)

	case OpSetDelay:
		m.delayTimer = *vx

	case OpSetSound:
		m.soundTimer = *vx

	case OpAddIndex:
		m.index += uint16(*vx)

	case OpFont:
		m.index = glyphAddress(*vx)

	case OpBCD:
		return m.storeBCD(*vx)

	case OpStore:
		return m.storeRegisters(ins.X)

	case OpLoad:
		return m.loadRegisters(ins.X)

	default:
		return &IllegalInstructionError{Opcode: ins.Word, Address: address}
	}
	return nil
}

// setFlag sets VF to 1 if set is true, otherwise to 0. It is written after the
// result so that VF as destination register ends up holding the flag.
func (m *Machine) setFlag(set bool) {
	if set {
		m.registers[FlagRegister] = 1
	} else {
		m.registers[FlagRegister] = 0
	}
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += InstructionSize
	}
}

func (m *Machine) call(address uint16) error {
	if int(m.sp) >= StackDepth {
		return ErrStackOverflow
	}
	m.sp++
	m.stack[m.sp-1] = m.pc
	m.pc = address
	return nil
}

func (m *Machine) ret() error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// draw XORs an 8 pixel wide sprite of N rows read from the index register onto
// the display. The origin wraps around the display and every pixel wraps
// independently. VF is set if any lit pixel was erased.
func (m *Machine) draw(ins Instruction) error {
	rows := int(ins.N)
	if err := checkRange(m.index, rows); err != nil {
		return err
	}

	originX := int(m.registers[ins.X]) % DisplayWidth
	originY := int(m.registers[ins.Y]) % DisplayHeight
	collision := false

	for row := range rows {
		data := m.memory[int(m.index)+row]
		for bit := range 8 {
			if data&(0x80>>bit) == 0 {
				continue
			}
			if m.screen.toggle(originX+bit, originY+row) {
				collision = true
			}
		}
	}

	m.setFlag(collision)
	return nil
}

// waitKey stores the lowest pressed key in vx, if no key is pressed the
// program counter is rewound so that the instruction is executed again.
func (m *Machine) waitKey(vx *byte) {
	for key, pressed := range m.keys {
		if pressed {
			*vx = byte(key)
			return
		}
	}
	m.pc -= InstructionSize
	m.waitingForKey = true
}

// storeBCD writes the decimal hundreds, tens and ones digits of value to I, I+1 and I+2.
func (m *Machine) storeBCD(value byte) error {
	if err := checkRange(m.index, 3); err != nil {
		return err
	}
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return nil
}

// storeRegisters writes V0 to Vlast to memory starting at I. The index register is not modified.
func (m *Machine) storeRegisters(last uint8) error {
	count := int(last) + 1
	if err := checkRange(m.index, count); err != nil {
		return err
	}
	copy(m.memory[m.index:], m.registers[:count])
	return nil
}

// loadRegisters reads V0 to Vlast from memory starting at I. The index register is not modified.
func (m *Machine) loadRegisters(last uint8) error {
	count := int(last) + 1
	if err := checkRange(m.index, count); err != nil {
		return err
	}
	copy(m.registers[:count], m.memory[m.index:])
	return nil
}
