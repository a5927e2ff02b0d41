package machine

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// spriteWidth is the fixed width of a sprite row in pixels.
const spriteWidth = 8

// Step executes the instruction at PC. Unknown instructions are executed as
// no-ops. On a fault the state is left unchanged, PC keeps pointing at the
// faulting instruction and a *FaultError is returned.
func (m *Machine) Step() error {
	pc := m.PC
	if int(pc)+1 >= chip8.MemorySize {
		return newFault(ErrAddressFault, pc, 0, int(pc))
	}

	word := chip8.Word(m.Memory[pc], m.Memory[pc+1])
	op := chip8.Decode(word)
	m.PC += chip8.OpcodeSize
	waiting := m.AwaitingKey()

	if err := m.execute(pc, op); err != nil {
		m.PC = pc
		return err
	}

	m.Cycles++
	m.trace(Event{
		Kind:   EventExecuted,
		Cycle:  m.Cycles,
		PC:     pc,
		Opcode: word,
	})
	if !waiting && m.AwaitingKey() {
		m.trace(Event{
			Kind:     EventKeyWait,
			Cycle:    m.Cycles,
			PC:       pc,
			Opcode:   word,
			Register: op.X,
		})
	}
	return nil
}

func (m *Machine) execute(pc uint16, op chip8.Fields) error {
	switch op.Family {
	case 0x0:
		return m.executeSystem(pc, op)
	case 0x1:
		m.PC = op.NNN
	case 0x2:
		return m.call(pc, op)
	case 0x3:
		m.skipIf(m.V[op.X] == op.NN)
	case 0x4:
		m.skipIf(m.V[op.X] != op.NN)
	case 0x5:
		// the low nibble is not decoded
		equal := m.V[op.X] == m.V[op.Y]
		m.skipIf(equal == m.quirks.SkipEqualRegisters)
	case 0x6:
		m.V[op.X] = op.NN
	case 0x7:
		m.V[op.X] += op.NN
	case 0x8:
		m.executeALU(op)
	case 0x9:
		m.skipIf(m.V[op.X] != m.V[op.Y])
	case 0xA:
		m.I = op.NNN
	case 0xB:
		m.PC = op.NNN + uint16(m.V[0])
	case 0xC:
		m.V[op.X] = m.random.RandomByte() & op.NN
	case 0xD:
		return m.draw(pc, op)
	case 0xE:
		m.executeKeySkip(op)
	case 0xF:
		return m.executeMisc(pc, op)
	}
	return nil
}

// executeSystem handles family 0. Machine code routines (0NNN) are not
// supported and ignored.
func (m *Machine) executeSystem(pc uint16, op chip8.Fields) error {
	switch op.Word {
	case 0x00E0:
		m.Display = Frame{}
	case 0x00EE:
		return m.ret(pc, op)
	}
	return nil
}

func (m *Machine) call(pc uint16, op chip8.Fields) error {
	if m.SP >= StackDepth {
		return newFault(ErrStackOverflow, pc, op.Word, int(m.SP))
	}
	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = op.NNN
	return nil
}

func (m *Machine) ret(pc uint16, op chip8.Fields) error {
	if m.SP == 0 {
		return newFault(ErrStackUnderflow, pc, op.Word, int(m.SP))
	}
	m.SP--
	m.PC = m.Stack[m.SP]
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.PC += chip8.OpcodeSize
	}
}

// setFlag writes VF. It is always called after the result register was
// written so that the flag wins when VF is the destination.
func (m *Machine) setFlag(set bool) {
	if set {
		m.V[FlagRegister] = 1
	} else {
		m.V[FlagRegister] = 0
	}
}

// executeALU handles the register to register operations of family 8.
func (m *Machine) executeALU(op chip8.Fields) {
	vx, vy := m.V[op.X], m.V[op.Y]

	switch op.N {
	case 0x0:
		m.V[op.X] = vy
	case 0x1:
		m.V[op.X] = vx | vy
	case 0x2:
		m.V[op.X] = vx & vy
	case 0x3:
		m.V[op.X] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		m.V[op.X] = uint8(sum)
		m.setFlag(sum > 0xFF)
	case 0x5:
		m.V[op.X] = vx - vy
		m.setFlag(vx >= vy)
	case 0x6:
		m.V[op.X] = vx >> 1
		m.setFlag(vx&0x01 != 0)
	case 0x7:
		m.V[op.X] = vy - vx
		m.setFlag(vy >= vx)
	case 0xE:
		m.V[op.X] = vx << 1
		m.setFlag(vx&0x80 != 0)
	}
}

// draw XORs an 8 pixel wide sprite of op.N rows read from I onto the display
// at (VX, VY). Coordinates wrap around the display edges. VF is set if any
// lit pixel was turned off.
func (m *Machine) draw(pc uint16, op chip8.Fields) error {
	height := int(op.N)
	if height > 0 {
		if last := int(m.I) + height - 1; last >= chip8.MemorySize {
			return newFault(ErrAddressFault, pc, op.Word, last)
		}
	}

	originX := int(m.V[op.X])
	originY := int(m.V[op.Y])
	collision := false

	for row := range height {
		sprite := m.Memory[int(m.I)+row]
		y := (originY + row) % DisplayHeight

		for col := range spriteWidth {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := (originX + col) % DisplayWidth
			cell := &m.Display[y*DisplayWidth+x]
			if *cell == 1 {
				collision = true
			}
			*cell ^= 1
		}
	}

	m.setFlag(collision)
	return nil
}

// executeKeySkip handles the keypad skips of family E.
func (m *Machine) executeKeySkip(op chip8.Fields) {
	key := m.V[op.X] & 0x0F
	pressed := m.Keys&(1<<key) != 0

	switch op.NN {
	case 0x9E:
		m.skipIf(pressed)
	case 0xA1:
		m.skipIf(!pressed)
	}
}

// executeMisc handles the timer, key wait and memory transfer
// instructions of family F.
func (m *Machine) executeMisc(pc uint16, op chip8.Fields) error {
	switch op.NN {
	case 0x07:
		m.V[op.X] = m.DT
	case 0x0A:
		m.awaitKey(op)
	case 0x15:
		m.DT = m.V[op.X]
	case 0x18:
		m.ST = m.V[op.X]
	case 0x1E:
		m.I += uint16(m.V[op.X])
	case 0x29:
		m.I = GlyphAddress + uint16(m.V[op.X])*GlyphSize
	case 0x33:
		return m.storeBCD(pc, op)
	case 0x55:
		return m.storeRegisters(pc, op)
	case 0x65:
		return m.loadRegisters(pc, op)
	}
	return nil
}

// storeBCD writes the hundreds, tens and ones digits of VX to consecutive
// bytes starting at I+1, or at I with the BCDAtI quirk.
func (m *Machine) storeBCD(pc uint16, op chip8.Fields) error {
	start := int(m.I) + 1
	if m.quirks.BCDAtI {
		start = int(m.I)
	}
	if last := start + 2; last >= chip8.MemorySize {
		return newFault(ErrAddressFault, pc, op.Word, last)
	}

	value := m.V[op.X]
	m.Memory[start] = value / 100
	m.Memory[start+1] = value / 10 % 10
	m.Memory[start+2] = value % 10
	return nil
}

// storeRegisters copies V0..VX inclusive to memory starting at I.
func (m *Machine) storeRegisters(pc uint16, op chip8.Fields) error {
	start := int(m.I)
	if last := start + int(op.X); last >= chip8.MemorySize {
		return newFault(ErrAddressFault, pc, op.Word, last)
	}
	copy(m.Memory[start:], m.V[:op.X+1])
	return nil
}

// loadRegisters fills V0..VX inclusive from memory starting at I.
func (m *Machine) loadRegisters(pc uint16, op chip8.Fields) error {
	start := int(m.I)
	if last := start + int(op.X); last >= chip8.MemorySize {
		return newFault(ErrAddressFault, pc, op.Word, last)
	}
	copy(m.V[:op.X+1], m.Memory[start:])
	return nil
}
