package machine

import (
	"math/bits"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// Tick advances the machine by one tick. While the machine awaits a key,
// no instruction is executed: the tick either resolves the wait using the
// latched keypad state or does nothing. Otherwise one instruction is
// executed.
func (m *Machine) Tick() error {
	if m.Wait.State == AwaitingKey {
		m.resolveKeyWait()
		return nil
	}
	return m.Step()
}

// AwaitingKey returns whether execution is suspended waiting for a key.
func (m *Machine) AwaitingKey() bool {
	return m.Wait.State == AwaitingKey
}

// awaitKey suspends execution until a key is pressed, the key index will be
// stored in VX.
func (m *Machine) awaitKey(op chip8.Fields) {
	m.Wait = KeyWait{
		State:    AwaitingKey,
		Register: op.X,
	}
}

// resolveKeyWait stores the lowest pressed key in the wait register and
// resumes execution. It returns false if no key is pressed.
func (m *Machine) resolveKeyWait() bool {
	if m.Keys == 0 {
		return false
	}

	key := uint8(bits.TrailingZeros16(m.Keys))
	register := m.Wait.Register
	m.V[register] = key
	m.Wait = KeyWait{}

	m.trace(Event{
		Kind:     EventKeyResolved,
		Cycle:    m.Cycles,
		PC:       m.PC,
		Register: register,
		Key:      key,
	})
	return true
}
