package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine creates a machine with a program built from the given
// instruction words.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()
	m, err := New(program(words...))
	assert.NoError(t, err)
	return m
}

func program(words ...uint16) []byte {
	data := make([]byte, 0, len(words)*2)
	for _, word := range words {
		data = append(data, byte(word>>8), byte(word))
	}
	return data
}

func TestNew(t *testing.T) {
	m := newTestMachine(t, 0x6005, 0x1200)

	assert.Equal(t, uint16(chip8.ProgramStart), m.PC)
	assert.Equal(t, uint16(0), m.I)
	assert.Equal(t, uint8(0), m.SP)
	assert.Equal(t, uint8(0), m.DT)
	assert.Equal(t, uint8(0), m.ST)
	assert.Equal(t, Running, m.Wait.State)
	assert.False(t, m.AwaitingKey())

	assert.Equal(t, byte(0x60), m.Memory[0x200])
	assert.Equal(t, byte(0x05), m.Memory[0x201])
	assert.Equal(t, byte(0x12), m.Memory[0x202])
	assert.Equal(t, byte(0x00), m.Memory[0x203])
	assert.Equal(t, byte(0x00), m.Memory[0x204])

	for i, b := range glyphs {
		assert.Equal(t, b, m.Memory[GlyphAddress+i])
	}
	for i := len(glyphs); i < chip8.ProgramStart; i++ {
		assert.Equal(t, byte(0), m.Memory[i])
	}
}

func TestNewProgramSize(t *testing.T) {
	t.Run("maximum size fits", func(t *testing.T) {
		data := make([]byte, chip8.MaxProgramSize)
		data[len(data)-1] = 0xAB

		m, err := New(data)
		assert.NoError(t, err)
		assert.Equal(t, byte(0xAB), m.Memory[chip8.MaxAddress])
	})

	t.Run("oversized program", func(t *testing.T) {
		_, err := New(make([]byte, chip8.MaxProgramSize+1))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
	})

	t.Run("empty program", func(t *testing.T) {
		m, err := New(nil)
		assert.NoError(t, err)
		assert.Equal(t, byte(0), m.Memory[chip8.ProgramStart])
	})
}

func TestNewCopiesProgram(t *testing.T) {
	data := program(0x6005)
	m, err := New(data)
	assert.NoError(t, err)

	data[0] = 0xFF
	m.Reset()
	assert.Equal(t, byte(0x60), m.Memory[chip8.ProgramStart])
}

func TestReset(t *testing.T) {
	m := newTestMachine(t, 0x6005, 0xA300, 0xF055, 0x00E0)
	for range 3 {
		assert.NoError(t, m.Step())
	}
	m.DT = 10
	m.Display[5] = 1
	m.Keys = 0x10
	m.Wait = KeyWait{State: AwaitingKey, Register: 3}

	m.Reset()

	assert.Equal(t, uint16(chip8.ProgramStart), m.PC)
	assert.Equal(t, uint16(0), m.I)
	assert.Equal(t, byte(0), m.V[0])
	assert.Equal(t, byte(0), m.Memory[0x300])
	assert.Equal(t, uint8(0), m.DT)
	assert.Equal(t, uint8(0), m.Display[5])
	assert.Equal(t, uint16(0), m.Keys)
	assert.Equal(t, Running, m.Wait.State)
	assert.Equal(t, uint64(0), m.Cycles)
	assert.Equal(t, byte(0x60), m.Memory[chip8.ProgramStart])
}

func TestFramePixel(t *testing.T) {
	m := newTestMachine(t)
	m.Display[2*DisplayWidth+3] = 1

	frame := m.Frame()
	assert.Equal(t, uint8(1), frame.Pixel(3, 2))
	assert.Equal(t, uint8(0), frame.Pixel(2, 3))
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "awaiting key", AwaitingKey.String())
	assert.Equal(t, "RunState(7)", RunState(7).String())
}

func TestFaultError(t *testing.T) {
	err := newFault(ErrAddressFault, 0x0234, 0xF355, 0x1002)

	assert.Equal(t, "address outside of memory: address $1002, instruction $F355 at $234", err.Error())
	assert.True(t, errors.Is(err, ErrAddressFault))
	assert.False(t, errors.Is(err, ErrStackOverflow))
}
