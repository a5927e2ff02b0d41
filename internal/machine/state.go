// Package machine implements the CHIP-8 virtual machine core: the machine
// state, the instruction executor, the key wait sub-state and the timers.
package machine

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// Display dimensions in cells.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16

	// FlagRegister is the index of the VF flag register.
	FlagRegister = 0xF

	// StackDepth is the number of return address slots.
	StackDepth = 16

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

// Frame is the monochrome framebuffer, stored row-major with one cell per
// pixel. A cell is either 0 or 1.
type Frame [DisplayWidth * DisplayHeight]uint8

// Pixel returns the cell at the given coordinates.
func (f *Frame) Pixel(x, y int) uint8 {
	return f[y*DisplayWidth+x]
}

// RunState is the state of the key wait sub-machine.
type RunState uint8

const (
	// Running executes one instruction per tick.
	Running RunState = iota
	// AwaitingKey suspends execution until a key is pressed.
	AwaitingKey
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("RunState(%d)", uint8(s))
	}
}

// KeyWait holds the key wait sub-machine state. Register is only meaningful
// while State is AwaitingKey.
type KeyWait struct {
	State    RunState
	Register uint8
}

// State is the complete mutable state of one machine instance.
type State struct {
	Memory [chip8.MemorySize]byte
	V      [RegisterCount]byte
	Stack  [StackDepth]uint16

	I  uint16 // address register
	PC uint16 // program counter
	SP uint8  // next free stack slot

	DT uint8 // delay timer
	ST uint8 // sound timer

	Display Frame
	Keys    uint16 // bit k is set while hex key k is held
	Wait    KeyWait

	Cycles uint64 // number of executed instructions
}

// Machine is a CHIP-8 virtual machine. It is not safe for concurrent use,
// the owner has to serialize ticks and timer updates.
type Machine struct {
	State

	program []byte
	random  RandomSource
	tracer  Tracer
	quirks  Quirks
}

// New returns a machine with the program image loaded at chip8.ProgramStart.
func New(program []byte, options ...Option) (*Machine, error) {
	if len(program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), chip8.MaxProgramSize)
	}

	m := &Machine{
		program: make([]byte, len(program)),
	}
	copy(m.program, program)

	for _, option := range options {
		option(m)
	}
	if m.random == nil {
		m.random = NewSeededRandom(0)
	}

	m.Reset()
	return m, nil
}

// Reset restores the power-on state: memory is cleared, the glyph table and
// the program image are written and all registers are zeroed.
func (m *Machine) Reset() {
	m.State = State{
		PC: chip8.ProgramStart,
	}
	copy(m.Memory[GlyphAddress:], glyphs[:])
	copy(m.Memory[chip8.ProgramStart:], m.program)
}

// SetKeys latches the current keypad bitmask.
func (m *Machine) SetKeys(keys uint16) {
	m.Keys = keys
}

// Frame returns the display buffer.
func (m *Machine) Frame() *Frame {
	return &m.Display
}

// Quirks returns the enabled behavior variations.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}
