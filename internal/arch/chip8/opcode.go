package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Opcode represents an identified CHIP-8 instruction word.
type Opcode struct {
	op   chip8.Opcode
	word uint16
}

// Lookup identifies the instruction word in the CHIP-8 opcode tables.
// It returns false for words that do not encode a defined instruction.
func Lookup(word uint16) (Opcode, bool) {
	opcodes := chip8.Opcodes[int(extractFamily(word))]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return Opcode{op: op, word: word}, op.Instruction != nil
		}
	}
	return Opcode{word: word}, false
}

// LookupBytes identifies the instruction stored in the given memory bytes.
func LookupBytes(data []byte) (Opcode, bool) {
	word, ok := decodeOpcode(data)
	if !ok {
		return Opcode{}, false
	}
	return Lookup(word)
}

// Word returns the instruction word of the opcode.
func (o Opcode) Word() uint16 {
	return o.word
}

// Instruction returns the instruction associated with this opcode.
func (o Opcode) Instruction() Instruction {
	return Instruction{ins: o.op.Instruction}
}

// ReadsMemory returns true if this CHIP-8 instruction reads from memory.
func (o Opcode) ReadsMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8.MemoryReadInstructions.Contains(o.op.Instruction.Name)
}

// WritesMemory returns true if this CHIP-8 instruction writes to memory.
func (o Opcode) WritesMemory() bool {
	if o.op.Instruction == nil {
		return false
	}
	return chip8.MemoryWriteInstructions.Contains(o.op.Instruction.Name)
}
