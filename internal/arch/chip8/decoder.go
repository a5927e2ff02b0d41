package chip8

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space (4KB total).
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where CHIP-8 programs are loaded and
	// begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits behind ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// Fields contains the bit fields of a decoded instruction word.
type Fields struct {
	Word   uint16 // complete instruction word
	Family uint8  // bits 15-12, selects the dispatch group
	X      uint8  // bits 11-8, first register index
	Y      uint8  // bits 7-4, second register index
	N      uint8  // bits 3-0, 4-bit immediate
	NN     uint8  // bits 7-0, 8-bit immediate
	NNN    uint16 // bits 11-0, address
}

// Decode extracts all instruction fields from a 16-bit instruction word.
func Decode(word uint16) Fields {
	return Fields{
		Word:   word,
		Family: extractFamily(word),
		X:      extractRegisterX(word),
		Y:      extractRegisterY(word),
		N:      uint8(word & 0x000F),
		NN:     uint8(word & 0x00FF),
		NNN:    word & 0x0FFF,
	}
}

// Word assembles a big-endian instruction word from its two memory bytes.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// decodeOpcode extracts the 16-bit opcode from instruction bytes.
func decodeOpcode(data []byte) (uint16, bool) {
	if len(data) < OpcodeSize {
		return 0, false
	}
	return Word(data[0], data[1]), true
}

// extractFamily extracts the opcode family nibble from a CHIP-8 opcode.
func extractFamily(opcode uint16) uint8 {
	return uint8((opcode & 0xF000) >> 12)
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}
