// Package chip8 provides the CHIP-8 instruction decoder.
//
// # Memory Layout
//
// CHIP-8 systems have 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x04F: built-in hexadecimal glyph table (16 glyphs of 5 bytes)
//   - 0x050-0x1FF: reserved interpreter area
//   - ProgramStart-MaxAddress: program image and data
//
// # Instruction Format
//
// All instructions are 2 bytes (16 bits), stored big-endian. The fields of an
// instruction word are:
//
//	family = bits 15-12
//	x      = bits 11-8
//	y      = bits 7-4
//	n      = bits 3-0
//	nn     = bits 7-0
//	nnn    = bits 11-0
//
// Decode extracts these fields without side effects for any of the 65536
// possible words. Lookup identifies a word against the retrogolib CHIP-8
// opcode tables and Disassemble renders it as assembly text.
//
// # Usage Example
//
//	word := chip8.Word(memory[pc], memory[pc+1])
//	fields := chip8.Decode(word)
//	if fields.Family == 0x6 {
//		v[fields.X] = fields.NN
//	}
//	fmt.Println(chip8.Disassemble(word)) // ld V0, $05
package chip8
