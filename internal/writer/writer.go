// Package writer implements the disassembly listing output of program images.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// Options of the writer.
type Options struct {
	MemoryComments bool // annotate instructions that access memory at I
	Sprites        bool // output every byte as a row of sprite pixels instead of instructions
	ZeroBytes      bool // output trailing zero words instead of a summary line
}

// pixel representations of the sprite view.
const (
	pixelOn  = "█"
	pixelOff = " "
)

// Writer writes a disassembly listing of a program image, one line per
// instruction word, or a sprite view with one line per byte.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new listing writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// Write outputs the listing of the program image as loaded at
// chip8.ProgramStart.
func (w Writer) Write(program []byte) error {
	if w.options.Sprites {
		return w.writeSprites(program)
	}

	end := len(program)
	if !w.options.ZeroBytes {
		end = trimTrailingZeroWords(program)
	}

	for i := 0; i+1 < end; i += chip8.OpcodeSize {
		address := chip8.ProgramStart + i
		if err := w.writeInstruction(address, program[i], program[i+1]); err != nil {
			return err
		}
	}

	if end%chip8.OpcodeSize != 0 {
		address := chip8.ProgramStart + end - 1
		if _, err := fmt.Fprintf(w.writer, "$%04X  %02X     .byte $%02X\n", address, program[end-1], program[end-1]); err != nil {
			return fmt.Errorf("writing data byte: %w", err)
		}
	}

	return w.writeZeroSummary(end, len(program))
}

// writeSprites outputs every byte of the program image as a row of 8
// pixels, most significant bit leftmost, the way DXYN draws it.
func (w Writer) writeSprites(program []byte) error {
	end := len(program)
	if !w.options.ZeroBytes {
		end = trimTrailingZeroBytes(program)
	}

	for i, b := range program[:end] {
		address := chip8.ProgramStart + i
		if _, err := fmt.Fprintf(w.writer, "$%04X  %02X  %s\n", address, b, spriteRow(b)); err != nil {
			return fmt.Errorf("writing sprite row: %w", err)
		}
	}

	return w.writeZeroSummary(end, len(program))
}

// writeZeroSummary outputs a comment line for the trimmed trailing zero
// bytes starting at offset end.
func (w Writer) writeZeroSummary(end, length int) error {
	if end >= length {
		return nil
	}
	first := chip8.ProgramStart + end
	last := chip8.ProgramStart + length - 1
	if _, err := fmt.Fprintf(w.writer, "; $%04X-$%04X: %d zero bytes\n", first, last, length-end); err != nil {
		return fmt.Errorf("writing zero byte summary: %w", err)
	}
	return nil
}

func (w Writer) writeInstruction(address int, hi, lo byte) error {
	word := chip8.Word(hi, lo)
	code := chip8.Disassemble(word)

	var comment string
	opcode, ok := chip8.Lookup(word)
	if ok && w.options.MemoryComments {
		switch {
		case opcode.ReadsMemory():
			comment = "reads memory"
		case opcode.WritesMemory():
			comment = "writes memory"
		}
	}

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "$%04X  %02X %02X  %s\n", address, hi, lo, code)
	} else {
		_, err = fmt.Fprintf(w.writer, "$%04X  %02X %02X  %-20s ; %s\n", address, hi, lo, code, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}

	// separate blocks that execution never falls through
	if ok && opcode.Instruction().EndsBlock() {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// trimTrailingZeroWords returns the length of the program without trailing
// zero instruction words. A single odd trailing zero byte is trimmed too.
func trimTrailingZeroWords(program []byte) int {
	end := len(program)
	if end%chip8.OpcodeSize != 0 && program[end-1] == 0 {
		end--
	}
	for end >= chip8.OpcodeSize && end%chip8.OpcodeSize == 0 &&
		program[end-2] == 0 && program[end-1] == 0 {
		end -= chip8.OpcodeSize
	}
	return end
}

// trimTrailingZeroBytes returns the length of the program without trailing
// zero bytes.
func trimTrailingZeroBytes(program []byte) int {
	end := len(program)
	for end > 0 && program[end-1] == 0 {
		end--
	}
	return end
}

// spriteRow returns the pixels of a sprite row byte.
func spriteRow(b byte) string {
	var sb strings.Builder
	for bit := 7; bit >= 0; bit-- {
		if b>>bit&1 == 1 {
			sb.WriteString(pixelOn)
		} else {
			sb.WriteString(pixelOff)
		}
	}
	return sb.String()
}
