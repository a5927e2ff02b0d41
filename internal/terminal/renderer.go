package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/machine"
)

const (
	escapeHome       = "\x1b[H"
	escapeClear      = "\x1b[2J"
	escapeHideCursor = "\x1b[?25l"
	escapeShowCursor = "\x1b[?25h"
)

// half block characters indexed by top pixel | bottom pixel<<1
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// Renderer draws frames as text, combining two display rows into one line
// of half block characters.
type Renderer struct {
	writer io.Writer
	buf    bytes.Buffer

	last  machine.Frame
	drawn bool
}

// NewRenderer returns a renderer writing to the writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{
		writer: writer,
	}
}

// Render draws the frame if it differs from the previously drawn one.
func (r *Renderer) Render(frame *machine.Frame) error {
	if r.drawn && r.last == *frame {
		return nil
	}

	r.buf.Reset()
	r.buf.WriteString(escapeHome)
	for y := 0; y < machine.DisplayHeight; y += 2 {
		for x := range machine.DisplayWidth {
			index := frame.Pixel(x, y) | frame.Pixel(x, y+1)<<1
			r.buf.WriteString(halfBlocks[index])
		}
		r.buf.WriteString("\r\n")
	}

	if _, err := r.writer.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}

	r.last = *frame
	r.drawn = true
	return nil
}
