package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestRenderer(t *testing.T) {
	var frame machine.Frame
	frame[0] = 1                          // 0,0
	frame[machine.DisplayWidth+1] = 1     // 1,1
	frame[2] = 1                          // 2,0
	frame[machine.DisplayWidth+2] = 1     // 2,1
	frame[31*machine.DisplayWidth+63] = 1 // 63,31

	var buf bytes.Buffer
	renderer := NewRenderer(&buf)
	assert.NoError(t, renderer.Render(&frame))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, escapeHome))

	lines := strings.Split(strings.TrimPrefix(output, escapeHome), "\r\n")
	assert.Len(t, lines, machine.DisplayHeight/2+1)
	assert.Equal(t, "▀▄█"+strings.Repeat(" ", 61), lines[0])
	assert.Equal(t, strings.Repeat(" ", 64), lines[1])
	assert.Equal(t, strings.Repeat(" ", 63)+"▄", lines[15])
	assert.Equal(t, "", lines[16])
}

func TestRendererSkipsUnchangedFrames(t *testing.T) {
	var frame machine.Frame
	var buf bytes.Buffer
	renderer := NewRenderer(&buf)

	assert.NoError(t, renderer.Render(&frame))
	size := buf.Len()
	assert.True(t, size > 0)

	assert.NoError(t, renderer.Render(&frame))
	assert.Equal(t, size, buf.Len())

	frame[100] = 1
	assert.NoError(t, renderer.Render(&frame))
	assert.True(t, buf.Len() > 2*size)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRendererWriteError(t *testing.T) {
	var frame machine.Frame
	renderer := NewRenderer(failingWriter{})
	assert.ErrorContains(t, renderer.Render(&frame), "writing frame")
}
