//go:build !linux && !darwin

package terminal

import (
	"errors"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupported is returned by Open on platforms without terminal raw mode
// support.
var ErrUnsupported = errors.New("terminal front end is not supported on this platform, use -headless")

// Terminal is the keyboard and display of a machine run in a text terminal.
type Terminal struct {
	*Keypad
	*Renderer
}

// Open returns ErrUnsupported.
func Open(_ *log.Logger, _ *os.File, _ io.Writer) (*Terminal, error) {
	return nil, ErrUnsupported
}

// Close does nothing.
func (t *Terminal) Close() error {
	return nil
}
