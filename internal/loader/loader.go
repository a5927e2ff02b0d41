// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/machine"
)

var (
	// ErrEmptyProgram is returned for program images without content.
	ErrEmptyProgram = errors.New("program image is empty")

	// ErrProgramTooLarge is returned for program images that do not fit
	// into memory. It wraps machine.ErrProgramTooLarge.
	ErrProgramTooLarge = fmt.Errorf("loading program: %w", machine.ErrProgramTooLarge)
)

// Loader handles loading raw program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image file. The image is raw binary data without
// any header that is placed at chip8.ProgramStart in memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a program image from the reader and validates its
// size. At most one byte more than the maximum program size is read.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
