package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	retrocli "github.com/retroenv/retrogolib/cli"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-seed", "42", "game.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, options.DefaultHz, opts.Hz)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"test.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.ch8"},
				MachineFlags: options.MachineFlags{Hz: options.DefaultHz},
			},
		},
		{
			name: "headless run",
			args: []string{"-headless", "-ticks", "1000", "-keys", "0x8001", "-hz", "500", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				Flags:      options.Flags{Headless: true},
				MachineFlags: options.MachineFlags{
					Hz:    500,
					Ticks: 1000,
					Keys:  0x8001,
				},
			},
		},
		{
			name: "trace implies debug",
			args: []string{"-q", "-trace", "test.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.ch8"},
				Flags:        options.Flags{Trace: true, Debug: true},
				MachineFlags: options.MachineFlags{Hz: options.DefaultHz},
			},
		},
		{
			name: "sprite view implies listing",
			args: []string{"-sprites", "-z", "test.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.ch8"},
				Flags:        options.Flags{Sprites: true, Disasm: true, ZeroBytes: true},
				MachineFlags: options.MachineFlags{Hz: options.DefaultHz},
			},
		},
		{
			name: "disassembly to file",
			args: []string{"-disasm", "-o", "out.txt", "-compat", "test.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "test.ch8", Output: "out.txt"},
				Flags:        options.Flags{Disasm: true, Compat: true},
				MachineFlags: options.MachineFlags{Hz: options.DefaultHz},
			},
		},
		{
			name: "input flag",
			args: []string{"-i", "other.ch8"},
			want: options.Program{
				Parameters:   options.Parameters{Input: "other.ch8"},
				MachineFlags: options.MachineFlags{Hz: options.DefaultHz},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs("prog", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.Input, got.Input)
			assert.Equal(t, tt.want.Output, got.Output)
			assert.Equal(t, tt.want.Flags, got.Flags)
			assert.Equal(t, tt.want.Hz, got.Hz)
			assert.Equal(t, tt.want.Seed, got.Seed)
			assert.Equal(t, tt.want.Ticks, got.Ticks)
			assert.Equal(t, tt.want.Keys, got.Keys)
			assert.Len(t, got.Breakpoints, 0)
		})
	}
}

func TestParseArgsBreakpoints(t *testing.T) {
	got, err := parseArgs("prog", []string{"-break", "200,$2A4, 0x300,FFF", "test.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "200,$2A4, 0x300,FFF", got.Break)
	assert.Len(t, got.Breakpoints, 4)
	assert.Equal(t, uint16(0x200), got.Breakpoints[0])
	assert.Equal(t, uint16(0x2A4), got.Breakpoints[1])
	assert.Equal(t, uint16(0x300), got.Breakpoints[2])
	assert.Equal(t, uint16(0xFFF), got.Breakpoints[3])
}

func TestParseArgsPositional(t *testing.T) {
	got, err := parseArgs("prog", []string{"-headless", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", got.File)
	assert.Equal(t, "game.ch8", got.Input)

	// the input flag takes precedence
	got, err = parseArgs("prog", []string{"-i", "other.ch8", "game.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, "other.ch8", got.Input)
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no program image", []string{"-headless"}, true},
		{"flag after program image", []string{"test.ch8", "-headless"}, true},
		{"unknown flag", []string{"-unknown", "test.ch8"}, true},
		{"invalid key mask", []string{"-keys", "xyz", "test.ch8"}, false},
		{"key mask too large", []string{"-keys", "10000", "test.ch8"}, false},
		{"breakpoint outside memory", []string{"-break", "1000", "test.ch8"}, false},
		{"invalid breakpoint", []string{"-break", "200,zz", "test.ch8"}, false},
		{"invalid rate", []string{"-hz", "0", "test.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	_, err := parseArgs("prog", []string{"-h"})
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.ErrorIs(t, err, retrocli.ErrHelpRequested)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
	}{
		{"ff", 0xFF},
		{"$200", 0x200},
		{"0x2A4", 0x2A4},
		{"0XFFFF", 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, err := parseHex(tt.input, 16)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}
