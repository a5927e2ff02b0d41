// Package options contains the program options.
package options

import (
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/machine"
)

// DefaultHz is the default instruction rate.
const DefaultHz = 700

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"program image to run or list"`
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program image"`
	Output string `flag:"o" usage:"output listing file (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Compat    bool `flag:"compat" usage:"use conventional 5XY0 skip and FX33 BCD semantics"`
	Disasm    bool `flag:"disasm" usage:"print a disassembly listing instead of running"`
	Sprites   bool `flag:"sprites" usage:"print every byte as a row of sprite pixels, implies -disasm"`
	Headless  bool `flag:"headless" usage:"run without terminal input and output, as fast as possible"`
	ZeroBytes bool `flag:"z" usage:"include trailing zero bytes in the listing"`
	Trace     bool `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug     bool `flag:"debug" usage:"enable debug logging"`
	Quiet     bool `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains execution options.
type MachineFlags struct {
	Hz      int    `flag:"hz" usage:"instructions per second" default:"700"`
	Seed    uint64 `flag:"seed" usage:"random seed (default: OS entropy)"`
	Ticks   uint64 `flag:"ticks" usage:"stop after this many ticks (default: unlimited)"`
	KeyMask string `flag:"keys" usage:"hex key mask held in headless mode, bit k is key k"`
	Break   string `flag:"break" usage:"comma separated hex addresses to stop at"`

	Keys        uint16   // parsed KeyMask
	Breakpoints []uint16 // parsed Break addresses
}

// Program options of the emulator.
type Program struct {
	Positional
	Parameters
	Flags
	MachineFlags
}

// MachineOptions returns the machine construction options matching the
// program options. A tracer is added by the caller.
func (p Program) MachineOptions() []machine.Option {
	var opts []machine.Option
	if p.Compat {
		opts = append(opts, machine.WithQuirks(machine.CompatQuirks()))
	}
	if p.Seed != 0 {
		opts = append(opts, machine.WithRandom(machine.NewSeededRandom(p.Seed)))
	} else {
		opts = append(opts, machine.WithRandom(machine.NewEntropyRandom()))
	}
	return opts
}

// EmulatorOptions returns the run loop options matching the program options.
func (p Program) EmulatorOptions() emulator.Options {
	hz := p.Hz
	if hz <= 0 {
		hz = DefaultHz
	}
	return emulator.Options{
		Hz:          hz,
		MaxTicks:    p.Ticks,
		Unthrottled: p.Headless,
		Breakpoints: p.Breakpoints,
	}
}
