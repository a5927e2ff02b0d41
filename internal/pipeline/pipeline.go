// Package pipeline orchestrates the workflow stages of the command line tool:
// loading a program image, then listing or running it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/terminal"
	"github.com/retroenv/chip8vm/internal/trace"
	"github.com/retroenv/chip8vm/internal/writer"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete program workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline: it loads the program image and either
// writes its listing or runs it with the terminal or headless front end.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if !p.detector.IsCHIP8(opts.Input) {
		p.logger.Warn("File extension indicates a program image of another system",
			log.String("file", opts.Input))
	}
	p.printInfo(opts, program)

	if opts.Disasm {
		return p.executeListing(opts, program)
	}

	if opts.Headless {
		_, err := p.Run(ctx, opts, program, emulator.StaticKeyboard(opts.Keys), emulator.NopDisplay{})
		return err
	}

	term, err := terminal.Open(p.logger, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer func() {
		if err := term.Close(); err != nil {
			p.logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	_, err = p.Run(ctx, opts, program, term, term)
	return err
}

func (p *Pipeline) executeListing(opts options.Program, program []byte) error {
	output, err := fileprocessor.CreateWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	if err := p.List(opts, program, output); err != nil {
		_ = output.Close()
		return err
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// List writes the disassembly listing or the sprite view of the program
// image.
func (p *Pipeline) List(opts options.Program, program []byte, output io.Writer) error {
	listing := writer.New(output, writer.Options{
		MemoryComments: true,
		Sprites:        opts.Sprites,
		ZeroBytes:      opts.ZeroBytes,
	})
	if err := listing.Write(program); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Run creates a machine for the program image and runs it until the
// context is cancelled, the tick limit or a breakpoint is reached, or the
// machine faults. Reaching a breakpoint is not an error. The machine is
// returned for inspection.
func (p *Pipeline) Run(ctx context.Context, opts options.Program, program []byte,
	keyboard emulator.Keyboard, display emulator.Display) (*machine.Machine, error) {

	machineOpts := opts.MachineOptions()
	if opts.Trace {
		machineOpts = append(machineOpts, machine.WithTracer(trace.New(p.logger)))
	}

	m, err := machine.New(program, machineOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}

	emu, err := emulator.New(p.logger, m, keyboard, display, opts.EmulatorOptions())
	if err != nil {
		return nil, fmt.Errorf("creating emulator: %w", err)
	}

	err = emu.Run(ctx)

	var bp *emulator.BreakpointError
	switch {
	case err == nil:
		p.logState(m, emu.Ticks())
		return m, nil

	case errors.As(err, &bp):
		p.logger.Info("Breakpoint reached", log.Hex("pc", bp.Address))
		p.logState(m, emu.Ticks())
		return m, nil

	default:
		p.logState(m, emu.Ticks())
		return m, fmt.Errorf("running program: %w", err)
	}
}

// logState logs the machine registers.
func (p *Pipeline) logState(m *machine.Machine, ticks uint64) {
	p.logger.Debug("Machine state",
		log.Int("ticks", int(ticks)),
		log.Int("cycles", int(m.Cycles)),
		log.Hex("pc", m.PC),
		log.Hex("i", m.I),
		log.Uint8("sp", m.SP),
		log.Uint8("dt", m.DT),
		log.Uint8("st", m.ST),
		log.String("v", fmt.Sprintf("% X", m.V[:])),
		log.Stringer("state", m.Wait.State),
	)
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	mode := "run"
	switch {
	case opts.Sprites:
		mode = "sprites"
	case opts.Disasm:
		mode = "listing"
	}

	p.logger.Info("Processing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", arch.CHIP8System),
		log.Int("size", len(program)),
		log.String("mode", mode),
	)
	if opts.Compat {
		p.logger.Info("Using compatibility quirks for 5XY0 and FX33")
	}
}
