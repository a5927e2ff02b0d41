// Package emulator drives a machine in real time: it feeds keypad input,
// paces instruction ticks, counts the timers down at 60 Hz and renders the
// display at every timer frame.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// ErrInvalidHz is returned for a non positive instruction rate.
var ErrInvalidHz = errors.New("instruction rate must be positive")

// Keyboard provides the currently held keys as a bit mask, bit k set means
// key k is pressed.
type Keyboard interface {
	Keys() uint16
}

// Display presents a frame of the machine.
type Display interface {
	Render(frame *machine.Frame) error
}

// Options defines the run loop behavior.
type Options struct {
	Hz          int      // ticks per second
	MaxTicks    uint64   // stop after this many ticks, 0 for no limit
	Unthrottled bool     // do not wait between ticks, timers follow the executed ticks
	Breakpoints []uint16 // stop before executing an instruction at these addresses
}

// BreakpointError is returned by Run when execution reaches a breakpoint.
type BreakpointError struct {
	Address uint16
	Cycles  uint64
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("breakpoint reached at $%03X after %d cycles", e.Address, e.Cycles)
}

// Emulator runs a machine with its input and output collaborators.
type Emulator struct {
	logger   *log.Logger
	machine  *machine.Machine
	keyboard Keyboard
	display  Display
	opts     Options

	clock       *machine.TimerClock
	breakpoints set.Set[uint16]
	ticks       uint64
	resumeAt    int // breakpoint address to pass once after resuming, -1 for none
}

// New returns an emulator for the machine.
func New(logger *log.Logger, m *machine.Machine, keyboard Keyboard, display Display, opts Options) (*Emulator, error) {
	if opts.Hz <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHz, opts.Hz)
	}

	breakpoints := set.New[uint16]()
	for _, address := range opts.Breakpoints {
		breakpoints.Add(address)
	}

	return &Emulator{
		logger:      logger,
		machine:     m,
		keyboard:    keyboard,
		display:     display,
		opts:        opts,
		clock:       machine.NewTimerClock(opts.Hz),
		breakpoints: breakpoints,
		resumeAt:    -1,
	}, nil
}

// Ticks returns the number of ticks run.
func (e *Emulator) Ticks() uint64 {
	return e.ticks
}

// Run ticks the machine until the context is cancelled, the tick limit is
// reached, a breakpoint is hit or the machine faults. Cancellation and the
// tick limit end the run without error.
//
// A throttled run counts the timers down at TimerFrequency in real time,
// independent of the instruction rate. An unthrottled run derives the timer
// frames from the executed ticks instead.
func (e *Emulator) Run(ctx context.Context) error {
	e.logger.Debug("Starting run loop",
		log.Int("hz", e.opts.Hz),
		log.Duration("period", e.clock.Period()),
		log.Bool("unthrottled", e.opts.Unthrottled),
	)

	if e.opts.Unthrottled {
		return e.runUnthrottled(ctx)
	}
	return e.runThrottled(ctx)
}

func (e *Emulator) runUnthrottled(ctx context.Context) error {
	for !e.tickLimitReached() {
		if ctx.Err() != nil {
			return nil
		}
		if err := e.RunTick(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emulator) runThrottled(ctx context.Context) error {
	instructions := time.NewTicker(e.clock.Period())
	defer instructions.Stop()
	frames := time.NewTicker(machine.TimerPeriod)
	defer frames.Stop()

	start := time.Now()
	var framesDone int64

	for !e.tickLimitReached() {
		select {
		case <-ctx.Done():
			return nil

		case now := <-frames.C:
			// catch up on frames the ticker dropped
			due := int64(now.Sub(start) * machine.TimerFrequency / time.Second)
			for ; framesDone < due; framesDone++ {
				if err := e.RunFrame(); err != nil {
					return err
				}
			}

		case <-instructions.C:
			if err := e.RunTick(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emulator) tickLimitReached() bool {
	if e.opts.MaxTicks > 0 && e.ticks >= e.opts.MaxTicks {
		e.logger.Debug("Tick limit reached", log.Int("ticks", int(e.ticks)))
		return true
	}
	return false
}

// RunTick performs a single tick: it latches the keypad, checks for a
// breakpoint and executes one instruction. An unthrottled emulator also
// advances the timers by the emulated duration of the tick, rendering the
// display after every timer decrement.
func (e *Emulator) RunTick() error {
	m := e.machine
	m.SetKeys(e.keyboard.Keys())

	if err := e.checkBreakpoint(); err != nil {
		return err
	}

	if err := m.Tick(); err != nil {
		return fmt.Errorf("running tick %d: %w", e.ticks, err)
	}
	e.ticks++

	if !e.opts.Unthrottled {
		return nil
	}
	for range e.clock.Advance(1) {
		if err := e.RunFrame(); err != nil {
			return err
		}
	}
	return nil
}

// RunFrame counts the timers down once and renders the display.
func (e *Emulator) RunFrame() error {
	e.machine.DecrementTimers()
	if err := e.display.Render(e.machine.Frame()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

// checkBreakpoint returns a breakpoint error if the next instruction to
// execute is at a breakpoint address. Calling RunTick again after a
// breakpoint executes the instruction.
func (e *Emulator) checkBreakpoint() error {
	m := e.machine
	if m.AwaitingKey() || !e.breakpoints.Contains(m.PC) {
		e.resumeAt = -1
		return nil
	}
	if e.resumeAt == int(m.PC) {
		e.resumeAt = -1
		return nil
	}

	e.resumeAt = int(m.PC)
	return &BreakpointError{
		Address: m.PC,
		Cycles:  m.Cycles,
	}
}

// StaticKeyboard reports a fixed key mask.
type StaticKeyboard uint16

// Keys returns the fixed key mask.
func (k StaticKeyboard) Keys() uint16 {
	return uint16(k)
}

// NopDisplay discards all frames.
type NopDisplay struct{}

// Render does nothing.
func (NopDisplay) Render(*machine.Frame) error {
	return nil
}
