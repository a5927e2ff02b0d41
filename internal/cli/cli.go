// Package cli handles command line interface logic
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	retrocli "github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(filepath.Base(os.Args[0]), os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	var opts options.Program
	flags := newFlagSet(name, &opts)

	args, err := flags.Parse(arguments)
	if err != nil {
		// the flag set already printed the error and the usage
		return opts, &UsageError{err: err}
	}

	if opts.Input == "" {
		opts.Input = opts.File
	}
	if opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// newFlagSet registers the tagged option structs as flag sections.
func newFlagSet(name string, opts *options.Program) *retrocli.FlagSet {
	flags := retrocli.NewFlagSet(name)
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Machine", &opts.MachineFlags)
	flags.AddPositional(&opts.Positional)
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the usage information and the flag sections.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Println(e.msg)
		fmt.Println()
	}
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks that no flags follow the program image
func validateArgs(args []string) error {
	for _, arg := range args {
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program image, please pass the program image as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions validates option values, parses the hex options and
// resolves option conflicts
func normalizeOptions(opts *options.Program) error {
	if opts.Hz <= 0 {
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Hz)
	}

	if opts.KeyMask != "" {
		keys, err := parseHex(opts.KeyMask, 16)
		if err != nil {
			return fmt.Errorf("parsing key mask: %w", err)
		}
		opts.Keys = uint16(keys)
	}

	if opts.Break != "" {
		breakpoints, err := parseBreakpoints(opts.Break)
		if err != nil {
			return err
		}
		opts.Breakpoints = breakpoints
	}

	if opts.Sprites {
		opts.Disasm = true
	}

	// the trace sink logs at debug level
	if opts.Trace {
		opts.Debug = true
		opts.Quiet = false
	}
	return nil
}

// parseBreakpoints parses a comma separated list of hex addresses.
func parseBreakpoints(s string) ([]uint16, error) {
	var breakpoints []uint16
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		address, err := parseHex(field, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		if address > chip8.MaxAddress {
			return nil, fmt.Errorf("breakpoint address $%X exceeds memory", address)
		}
		breakpoints = append(breakpoints, uint16(address))
	}
	return breakpoints, nil
}

// parseHex parses a hex number with an optional $ or 0x prefix.
func parseHex(s string, bitSize int) (uint64, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	value, err := strconv.ParseUint(s, 16, bitSize)
	if err != nil {
		return 0, fmt.Errorf("parsing hex value: %w", err)
	}
	return value, nil
}
