package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program image does not fit into
	// memory behind the program start address.
	ErrProgramTooLarge = errors.New("program image too large")

	// ErrAddressFault is wrapped by faults for memory accesses outside of
	// the address space.
	ErrAddressFault = errors.New("address outside of memory")

	// ErrStackOverflow is wrapped by faults for calls with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is wrapped by faults for returns with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// FaultError describes a fatal execution fault. Execution can not continue
// after a fault without resetting the machine.
type FaultError struct {
	PC      uint16 // address of the faulting instruction
	Opcode  uint16 // faulting instruction word, 0 if it could not be fetched
	Address int    // offending memory address or stack pointer
	Err     error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: address $%04X, instruction $%04X at $%03X", e.Err, e.Address, e.Opcode, e.PC)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

func newFault(err error, pc, opcode uint16, address int) *FaultError {
	return &FaultError{
		PC:      pc,
		Opcode:  opcode,
		Address: address,
		Err:     err,
	}
}
