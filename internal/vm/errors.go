package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Fault describes an instruction that could not be executed.
type Fault struct {
	Address uint16 // address of the faulting instruction
	Word    uint16 // instruction word, zero if it could not be fetched
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%03X (opcode $%04X): %v", f.Address, f.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
