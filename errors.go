package qsim

import (
	"errors"
	"fmt"
)

/*
The error kinds of the simulator. None of them are transient, so nothing in
this package retries: callers inspect the kind with errors.Is and the details
with errors.As.
*/
var (
	ErrInvalidState    = errors.New("invalid qubit state")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIndexOutOfRange = errors.New("qubit index out of range")
	ErrGateNotFound    = errors.New("gate not found")
)

// IndexError carries the offending index and the register size.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %d not in [0, %d)", ErrIndexOutOfRange, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// GateError carries the name that was looked up.
type GateError struct {
	Name string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%v: %q", ErrGateNotFound, e.Name)
}

func (e *GateError) Unwrap() error {
	return ErrGateNotFound
}
