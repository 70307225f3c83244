package wrappers

import (
	"errors"
	"fmt"
)

var (
	// ErrContractNotFound means the target source file does not exist.
	ErrContractNotFound = errors.New("contract file not found")
	// ErrToolNotFound means the slither executable could not be located.
	ErrToolNotFound = errors.New("slither executable not found")
)

// DecodeError is returned when slither printed something that is not JSON.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("slither output is not valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EmptyOutputError is returned when slither exited without writing to stdout.
type EmptyOutputError struct {
	ExitCode int
	Stderr   string
}

func (e *EmptyOutputError) Error() string {
	return fmt.Sprintf("slither exited with code %d and no JSON output", e.ExitCode)
}

// InvocationError covers any other failure to run slither.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("running slither: %v", e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
