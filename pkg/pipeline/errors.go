package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when the batch cannot start, e.g. the root directory is missing.
	ErrConfig = errors.New("gifatlas: invalid configuration")

	// ErrDecode is returned when an input is not a decodable animated image.
	ErrDecode = errors.New("gifatlas: decode failed")

	// ErrWrite is returned when an output file cannot be written.
	ErrWrite = errors.New("gifatlas: write failed")
)

// DecodeError reports an input that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}
