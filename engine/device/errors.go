package device

import "errors"

var (
	// ErrStackOverflow is recorded when a push exceeds the stack depth.
	ErrStackOverflow = errors.New("matrix stack overflow")
	// ErrStackUnderflow is recorded when a pop would empty the stack.
	ErrStackUnderflow = errors.New("matrix stack underflow")
	// ErrInvalidValue is recorded for out-of-range arguments such as a clip plane index.
	ErrInvalidValue = errors.New("invalid value")
	// ErrDeviceClosed is returned by operations on a device that has been closed.
	ErrDeviceClosed = errors.New("device closed")
)
