package buffer

import (
	"fmt"

	"github.com/giongto35/gfxstate/pkg/state"
)

// ErrMapFailed is returned when the driver refuses CPU access to a buffer.
var ErrMapFailed = state.ErrMapFailed

// OverflowError is an indexed write past the end of the buffer.
type OverflowError struct {
	Index int
	Len   int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("buffer overflow: index %d, len %d", e.Index, e.Len)
}

// TooFewValuesError is a whole write shorter than the buffer.
type TooFewValuesError struct {
	Provided int
	Len      int
}

func (e *TooFewValuesError) Error() string {
	return fmt.Sprintf("too few values: %d provided, len %d", e.Provided, e.Len)
}

// TooManyValuesError is a whole write longer than the buffer.
type TooManyValuesError struct {
	Provided int
	Len      int
}

func (e *TooManyValuesError) Error() string {
	return fmt.Sprintf("too many values: %d provided, len %d", e.Provided, e.Len)
}
