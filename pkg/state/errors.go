package state

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotCreate means the driver refused to allocate an object.
	ErrCannotCreate = errors.New("cannot create")
	// ErrMapFailed means the driver refused CPU access to a buffer.
	ErrMapFailed = errors.New("buffer mapping failed")
	// ErrUnmapFailed means the buffer contents got lost while mapped.
	ErrUnmapFailed = errors.New("buffer unmapping failed")
	// ErrNoMapping means the driver has no mapping primitive.
	ErrNoMapping = errors.New("driver cannot map buffers")
	// ErrAlreadyAcquired is matched by every *AcquisitionError.
	ErrAlreadyAcquired = errors.New("graphics state already acquired on this thread")
)

// AcquisitionError is returned by a second Acquire on the same thread.
type AcquisitionError struct {
	Thread int
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("thread %d: %v", e.Thread, ErrAlreadyAcquired)
}

func (e *AcquisitionError) Unwrap() error { return ErrAlreadyAcquired }
