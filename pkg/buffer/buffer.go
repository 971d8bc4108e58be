// Package buffer keeps a CPU copy of every driver buffer. Reads are served
// from the copy, writes go to both, and mapped slices give plain Go slice
// access with the write-back done when the slice is released.
//
// T must be plain data: no pointers, slices, maps or strings.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/state"
)

type Buffer[T any] struct {
	st   *state.State
	h    driver.Buffer
	data []T

	// outstanding views
	readers int
	writer  bool
	// driver memory mapped while views are out, nil without a mapper
	mapped []byte

	destroyed bool
}

// New allocates a buffer of n zero values.
func New[T any](st *state.State, n int) (*Buffer[T], error) {
	return create(st, make([]T, n))
}

// FromValues allocates a buffer holding a copy of values.
func FromValues[T any](st *state.State, values []T) (*Buffer[T], error) {
	return create(st, clone(values))
}

// Repeat allocates a buffer of n copies of x.
func Repeat[T any](st *state.State, n int, x T) (*Buffer[T], error) {
	data := make([]T, n)
	for i := range data {
		data[i] = x
	}
	return create(st, data)
}

func create[T any](st *state.State, data []T) (*Buffer[T], error) {
	h, err := st.CreateBuffer()
	if err != nil {
		return nil, err
	}
	st.AllocBuffer(h, bytes(data))
	return &Buffer[T]{st: st, h: h, data: data}, nil
}

func (b *Buffer[T]) Handle() driver.Buffer { return b.h }

func (b *Buffer[T]) Len() int { return len(b.data) }

// ByteLen returns the size of the driver buffer.
func (b *Buffer[T]) ByteLen() int { return len(b.data) * int(elemSize[T]()) }

// Get returns the value at i, false if i is out of range.
func (b *Buffer[T]) Get(i int) (T, bool) {
	b.reading()
	if i < 0 || i >= len(b.data) {
		var zero T
		return zero, false
	}
	return b.data[i], true
}

// Whole returns a copy of the contents.
func (b *Buffer[T]) Whole() []T {
	b.reading()
	return clone(b.data)
}

func (b *Buffer[T]) Set(i int, x T) error {
	b.writing()
	if i < 0 || i >= len(b.data) {
		return &OverflowError{Index: i, Len: len(b.data)}
	}
	b.data[i] = x
	b.st.WriteBuffer(b.h, i*int(elemSize[T]()), bytes(b.data[i:i+1]))
	return nil
}

// WriteWhole replaces the contents. values must have exactly Len elements.
func (b *Buffer[T]) WriteWhole(values []T) error {
	b.writing()
	switch n := len(values); {
	case n < len(b.data):
		return &TooFewValuesError{Provided: n, Len: len(b.data)}
	case n > len(b.data):
		return &TooManyValuesError{Provided: n, Len: len(b.data)}
	}
	copy(b.data, values)
	b.st.WriteBuffer(b.h, 0, bytes(b.data))
	return nil
}

// Clear sets every element to x.
func (b *Buffer[T]) Clear(x T) {
	b.writing()
	for i := range b.data {
		b.data[i] = x
	}
	b.st.WriteBuffer(b.h, 0, bytes(b.data))
}

// Destroy deletes the driver buffer. Destroying twice is a no-op.
func (b *Buffer[T]) Destroy() {
	if b.destroyed {
		return
	}
	if b.readers > 0 || b.writer {
		panic(fmt.Sprintf("buffer %d: destroyed while mapped", b.h))
	}
	b.st.DestroyBuffer(b.h)
	b.data = nil
	b.destroyed = true
}

func (b *Buffer[T]) alive() {
	if b.destroyed {
		panic(fmt.Sprintf("buffer %d: used after destroy", b.h))
	}
}

func (b *Buffer[T]) reading() {
	b.alive()
	if b.writer {
		panic(fmt.Sprintf("buffer %d: read while mutably mapped", b.h))
	}
}

func (b *Buffer[T]) writing() {
	b.reading()
	if b.readers > 0 {
		panic(fmt.Sprintf("buffer %d: write while mapped", b.h))
	}
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// bytes views s as its raw memory.
func bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(elemSize[T]()))
}
