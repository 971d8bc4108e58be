package buffer

import (
	"errors"
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/state"
)

// Slice is a read-only view of a buffer. Any number of them may be out at
// once, but no mutation of the buffer is allowed until all are released.
// Its slice is a copy: writes into it never reach the buffer.
type Slice[T any] struct {
	b    *Buffer[T]
	data []T
	done bool
}

// SliceMut is the exclusive mutable view of a buffer. Writes through it
// reach the buffer and the driver when it is released, and only then.
// The slice is detached by Unmap: writes into a slice kept past it are
// lost.
type SliceMut[T any] struct {
	b    *Buffer[T]
	data []T
	done bool
}

// Map returns a read-only view of the whole buffer.
func (b *Buffer[T]) Map() (*Slice[T], error) {
	b.reading()
	if b.readers == 0 {
		if err := b.mapDriver(driver.ReadOnly); err != nil {
			return nil, err
		}
	}
	b.readers++
	return &Slice[T]{b: b, data: clone(b.data)}, nil
}

// MapMut returns the mutable view of the whole buffer.
func (b *Buffer[T]) MapMut() (*SliceMut[T], error) {
	b.writing()
	if err := b.mapDriver(driver.WriteOnly); err != nil {
		return nil, err
	}
	b.writer = true
	return &SliceMut[T]{b: b, data: clone(b.data)}, nil
}

// View runs fn over a read-only view, releasing it on every return path.
func (b *Buffer[T]) View(fn func([]T) error) error {
	s, err := b.Map()
	if err != nil {
		return err
	}
	defer s.Unmap()
	return fn(s.Slice())
}

// Update runs fn over the mutable view, releasing it on every return path.
// The contents are written back even when fn fails.
func (b *Buffer[T]) Update(fn func([]T) error) error {
	s, err := b.MapMut()
	if err != nil {
		return err
	}
	defer s.Unmap()
	return fn(s.Slice())
}

func (b *Buffer[T]) mapDriver(access driver.Access) error {
	if !b.st.CanMap() || len(b.data) == 0 {
		b.st.BindArrayBuffer(b.h, state.Cached)
		return nil
	}
	mem, err := b.st.MapBuffer(b.h, b.ByteLen(), access)
	if err != nil {
		return err
	}
	b.mapped = mem
	return nil
}

// unmapDriver gives the mapping back. Contents lost by the driver while
// mapped are restored from the mirror.
func (b *Buffer[T]) unmapDriver() {
	if b.mapped == nil {
		return
	}
	b.mapped = nil
	err := b.st.UnmapBuffer(b.h)
	if errors.Is(err, state.ErrUnmapFailed) {
		b.st.WriteBuffer(b.h, 0, bytes(b.data))
	}
}

func (s *Slice[T]) Slice() []T {
	s.check()
	return s.data
}

func (s *Slice[T]) Len() int { return len(s.b.data) }

// Unmap releases the view. Calling it again is a no-op.
func (s *Slice[T]) Unmap() {
	if s.done {
		return
	}
	s.done = true
	s.data = nil
	s.b.readers--
	if s.b.readers == 0 {
		s.b.unmapDriver()
	}
}

func (s *Slice[T]) check() {
	if s.done {
		panic(fmt.Sprintf("buffer %d: slice used after unmap", s.b.h))
	}
}

func (s *SliceMut[T]) Slice() []T {
	s.check()
	return s.data
}

func (s *SliceMut[T]) Len() int { return len(s.b.data) }

// Unmap writes the contents back and releases the view. Calling it again
// is a no-op.
func (s *SliceMut[T]) Unmap() {
	if s.done {
		return
	}
	s.done = true
	b := s.b
	b.writer = false
	copy(b.data, s.data)
	s.data = nil
	if len(b.data) == 0 {
		return
	}
	if b.mapped != nil {
		copy(b.mapped, bytes(b.data))
		b.unmapDriver()
		return
	}
	b.st.WriteBuffer(b.h, 0, bytes(b.data))
}

func (s *SliceMut[T]) check() {
	if s.done {
		panic(fmt.Sprintf("buffer %d: slice used after unmap", s.b.h))
	}
}

func clone[T any](s []T) []T { return append(make([]T, 0, len(s)), s...) }
