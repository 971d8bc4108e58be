package state

import "fmt"

// Slot is the last value the cache saw the driver take for one binding
// point or toggle. An unknown slot never matches, so the next request for
// it always reaches the driver.
type Slot[T comparable] struct {
	v     T
	known bool
}

// Known returns a slot bound to v.
func Known[T comparable](v T) Slot[T] { return Slot[T]{v: v, known: true} }

func (s Slot[T]) Get() (T, bool) { return s.v, s.known }

// Is reports whether the slot is known to hold v.
func (s Slot[T]) Is(v T) bool { return s.known && s.v == v }

func (s *Slot[T]) Set(v T) { s.v, s.known = v, true }

func (s *Slot[T]) Invalidate() {
	var zero T
	s.v, s.known = zero, false
}

func (s Slot[T]) String() string {
	if !s.known {
		return "unknown"
	}
	return fmt.Sprintf("%v", s.v)
}

// Policy tells whether a bind may be elided.
type Policy uint8

const (
	// Cached skips the driver call when the slot already holds the value.
	Cached Policy = iota
	// Forced always calls the driver, then records the value.
	// Used right after creating an object, when the cache cannot know
	// what the driver did with its bindings.
	Forced
)

func (p Policy) String() string {
	if p == Forced {
		return "forced"
	}
	return "cached"
}

// bind applies the policy to one slot and reports whether the driver was called.
func bind[T comparable](s *State, slot *Slot[T], v T, p Policy, call func(T)) bool {
	if p == Cached && slot.Is(v) {
		s.stats.bindsElided.Add(1)
		return false
	}
	call(v)
	slot.Set(v)
	s.stats.bindsIssued.Add(1)
	return true
}

// toggle is bind for fixed-function values, which are always cached.
func toggle[T comparable](s *State, slot *Slot[T], v T, call func(T)) bool {
	if slot.Is(v) {
		s.stats.togglesElided.Add(1)
		return false
	}
	call(v)
	slot.Set(v)
	s.stats.togglesIssued.Add(1)
	return true
}
