package object

import "sync"

// Slot holds a counted reference to an object member. The zero value is an
// empty slot.
type Slot[T Object] struct {
	mu sync.RWMutex
	v  T
}

// Set stores v. The new value is referenced before the old one is
// released, so storing the current value is safe.
func (s *Slot[T]) Set(v T) {
	if !isNil(v) {
		v.Ref()
	}
	s.mu.Lock()
	old := s.v
	s.v = v
	s.mu.Unlock()
	if !isNil(old) {
		old.Unref()
	}
}

// Get borrows the current value. The caller must not Unref it.
func (s *Slot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Acquire returns the current value with an added reference the caller
// must Unref. ok is false for an empty slot.
func (s *Slot[T]) Acquire() (v T, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if isNil(s.v) {
		return v, false
	}
	s.v.Ref()
	return s.v, true
}

// Empty reports whether the slot holds no object.
func (s *Slot[T]) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return isNil(s.v)
}

// Clear releases the held object.
func (s *Slot[T]) Clear() {
	var zero T
	s.Set(zero)
}
