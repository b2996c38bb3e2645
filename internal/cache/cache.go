package cache

import "sync/atomic"

// Snapshot is a lock-free, read-optimized container holding an immutable
// value. Writers replace the whole value; readers never see a partial one.
type Snapshot[T any] struct{ v atomic.Pointer[T] }

// Load returns the stored value and whether one was stored.
func (s *Snapshot[T]) Load() (T, bool) {
	p := s.v.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Store atomically swaps in the new value.
func (s *Snapshot[T]) Store(v T) {
	s.v.Store(&v)
}
