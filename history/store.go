package history

import "sync"

// Store is an append-only, call-ordered sequence of records.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ordering: records keep the order in which Append observed them; nothing
// is ever removed or reordered.
// - Ownership: slices returned by Snapshot and Tail are caller-owned copies of
// the sequence; the records themselves are shared.
// - Nil: reads on a nil *Store behave like reads on an empty one.
type Store[T any] struct {
	mu      sync.RWMutex
	records []T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Append adds a record to the end of the sequence.
func (s *Store[T]) Append(record T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// At returns the record at index i. It panics if i is out of range.
func (s *Store[T]) At(i int) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[i]
}

// Snapshot returns a copy of the whole sequence.
func (s *Store[T]) Snapshot() []T {
	if s == nil {
		return []T{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]T, 0, len(s.records)), s.records...)
}

// Last returns the most recently appended record.
func (s *Store[T]) Last() (T, bool) {
	if s == nil {
		var zero T
		return zero, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		var zero T
		return zero, false
	}
	return s.records[len(s.records)-1], true
}

// Tail returns the last |n| records in original order. Negative n behaves
// like its absolute value and Tail(0) is empty.
func (s *Store[T]) Tail(n int) []T {
	if s == nil {
		return []T{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 {
		n = -n
	}
	// -math.MinInt overflows back to a negative value.
	if n < 0 || n > len(s.records) {
		n = len(s.records)
	}
	return append(make([]T, 0, n), s.records[len(s.records)-n:]...)
}
