package history

// Handle is the read-only query surface over a Store. The zero Handle reads
// as an empty history; Valid tells it apart from a real one.
type Handle[T any] struct {
	store *Store[T]
}

// NewHandle returns a Handle reading from s.
func NewHandle[T any](s *Store[T]) Handle[T] {
	return Handle[T]{store: s}
}

// Calls returns every recorded call in call order.
func (h Handle[T]) Calls() []T {
	return h.store.Snapshot()
}

// LastCall returns the most recent record, or false when nothing was recorded.
func (h Handle[T]) LastCall() (T, bool) {
	return h.store.Last()
}

// Tail returns the last min(|n|, Len()) records in call order.
func (h Handle[T]) Tail(n int) []T {
	return h.store.Tail(n)
}

// Len returns the number of recorded calls.
func (h Handle[T]) Len() int {
	return h.store.Len()
}

// Valid reports whether the handle is backed by a store.
func (h Handle[T]) Valid() bool {
	return h.store != nil
}
