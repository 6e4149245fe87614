package mem

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize)}
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
// Returns nil if n <= 0.
func (s *SafeArena) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.EnsureCapacity(n)
}

// Reset thread-safely resets allocation offsets to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Locked serializes every call to the wrapped allocator so that containers
// living on different goroutines can share it.
type Locked[T any] struct {
	mu sync.Mutex
	a  Allocator[T]
}

// NewLocked wraps a. A nil a wraps Heap.
func NewLocked[T any](a Allocator[T]) *Locked[T] {
	return &Locked[T]{a: Or(a)}
}

func (l *Locked[T]) Allocate(n int) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Allocate(n)
}

func (l *Locked[T]) Deallocate(buf []T, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Deallocate(buf, n)
}

func (l *Locked[T]) Construct(slot *T, v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Construct(slot, v)
}

func (l *Locked[T]) Destroy(slot *T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Destroy(slot)
}
