package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Lists confined to different goroutines may share one SafeArena.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize)}
}

// NewBoundedSafeArena is the thread-safe counterpart of NewBoundedArena.
func NewBoundedSafeArena(chunkSize, limit int) *SafeArena {
	return &SafeArena{a: NewBoundedArena(chunkSize, limit)}
}

// AllocBytes thread-safely allocates n bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.EnsureCapacity(n)
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

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
