// Package arena implements a chunked bump allocator that can back the
// buffers of a list. Chunks are carved sequentially; memory is reclaimed
// only in bulk through Reset or Release.
package arena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// ErrExhausted is returned when an arena cannot provide the requested bytes,
// either because its byte limit is reached or the request is too large to
// allocate at all.
var ErrExhausted = errors.New("arena: exhausted")

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
type Arena struct {
	chunks    []chunk
	cur       int // index of the chunk currently served from
	chunkSize int
	limit     int // total chunk bytes allowed; 0 means unbounded
	reserved  int // total chunk bytes allocated so far
}

// NewArena creates a new unbounded Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	return NewBoundedArena(chunkSize, 0)
}

// NewBoundedArena creates an Arena that never holds more than limit bytes of
// chunk memory. Requests that would exceed the limit fail with ErrExhausted.
// A limit <= 0 means unbounded. The chunk size is clamped to the limit.
func NewBoundedArena(chunkSize, limit int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && chunkSize > limit {
		chunkSize = limit
	}
	a := &Arena{chunkSize: chunkSize, limit: limit, chunks: []chunk{}}
	// The first chunk always fits: chunkSize <= limit.
	_ = a.grow(chunkSize)
	return a
}

// AllocBytes returns n bytes carved from the arena's current chunk.
// The caller must ensure the arena remains reachable while the returned slice
// is in use. Returns nil, nil if n <= 0.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	a.panicIfReleased()

	// Fast path: current chunk has room.
	if b := a.carve(a.cur, n); b != nil {
		return b, nil
	}
	return a.allocBytesSlow(n)
}

// allocBytesSlow handles allocation when the fast path fails. Chunks left
// behind by Reset are tried before a new one is allocated.
func (a *Arena) allocBytesSlow(n int) ([]byte, error) {
	for i := a.cur + 1; i < len(a.chunks); i++ {
		if b := a.carve(i, n); b != nil {
			a.cur = i
			return b, nil
		}
	}
	if err := a.grow(n); err != nil {
		return nil, err
	}
	return a.carve(a.cur, n), nil
}

// carve returns n aligned bytes from chunk i, or nil if they do not fit.
func (a *Arena) carve(i, n int) []byte {
	if i >= len(a.chunks) {
		return nil
	}
	c := &a.chunks[i]
	off := alignPtr(c.offset)
	if off+uintptr(n) > uintptr(len(c.buf)) {
		return nil
	}
	c.offset = off + uintptr(n)
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) error {
	a.panicIfReleased()
	if len(a.chunks) == 0 {
		return a.grow(n)
	}
	c := &a.chunks[a.cur]
	if uintptr(n)+alignPtr(c.offset) > uintptr(len(c.buf)) {
		return a.grow(n)
	}
	return nil
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Anything carved before Reset must no longer be used.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.cur = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation will panic. Releasing twice is harmless.
func (a *Arena) Release() {
	a.chunks = nil
	a.cur = 0
	a.reserved = 0
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) error {
	size := a.chunkSize
	if min > size {
		size = min
	}
	if a.limit > 0 {
		remaining := a.limit - a.reserved
		if min > remaining {
			return errors.Wrapf(ErrExhausted, "need %d bytes, %d of %d left", min, remaining, a.limit)
		}
		if size > remaining {
			size = remaining
		}
	}
	buf, err := makeChunk(size)
	if err != nil {
		return err
	}
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.cur = len(a.chunks) - 1
	a.reserved += size
	return nil
}

// makeChunk allocates size bytes, turning a runtime size panic into
// ErrExhausted.
func makeChunk(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrapf(ErrExhausted, "chunk of %d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic(errors.AssertionFailedf("arena: use after Release()"))
	}
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
