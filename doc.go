// Package arraylist implements a generic growable array.
//
// # Overview
//
// A List keeps its elements in one contiguous buffer in insertion order. It
// offers indexed access, insertion and removal at any position, and
// amortized O(1) append. Every failure is returned as an error instead of a
// panic:
//
//   - ErrEmpty when reading, writing or removing on an empty list
//   - ErrIndexOutOfBounds when the index is outside the valid range
//   - ErrAllocation when the allocator refuses or a size computation overflows
//
// ErrEmpty wins over ErrIndexOutOfBounds: Get(0) on an empty list is
// ErrEmpty. KindOf maps any returned error to its Kind.
//
// # Basic Usage
//
//	l, err := arraylist.New[int]()
//	if err != nil {
//		return err
//	}
//	defer l.Release()
//
//	_ = l.AddLast(5)
//	_ = l.AddFirst(3)
//	v, err := l.Remove(1)
//
// # Growth
//
// A new list holds InitialCapacity (10) slots. When an Add finds the list
// full, capacity grows to capacity + capacity/2. Near the limits of int it
// falls back to capacity + 1; a list at math.MaxInt slots cannot grow.
// Removal never shrinks the buffer. Grow and EnsureCapacity grow explicitly.
//
// # Allocators
//
// Buffers come from an Allocator, which may refuse a request:
//
//	a := arena.NewBoundedArena(0, 1<<20)
//	alloc := arraylist.Logged(arraylist.InArena[int64](a), logger)
//	l, err := arraylist.NewWithAllocator(alloc)
//
// HeapAllocator is the default. InArena carves buffers out of an arena,
// Limited caps the bytes handed out, and Logged reports each request to a
// zap logger.
//
// # Thread Safety
//
// A List is not safe for concurrent use. Confine it to one goroutine or
// guard it externally. Lists on different goroutines may share an
// arena.SafeArena.
package arraylist
