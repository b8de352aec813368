package arraylist

import (
	"iter"
	"slices"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// List is a growable array of T. Not goroutine-safe.
//
// The zero List is not usable; construct one with New or NewWithAllocator.
// Any Add may move the backing buffer, so slices and pointers obtained from
// earlier calls must not be relied on.
type List[T any] struct {
	data  []T // len(data) is the capacity
	count int
	alloc Allocator[T]
	grows int
}

// New creates an empty List backed by the Go heap.
func New[T any]() (*List[T], error) {
	return NewWithAllocator[T](nil)
}

// NewWithAllocator creates an empty List whose buffers come from alloc.
// A nil alloc means HeapAllocator. If the initial buffer cannot be allocated
// the error matches ErrAllocation and nothing is retained.
func NewWithAllocator[T any](alloc Allocator[T]) (*List[T], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	data, err := alloc.Allocate(InitialCapacity)
	if err != nil {
		return nil, allocationError(err, "allocate %d slots", InitialCapacity)
	}
	return &List[T]{data: data[:InitialCapacity], alloc: alloc}, nil
}

// Release gives the backing buffer back to the allocator. The list must not
// be used afterwards; doing so panics.
func (l *List[T]) Release() {
	if l.alloc == nil {
		return
	}
	l.alloc.Free(l.data)
	l.data = nil
	l.count = 0
	l.alloc = nil
}

// Count returns the number of elements in the list.
func (l *List[T]) Count() int {
	return l.count
}

// IsEmpty reports whether the list holds no elements.
func (l *List[T]) IsEmpty() bool {
	return l.count == 0
}

// Capacity returns the number of allocated slots.
func (l *List[T]) Capacity() int {
	return len(l.data)
}

// Get returns the element at index.
func (l *List[T]) Get(index int) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return l.data[index], nil
}

// GetFirst returns the first element.
func (l *List[T]) GetFirst() (T, error) {
	return l.Get(0)
}

// GetLast returns the last element.
func (l *List[T]) GetLast() (T, error) {
	if l.count == 0 {
		var zero T
		return zero, l.emptyError()
	}
	return l.Get(l.count - 1)
}

// Set overwrites the element at index and returns the previous value.
func (l *List[T]) Set(index int, v T) (T, error) {
	if err := l.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	old := l.data[index]
	l.data[index] = v
	return old, nil
}

// Add inserts v at index, shifting the elements at index and after one slot
// to the right. index may equal Count, which appends. A full list grows by
// half its capacity first; if that fails the list is left unchanged.
func (l *List[T]) Add(index int, v T) error {
	l.panicIfReleased()
	if index < 0 || index > l.count {
		return errors.Wrapf(ErrIndexOutOfBounds, "add at %d with count %d", index, l.count)
	}
	if l.count == len(l.data) {
		n, err := nextCapacity(len(l.data))
		if err != nil {
			return err
		}
		if err := l.Grow(n); err != nil {
			return err
		}
	}
	copy(l.data[index+1:l.count+1], l.data[index:l.count])
	l.data[index] = v
	l.count++
	return nil
}

// AddFirst inserts v at the front of the list.
func (l *List[T]) AddFirst(v T) error {
	return l.Add(0, v)
}

// AddLast appends v to the list.
func (l *List[T]) AddLast(v T) error {
	return l.Add(l.count, v)
}

// Remove deletes and returns the element at index, shifting the elements
// after it one slot to the left. Capacity is kept.
func (l *List[T]) Remove(index int) (T, error) {
	var zero T
	if err := l.checkIndex(index); err != nil {
		return zero, err
	}
	v := l.data[index]
	copy(l.data[index:l.count-1], l.data[index+1:l.count])
	l.count--
	l.data[l.count] = zero
	return v, nil
}

// RemoveFirst deletes and returns the first element.
func (l *List[T]) RemoveFirst() (T, error) {
	return l.Remove(0)
}

// RemoveLast deletes and returns the last element.
func (l *List[T]) RemoveLast() (T, error) {
	if l.count == 0 {
		var zero T
		return zero, l.emptyError()
	}
	return l.Remove(l.count - 1)
}

// Grow reallocates the backing buffer to newCapacity slots, keeping every
// element at its position. newCapacity must exceed Capacity; anything else
// is a programming error and panics. When the byte size overflows or the
// allocator refuses, the error matches ErrAllocation and the list is
// unchanged.
func (l *List[T]) Grow(newCapacity int) error {
	l.panicIfReleased()
	if newCapacity <= len(l.data) {
		panic(errors.AssertionFailedf("arraylist: grow to %d does not exceed capacity %d",
			newCapacity, len(l.data)))
	}
	var zero T
	if _, ok := mulInt(newCapacity, int(unsafe.Sizeof(zero))); !ok {
		return errors.Wrapf(ErrAllocation, "grow to %d slots: size overflows", newCapacity)
	}
	data, err := l.alloc.Reallocate(l.data, newCapacity)
	if err != nil {
		return allocationError(err, "grow from %d to %d slots", len(l.data), newCapacity)
	}
	l.data = data[:newCapacity]
	l.grows++
	return nil
}

// EnsureCapacity grows the list straight to n slots if it has fewer.
func (l *List[T]) EnsureCapacity(n int) error {
	l.panicIfReleased()
	if n <= len(l.data) {
		return nil
	}
	return l.Grow(n)
}

// Reset removes every element but keeps the allocated capacity.
func (l *List[T]) Reset() {
	l.panicIfReleased()
	clear(l.data[:l.count])
	l.count = 0
}

// Values returns a copy of the elements in order.
func (l *List[T]) Values() []T {
	return slices.Clone(l.data[:l.count])
}

// All returns an iterator over index/element pairs in order. The list must
// not be modified during iteration.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < l.count; i++ {
			if !yield(i, l.data[i]) {
				return
			}
		}
	}
}

// checkIndex validates index for reads, writes and removals. Emptiness is
// reported before bounds.
func (l *List[T]) checkIndex(index int) error {
	l.panicIfReleased()
	if l.count == 0 {
		return l.emptyError()
	}
	if index < 0 || index >= l.count {
		return errors.Wrapf(ErrIndexOutOfBounds, "index %d with count %d", index, l.count)
	}
	return nil
}

func (l *List[T]) emptyError() error {
	l.panicIfReleased()
	return errors.WithStack(ErrEmpty)
}

// panicIfReleased panics if the list has been released.
func (l *List[T]) panicIfReleased() {
	if l.alloc == nil {
		panic(errors.AssertionFailedf("arraylist: use after Release()"))
	}
}
