package arraylist

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/pavanmanishd/arraylist/arena"
	"go.uber.org/zap"
)

// Allocator provides the backing buffers of a List. Implementations may
// refuse any request by returning an error.
type Allocator[T any] interface {
	// Allocate returns a buffer of length n.
	Allocate(n int) ([]T, error)
	// Reallocate returns a buffer of length n whose prefix holds the
	// elements of buf. On error buf is left untouched and stays valid.
	Reallocate(buf []T, n int) ([]T, error)
	// Free gives buf back. buf must not be used afterwards.
	Free(buf []T)
}

// ErrBudgetExceeded is returned by a Limited allocator when a request would
// take it past its byte budget.
var ErrBudgetExceeded = errors.New("arraylist: allocator budget exceeded")

const is64 = math.MaxInt >> 62 // 1 on 64-bit platforms, 0 otherwise

// maxAlloc mirrors the runtime's upper bound on a single allocation.
const maxAlloc = is64*(1<<47) + (1-is64)*math.MaxInt

// HeapAllocator allocates buffers from the Go heap.
type HeapAllocator[T any] struct{}

// Allocate implements Allocator.
func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	return makeBuffer[T](n)
}

// Reallocate implements Allocator.
func (HeapAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	out, err := makeBuffer[T](n)
	if err != nil {
		return nil, err
	}
	copy(out, buf)
	return out, nil
}

// Free implements Allocator. Heap buffers are left to the garbage collector.
func (HeapAllocator[T]) Free([]T) {}

// makeBuffer allocates n elements, refusing sizes the runtime cannot serve
// and turning a makeslice panic into an error.
func makeBuffer[T any](n int) (buf []T, err error) {
	var zero T
	size, ok := mulInt(n, int(unsafe.Sizeof(zero)))
	if n < 0 || !ok || size > maxAlloc {
		return nil, errors.Newf("heap: %d elements of %s exceed the addressable size", n, reflect.TypeFor[T]())
	}
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Newf("heap: %v", r)
		}
	}()
	return make([]T, n), nil
}

type arenaAllocator[T any] struct {
	src arena.Source
}

// InArena returns an Allocator carving buffers out of src, typically an
// *arena.Arena or *arena.SafeArena. Old buffers are not reclaimed until the
// arena is Reset or Released. Element types holding pointers are refused
// with arena.ErrPointerType.
func InArena[T any](src arena.Source) Allocator[T] {
	return arenaAllocator[T]{src: src}
}

func (a arenaAllocator[T]) Allocate(n int) ([]T, error) {
	return arena.AllocSliceZeroed[T](a.src, n)
}

func (a arenaAllocator[T]) Reallocate(buf []T, n int) ([]T, error) {
	out, err := arena.AllocSlice[T](a.src, n)
	if err != nil {
		return nil, err
	}
	copy(out, buf)
	return out, nil
}

func (a arenaAllocator[T]) Free([]T) {}

type limited[T any] struct {
	next     Allocator[T]
	maxBytes int
	used     int
}

// Limited wraps next so that the buffers it hands out never total more than
// maxBytes. During reallocation the old and the new buffer both count
// against the budget.
func Limited[T any](next Allocator[T], maxBytes int) Allocator[T] {
	return &limited[T]{next: next, maxBytes: maxBytes}
}

func (l *limited[T]) reserve(n int) (int, error) {
	var zero T
	size, ok := mulInt(n, int(unsafe.Sizeof(zero)))
	if !ok || size > l.maxBytes-l.used {
		return 0, errors.Wrapf(ErrBudgetExceeded, "%d elements of %s with %d of %d bytes in use",
			n, reflect.TypeFor[T](), l.used, l.maxBytes)
	}
	return size, nil
}

func (l *limited[T]) Allocate(n int) ([]T, error) {
	size, err := l.reserve(n)
	if err != nil {
		return nil, err
	}
	buf, err := l.next.Allocate(n)
	if err != nil {
		return nil, err
	}
	l.used += size
	return buf, nil
}

func (l *limited[T]) Reallocate(buf []T, n int) ([]T, error) {
	// The old buffer stays live until the new one is filled.
	size, err := l.reserve(n)
	if err != nil {
		return nil, err
	}
	out, err := l.next.Reallocate(buf, n)
	if err != nil {
		return nil, err
	}
	l.used += size - bufferBytes(buf)
	return out, nil
}

func (l *limited[T]) Free(buf []T) {
	l.used -= bufferBytes(buf)
	l.next.Free(buf)
}

func bufferBytes[T any](buf []T) int {
	var zero T
	return len(buf) * int(unsafe.Sizeof(zero))
}

type logged[T any] struct {
	next Allocator[T]
	log  *zap.Logger
}

// Logged wraps next and reports every request to log: successful requests
// at debug level, refusals at warn level. A nil log discards everything.
func Logged[T any](next Allocator[T], log *zap.Logger) Allocator[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &logged[T]{
		next: next,
		log:  log.With(zap.Stringer("elem", reflect.TypeFor[T]())),
	}
}

func (l *logged[T]) Allocate(n int) ([]T, error) {
	buf, err := l.next.Allocate(n)
	if err != nil {
		l.log.Warn("allocation refused", zap.Int("slots", n), zap.Error(err))
		return nil, err
	}
	l.log.Debug("allocated", zap.Int("slots", n))
	return buf, nil
}

func (l *logged[T]) Reallocate(buf []T, n int) ([]T, error) {
	out, err := l.next.Reallocate(buf, n)
	if err != nil {
		l.log.Warn("reallocation refused", zap.Int("from", len(buf)), zap.Int("slots", n), zap.Error(err))
		return nil, err
	}
	l.log.Debug("reallocated", zap.Int("from", len(buf)), zap.Int("slots", n))
	return out, nil
}

func (l *logged[T]) Free(buf []T) {
	l.log.Debug("freed", zap.Int("slots", len(buf)))
	l.next.Free(buf)
}
