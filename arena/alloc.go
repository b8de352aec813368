package arena

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// ErrPointerType is returned when a typed slice is requested for an element
// type that holds pointers. Arena chunks are plain byte memory which the
// garbage collector does not scan.
var ErrPointerType = errors.New("arena: element type contains pointers")

// Source hands out raw bytes. Both *Arena and *SafeArena implement it.
type Source interface {
	AllocBytes(n int) ([]byte, error)
}

// AllocSlice allocates a slice of n elements of type T from s.
// The slice elements are not initialized (contain garbage data after a Reset).
// Returns nil, nil if n <= 0.
func AllocSlice[T any](s Source, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if !PointerFree[T]() {
		return nil, errors.Wrapf(ErrPointerType, "%s", reflect.TypeFor[T]())
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, errors.Wrapf(ErrExhausted, "%d elements of %d bytes overflow", n, elemSize)
	}
	b, err := s.AllocBytes(elemSize * n)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed memory.
// This is slower than AllocSlice but ensures clean initialization.
func AllocSliceZeroed[T any](s Source, n int) ([]T, error) {
	out, err := AllocSlice[T](s, n)
	if err != nil {
		return nil, err
	}
	clear(out)
	return out, nil
}

// PointerFree reports whether values of T can live in arena memory, i.e.
// T contains no pointers, strings, slices, maps, channels, funcs or
// interfaces.
func PointerFree[T any]() bool {
	return pointerFree(reflect.TypeFor[T]())
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Pointers, reference kinds and uintptr.
		return false
	}
}
