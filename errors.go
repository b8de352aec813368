package arraylist

import "github.com/cockroachdb/errors"

// Sentinel errors returned by List operations. Returned errors wrap one of
// these with context; test for them with errors.Is.
var (
	// ErrEmpty is returned when reading, writing or removing on a list with
	// no elements. It takes precedence over ErrIndexOutOfBounds.
	ErrEmpty = errors.New("arraylist: list is empty")

	// ErrIndexOutOfBounds is returned when an index is outside the valid
	// range of the operation.
	ErrIndexOutOfBounds = errors.New("arraylist: index out of bounds")

	// ErrAllocation is returned when the allocator refuses a request or a
	// size computation overflows.
	ErrAllocation = errors.New("arraylist: allocation failed")
)

// Kind classifies the outcome of a List operation.
type Kind int

const (
	// Unknown is reported for errors that no List operation produces.
	Unknown Kind = iota - 1
	Success
	EmptyError
	IndexOutOfBoundsError
	AllocationError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case EmptyError:
		return "EmptyError"
	case IndexOutOfBoundsError:
		return "IndexOutOfBoundsError"
	case AllocationError:
		return "AllocationError"
	default:
		return "Unknown"
	}
}

// KindOf returns the Kind of an error returned by a List operation.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrEmpty):
		return EmptyError
	case errors.Is(err, ErrIndexOutOfBounds):
		return IndexOutOfBoundsError
	case errors.Is(err, ErrAllocation):
		return AllocationError
	default:
		return Unknown
	}
}

// allocationError marks err so that it matches ErrAllocation while keeping
// the allocator's own cause reachable through errors.Is.
func allocationError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrAllocation)
}
