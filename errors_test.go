package arraylist

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Success},
		{"empty", ErrEmpty, EmptyError},
		{"wrapped empty", errors.Wrap(ErrEmpty, "get"), EmptyError},
		{"bounds", errors.Wrapf(ErrIndexOutOfBounds, "index %d", 4), IndexOutOfBoundsError},
		{"allocation", ErrAllocation, AllocationError},
		{"marked allocation", allocationError(errors.New("no memory"), "grow"), AllocationError},
		{"std wrapped", fmt.Errorf("outer: %w", ErrEmpty), EmptyError},
		{"foreign", errors.New("something else"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "EmptyError", EmptyError.String())
	assert.Equal(t, "IndexOutOfBoundsError", IndexOutOfBoundsError.String())
	assert.Equal(t, "AllocationError", AllocationError.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unknown", Kind(42).String())
}

func TestAllocationErrorKeepsCause(t *testing.T) {
	cause := errors.New("allocator refused")
	err := allocationError(cause, "grow from %d to %d slots", 10, 15)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "grow from 10 to 15 slots")
	assert.Contains(t, err.Error(), "allocator refused")
}
