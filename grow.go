package arraylist

import (
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"
)

// InitialCapacity is the number of slots a new list allocates.
const InitialCapacity = 10

// nextCapacity returns the capacity a full list of capacity c grows to:
// c + c/2 (at least c + 1), or c + 1 when that overflows. A list already at
// math.MaxInt cannot grow.
func nextCapacity(c int) (int, error) {
	if n, ok := addInt(c, max(c>>1, 1)); ok {
		return n, nil
	}
	if c == math.MaxInt {
		return 0, errors.Wrapf(ErrAllocation, "capacity %d cannot grow", c)
	}
	return c + 1, nil
}

// addInt returns a+b for non-negative a and b, reporting false on overflow.
func addInt(a, b int) (int, bool) {
	sum, carry := bits.Add(uint(a), uint(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, false
	}
	return int(sum), true
}

// mulInt returns a*b for non-negative a and b, reporting false on overflow.
func mulInt(a, b int) (int, bool) {
	hi, lo := bits.Mul(uint(a), uint(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}
