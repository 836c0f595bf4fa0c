package routing

import (
	"math"
	"math/bits"

	"github.com/lnroute/pathfinder/fn"
)

// maxFeeMsat is the saturation sentinel used for total_fee_msat once any
// step of its computation overflows (§4.3 step 7-9, §9 "saturating
// arithmetic").
const maxFeeMsat = math.MaxUint64

// saturatingAdd adds a and b, returning maxFeeMsat instead of wrapping on
// overflow.
func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return maxFeeMsat
	}

	return sum
}

// checkedSub subtracts b from a, returning None on underflow instead of
// wrapping.
func checkedSub(a, b uint64) fn.Option[uint64] {
	if b > a {
		return fn.None[uint64]()
	}

	return fn.Some(a - b)
}

// saturatingSub subtracts b from a, clamping to zero on underflow. Used for
// the defensive minimal-contribution clamp (§9 open question 1).
func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}

// saturatingMul multiplies a by b, returning maxFeeMsat instead of wrapping
// on overflow.
func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return maxFeeMsat
	}

	return lo
}
