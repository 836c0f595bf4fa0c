package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaturatingAdd(t *testing.T) {
	require.Equal(t, uint64(30), saturatingAdd(10, 20))
	require.Equal(t, uint64(maxFeeMsat), saturatingAdd(math.MaxUint64, 1))
}

func TestSaturatingSub(t *testing.T) {
	require.Equal(t, uint64(5), saturatingSub(15, 10))
	require.Equal(t, uint64(0), saturatingSub(5, 10))
}

func TestSaturatingMul(t *testing.T) {
	require.Equal(t, uint64(200), saturatingMul(10, 20))
	require.Equal(t, uint64(maxFeeMsat), saturatingMul(math.MaxUint64, 2))
}

func TestCheckedSub(t *testing.T) {
	result := checkedSub(10, 3)
	require.True(t, result.IsSome())
	require.Equal(t, uint64(7), result.UnsafeFromSome())

	underflow := checkedSub(3, 10)
	require.True(t, underflow.IsNone())
}
