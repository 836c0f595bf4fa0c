package routing

import (
	"testing"

	"github.com/lnroute/pathfinder/fn"
	"github.com/stretchr/testify/require"
)

func TestAvailableLiquidityDefault(t *testing.T) {
	book := newChannelLiquidityBook()

	got := book.availableLiquidity(1, fn.None[uint64](), fn.None[uint64]())
	require.Equal(t, uint64(defaultChannelCapacityMsat), got)
}

func TestAvailableLiquidityPrefersSmallerOfCapacityAndMaxHTLC(t *testing.T) {
	book := newChannelLiquidityBook()

	got := book.availableLiquidity(
		1, fn.Some(uint64(1000)), fn.Some(uint64(500_000)),
	)
	require.Equal(t, uint64(500_000), got)

	book2 := newChannelLiquidityBook()
	got2 := book2.availableLiquidity(
		2, fn.Some(uint64(100)), fn.Some(uint64(500_000)),
	)
	require.Equal(t, uint64(100_000), got2)
}

// TestAvailableLiquidityMemoizesAcrossCalls checks that a channel's
// remaining liquidity is seeded once from its capacity on first touch (a
// later call with different capacity/max-HTLC arguments is ignored), and
// that an intervening spend reduces what later calls observe, since the
// book persists committed spends across Collector iterations (§4.4 step 2).
func TestAvailableLiquidityMemoizesAcrossCalls(t *testing.T) {
	book := newChannelLiquidityBook()

	first := book.availableLiquidity(1, fn.Some(uint64(100)), fn.None[uint64]())
	require.True(t, book.spend(1, 50_000))

	second := book.availableLiquidity(1, fn.Some(uint64(999)), fn.None[uint64]())
	require.Equal(t, first-50_000, second)
}

func TestSpendRejectsOverdraw(t *testing.T) {
	book := newChannelLiquidityBook()
	book.availableLiquidity(1, fn.Some(uint64(10)), fn.None[uint64]())

	require.True(t, book.spend(1, 5000))
	require.False(t, book.spend(1, 6000))
}

func TestSpendUnknownChannelFails(t *testing.T) {
	book := newChannelLiquidityBook()
	require.False(t, book.spend(99, 1))
}
