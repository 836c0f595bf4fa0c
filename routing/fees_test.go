package routing

import (
	"testing"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/stretchr/testify/require"
)

func TestComputeFeeBaseAndProportional(t *testing.T) {
	fee := computeFee(1_000_000, channeldb.RoutingFees{
		BaseMsat:               1000,
		ProportionalMillionths: 500,
	})
	require.True(t, fee.IsSome())
	require.Equal(t, lnwire.MilliSatoshi(1500), fee.UnsafeFromSome())
}

func TestComputeFeeTruncatesProportionalRemainder(t *testing.T) {
	fee := computeFee(1, channeldb.RoutingFees{ProportionalMillionths: 999_999})
	require.True(t, fee.IsSome())
	require.Equal(t, lnwire.MilliSatoshi(0), fee.UnsafeFromSome())
}

func TestComputeFeeOverflowYieldsNone(t *testing.T) {
	fee := computeFee(
		lnwire.MaxMilliSatoshi,
		channeldb.RoutingFees{ProportionalMillionths: 1_000_000},
	)
	require.True(t, fee.IsNone())
}
