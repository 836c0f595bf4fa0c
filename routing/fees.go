package routing

import (
	"math/bits"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
)

// computeFee computes the fee a channel charges to forward amountMsat,
// given its RoutingFees, per §4.1:
//
//	prop = amount_msat * proportional_millionths   (checked)
//	fee  = base_msat + prop / 1_000_000            (checked, truncating)
//
// On overflow of either the multiplication or the addition, it returns
// None: the caller must treat the channel as unusable for this amount.
func computeFee(amountMsat lnwire.MilliSatoshi,
	fees channeldb.RoutingFees) fn.Option[lnwire.MilliSatoshi] {

	hi, lo := bits.Mul64(uint64(amountMsat), uint64(fees.ProportionalMillionths))
	if hi != 0 {
		return fn.None[lnwire.MilliSatoshi]()
	}

	prop := lo / 1_000_000

	fee, carry := bits.Add64(uint64(fees.BaseMsat), prop, 0)
	if carry != 0 {
		return fn.None[lnwire.MilliSatoshi]()
	}

	return fn.Some(lnwire.MilliSatoshi(fee))
}
