package routing

import (
	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
)

// hintEdge wraps a caller-supplied RouteHint as a directed edge the Graph
// View Adapter can hand the Path Builder uniformly alongside ordinary
// gossiped channels (§4.2's "construct a synthetic DirInfo from the hint").
//
// Grounded on the teacher's DirectedEdge (routing/additionaledge.go), which
// wraps a channel policy together with data derived from it; here the
// derived data is the synthetic policy itself rather than an onion payload
// size, since onion construction is out of scope (§1).
type hintEdge struct {
	hint   RouteHint
	policy *channeldb.ChannelEdgePolicy
}

// newHintEdge builds the synthetic DirInfo described in §4.2: the hint's
// advertised fees and CLTV delta, htlc_minimum_msat defaulting to zero when
// absent, and no enabled bit to check (hints are always considered usable).
func newHintEdge(hint RouteHint) *hintEdge {
	policy := &channeldb.ChannelEdgePolicy{
		Enabled:       true,
		TimeLockDelta: uint32(hint.CltvExpiryDelta),
		MinHTLC:       lnwire.MilliSatoshi(hint.HtlcMinimumMsat.UnwrapOr(0)),
		Fees:          hint.Fees,
	}

	hint.HtlcMaximumMsat.WhenSome(func(maxMsat uint64) {
		policy.MaxHTLC = fn.Some(lnwire.MilliSatoshi(maxMsat))
	})

	return &hintEdge{hint: hint, policy: policy}
}

// Policy returns the synthetic directional channel policy for the hint.
func (h *hintEdge) Policy() *channeldb.ChannelEdgePolicy {
	return h.policy
}

// ChannelFeatures returns the channel features to attach to a hop built
// across this hint: always empty, since BOLT 11 route hints carry no
// channel-context feature bits (§4.2: "unknown channel features").
func (h *hintEdge) ChannelFeatures() *lnwire.FeatureVector {
	return lnwire.EmptyFeatureVector()
}
