package routing

import (
	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// RoutingFees is the fee pair (base_msat, proportional_millionths) a
// channel direction or a last-hop hint charges.
type RoutingFees = channeldb.RoutingFees

// FirstHopChannel is a payer-local channel the caller asserts is
// authoritative: when first_hops is supplied, the core ignores the graph's
// view of the payer's own outbound channels and uses only these (§3).
type FirstHopChannel struct {
	// ShortChannelID identifies the channel. Every entry must carry one;
	// a missing id is a fatal precondition breach (§7), not a
	// recoverable error.
	ShortChannelID uint64

	// CounterpartyNode is the node on the other end of the channel.
	CounterpartyNode route.Vertex

	// CounterpartyFeatures are the feature bits the counterparty has
	// advertised.
	CounterpartyFeatures *lnwire.FeatureVector

	// OutboundCapacityMsat is this channel's available outbound
	// capacity, as known locally (not from the gossiped graph).
	OutboundCapacityMsat lnwire.MilliSatoshi
}

// RouteHint is a single last-hop hint advertised by the payee for a channel
// the graph may not know about (§3).
type RouteHint struct {
	// SrcNodeID is the non-payee end of the hinted channel.
	SrcNodeID route.Vertex

	// ShortChannelID identifies the hinted channel.
	ShortChannelID uint64

	// Fees are the fees charged to use the hinted channel.
	Fees RoutingFees

	// CltvExpiryDelta is the timelock delta the hinted channel
	// contributes.
	CltvExpiryDelta uint16

	// HtlcMinimumMsat and HtlcMaximumMsat bound the amount that may be
	// forwarded across the hinted channel, if known.
	HtlcMinimumMsat fn.Option[uint64]
	HtlcMaximumMsat fn.Option[uint64]
}
