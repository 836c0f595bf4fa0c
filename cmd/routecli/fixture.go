package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing"
	"github.com/lnroute/pathfinder/routing/route"
)

// policyFixture is the JSON shape of one directional channel policy.
type policyFixture struct {
	Enabled                bool    `json:"enabled"`
	CltvExpiryDelta        uint32  `json:"cltv_expiry_delta"`
	HtlcMinimumMsat        uint64  `json:"htlc_minimum_msat"`
	HtlcMaximumMsat        *uint64 `json:"htlc_maximum_msat,omitempty"`
	BaseFeeMsat            uint32  `json:"base_fee_msat"`
	FeeRateMilliMsat       uint32  `json:"fee_rate_millionths"`
}

func (p *policyFixture) toEdgePolicy() *channeldb.ChannelEdgePolicy {
	if p == nil {
		return nil
	}

	policy := &channeldb.ChannelEdgePolicy{
		Enabled:       p.Enabled,
		TimeLockDelta: p.CltvExpiryDelta,
		MinHTLC:       lnwire.MilliSatoshi(p.HtlcMinimumMsat),
		Fees: channeldb.RoutingFees{
			BaseMsat:               p.BaseFeeMsat,
			ProportionalMillionths: p.FeeRateMilliMsat,
		},
	}

	if p.HtlcMaximumMsat != nil {
		policy.MaxHTLC = fn.Some(lnwire.MilliSatoshi(*p.HtlcMaximumMsat))
	}

	return policy
}

// nodeFixture is the JSON shape of one graph node.
type nodeFixture struct {
	PubKey                string  `json:"pubkey"`
	Features              []int   `json:"features,omitempty"`
	LowestInboundBaseMsat *uint32 `json:"lowest_inbound_base_msat,omitempty"`
	LowestInboundPropPPM  uint32  `json:"lowest_inbound_fee_rate_millionths,omitempty"`
}

// channelFixture is the JSON shape of one graph channel.
type channelFixture struct {
	ShortChannelID uint64          `json:"scid"`
	NodeOne        string          `json:"node_one"`
	NodeTwo        string          `json:"node_two"`
	CapacitySat    *uint64         `json:"capacity_sat,omitempty"`
	Features       []int           `json:"features,omitempty"`
	OneToTwo       *policyFixture  `json:"one_to_two,omitempty"`
	TwoToOne       *policyFixture  `json:"two_to_one,omitempty"`
}

// graphFixture is the JSON shape of the whole channel graph.
type graphFixture struct {
	Nodes    []nodeFixture    `json:"nodes"`
	Channels []channelFixture `json:"channels"`
}

// firstHopFixture is the JSON shape of a caller-supplied first-hop
// override.
type firstHopFixture struct {
	ShortChannelID       uint64 `json:"scid"`
	CounterpartyNode     string `json:"counterparty"`
	OutboundCapacityMsat uint64 `json:"outbound_capacity_msat"`
	CounterpartyFeatures []int  `json:"counterparty_features,omitempty"`
}

// routeHintFixture is the JSON shape of a caller-supplied last-hop hint.
type routeHintFixture struct {
	SrcNodeID       string  `json:"src_node_id"`
	ShortChannelID  uint64  `json:"scid"`
	BaseFeeMsat     uint32  `json:"base_fee_msat"`
	FeeRatePPM      uint32  `json:"fee_rate_millionths"`
	CltvExpiryDelta uint16  `json:"cltv_expiry_delta"`
	HtlcMinimumMsat *uint64 `json:"htlc_minimum_msat,omitempty"`
	HtlcMaximumMsat *uint64 `json:"htlc_maximum_msat,omitempty"`
}

// routeRequest is the top-level JSON document passed to --request: a graph
// plus the payment this invocation asks the routing core to find a route
// for.
type routeRequest struct {
	Graph          graphFixture       `json:"graph"`
	Payer          string             `json:"payer"`
	Payee          string             `json:"payee"`
	AmtMsat        uint64             `json:"amt_msat"`
	FinalCltvDelta uint32             `json:"final_cltv_delta"`
	FirstHops      []firstHopFixture  `json:"first_hops,omitempty"`
	RouteHints     []routeHintFixture `json:"route_hints,omitempty"`
	PayeeFeatures  []int              `json:"payee_features,omitempty"`
}

func loadRouteRequest(path string) (*routeRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}

	var req routeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}

	return &req, nil
}

func featureVectorFromBits(bits []int) *lnwire.FeatureVector {
	raw := make([]lnwire.FeatureBit, len(bits))
	for i, b := range bits {
		raw[i] = lnwire.FeatureBit(b)
	}

	return lnwire.NewFeatureVector(raw...).Clone()
}

// buildGraph materializes a channeldb.ChannelGraph from a graphFixture.
func buildGraph(g graphFixture) (*channeldb.ChannelGraph, error) {
	graph := channeldb.NewChannelGraph()

	for _, n := range g.Nodes {
		v, err := route.NewVertexFromStr(n.PubKey)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.PubKey, err)
		}

		graph.AddNode(v)

		ann := channeldb.NodeAnnouncement{
			Features: featureVectorFromBits(n.Features),
		}

		if n.LowestInboundBaseMsat != nil {
			ann.LowestInboundFees = fn.Some(channeldb.RoutingFees{
				BaseMsat:               *n.LowestInboundBaseMsat,
				ProportionalMillionths: n.LowestInboundPropPPM,
			})
		}

		if err := graph.SetAnnouncement(v, ann); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.PubKey, err)
		}
	}

	for _, c := range g.Channels {
		one, err := route.NewVertexFromStr(c.NodeOne)
		if err != nil {
			return nil, fmt.Errorf("channel %d node_one: %w", c.ShortChannelID, err)
		}

		two, err := route.NewVertexFromStr(c.NodeTwo)
		if err != nil {
			return nil, fmt.Errorf("channel %d node_two: %w", c.ShortChannelID, err)
		}

		var capacitySat fn.Option[uint64]
		if c.CapacitySat != nil {
			capacitySat = fn.Some(*c.CapacitySat)
		}

		err = graph.AddChannelEdge(&channeldb.ChannelEdgeInfo{
			ChannelID:   c.ShortChannelID,
			NodeOne:     one,
			NodeTwo:     two,
			Features:    featureVectorFromBits(c.Features),
			CapacitySat: capacitySat,
		})
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c.ShortChannelID, err)
		}

		if c.OneToTwo != nil {
			err := graph.UpdateEdgePolicy(
				c.ShortChannelID, true, c.OneToTwo.toEdgePolicy(),
			)
			if err != nil {
				return nil, err
			}
		}

		if c.TwoToOne != nil {
			err := graph.UpdateEdgePolicy(
				c.ShortChannelID, false, c.TwoToOne.toEdgePolicy(),
			)
			if err != nil {
				return nil, err
			}
		}
	}

	return graph, nil
}

func buildFirstHops(fixtures []firstHopFixture) ([]*routing.FirstHopChannel, error) {
	if fixtures == nil {
		return nil, nil
	}

	hops := make([]*routing.FirstHopChannel, len(fixtures))
	for i, f := range fixtures {
		v, err := route.NewVertexFromStr(f.CounterpartyNode)
		if err != nil {
			return nil, fmt.Errorf("first hop %d counterparty: %w", f.ShortChannelID, err)
		}

		hops[i] = &routing.FirstHopChannel{
			ShortChannelID:       f.ShortChannelID,
			CounterpartyNode:     v,
			CounterpartyFeatures: featureVectorFromBits(f.CounterpartyFeatures),
			OutboundCapacityMsat: lnwire.MilliSatoshi(f.OutboundCapacityMsat),
		}
	}

	return hops, nil
}

func buildRouteHints(fixtures []routeHintFixture) ([]routing.RouteHint, error) {
	hints := make([]routing.RouteHint, len(fixtures))
	for i, h := range fixtures {
		v, err := route.NewVertexFromStr(h.SrcNodeID)
		if err != nil {
			return nil, fmt.Errorf("route hint %d src: %w", h.ShortChannelID, err)
		}

		hint := routing.RouteHint{
			SrcNodeID:      v,
			ShortChannelID: h.ShortChannelID,
			Fees: channeldb.RoutingFees{
				BaseMsat:               h.BaseFeeMsat,
				ProportionalMillionths: h.FeeRatePPM,
			},
			CltvExpiryDelta: h.CltvExpiryDelta,
		}

		if h.HtlcMinimumMsat != nil {
			hint.HtlcMinimumMsat = fn.Some(*h.HtlcMinimumMsat)
		}

		if h.HtlcMaximumMsat != nil {
			hint.HtlcMaximumMsat = fn.Some(*h.HtlcMaximumMsat)
		}

		hints[i] = hint
	}

	return hints, nil
}
