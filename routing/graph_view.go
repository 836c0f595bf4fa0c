package routing

import (
	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// edge is everything the Path Builder needs to relax one directed channel
// that arrives at a node the payee-to-payer search has already reached.
type edge struct {
	fromNode     route.Vertex
	targetNode   route.Vertex
	channelID    uint64
	policy       *channeldb.ChannelEdgePolicy
	chanFeatures *lnwire.FeatureVector
	capacitySat  fn.Option[uint64]
}

// graphView is the Graph View Adapter (§4.2): it wraps the gossiped channel
// graph together with the caller's first_hops override and payee route
// hints into a single edge-iteration surface, so the Path Builder never has
// to know whether an edge came from the graph, an override, or a hint.
//
// Grounded on the original's add_entries_to_cheapest_to_target_node! macro
// and first_hop_targets construction (rust-lightning router.rs); Go has no
// macros, so the three sources are unified behind one adapter method
// instead, called uniformly as the search finalizes each node.
type graphView struct {
	graph *channeldb.ChannelGraph

	// firstHops, when non-nil, is the exhaustive and authoritative set
	// of channels leaving ourNode; the graph's view of our own channels
	// is ignored entirely (§3).
	firstHops              map[uint64]*FirstHopChannel
	firstHopByCounterparty map[route.Vertex]*FirstHopChannel

	// hintEdges are the payee's last-hop route hints; every one of them
	// is an edge arriving at payee (§4.2).
	hintEdges []*hintEdge

	ourNode route.Vertex
	payee   route.Vertex
}

func newGraphView(graph *channeldb.ChannelGraph, ourNode, payee route.Vertex,
	firstHops []*FirstHopChannel, hints []RouteHint) *graphView {

	gv := &graphView{
		graph:   graph,
		ourNode: ourNode,
		payee:   payee,
	}

	if firstHops != nil {
		gv.firstHops = make(map[uint64]*FirstHopChannel, len(firstHops))
		gv.firstHopByCounterparty = make(
			map[route.Vertex]*FirstHopChannel, len(firstHops),
		)

		for _, fh := range firstHops {
			gv.firstHops[fh.ShortChannelID] = fh
			gv.firstHopByCounterparty[fh.CounterpartyNode] = fh
		}
	}

	for _, hint := range hints {
		gv.hintEdges = append(gv.hintEdges, newHintEdge(hint))
	}

	return gv
}

// predecessorEdges returns every directed edge the search may use to extend
// backward from cur (already finalized, closer to the payee) to some node
// further upstream, closer to the payer: ordinary graph channels, the
// synthetic first-hop edge if cur is a first-hop counterparty, and the
// synthetic hint edges if cur is the payee.
func (gv *graphView) predecessorEdges(cur route.Vertex) []*edge {
	var edges []*edge

	lnNode, ok := gv.graph.FetchLightningNode(cur)
	if ok {
		for chanID := range lnNode.Channels {
			info, ok := gv.graph.FetchChannelEdge(chanID)
			if !ok {
				continue
			}

			var other route.Vertex
			switch cur {
			case info.NodeOne:
				other = info.NodeTwo
			case info.NodeTwo:
				other = info.NodeOne
			default:
				continue
			}

			// The graph's view of ourNode's outbound channels is
			// entirely replaced when first_hops is supplied.
			if other == gv.ourNode && gv.firstHops != nil {
				continue
			}

			if e := gv.directedEdge(info, other, cur); e != nil {
				edges = append(edges, e)
			}
		}
	}

	if gv.firstHops != nil {
		if fh, ok := gv.firstHopByCounterparty[cur]; ok {
			edges = append(edges, &edge{
				fromNode:   gv.ourNode,
				targetNode: cur,
				channelID:  fh.ShortChannelID,
				policy: &channeldb.ChannelEdgePolicy{
					Enabled: true,
					MaxHTLC: fn.Some(fh.OutboundCapacityMsat),
				},
				chanFeatures: lnwire.EmptyFeatureVector(),
				capacitySat:  fn.None[uint64](),
			})
		}
	}

	if cur == gv.payee {
		for _, h := range gv.hintEdges {
			edges = append(edges, &edge{
				fromNode:     h.hint.SrcNodeID,
				targetNode:   gv.payee,
				channelID:    h.hint.ShortChannelID,
				policy:       h.Policy(),
				chanFeatures: h.ChannelFeatures(),
				capacitySat:  fn.None[uint64](),
			})
		}
	}

	return edges
}

// directedEdge resolves the policy charging for travel away from fromNode
// across info toward cur, returning nil if that direction is absent,
// disabled, or requires unknown channel feature bits (§4.2).
func (gv *graphView) directedEdge(info *channeldb.ChannelEdgeInfo,
	fromNode, cur route.Vertex) *edge {

	var policyOpt fn.Option[*channeldb.ChannelEdgePolicy]

	switch fromNode {
	case info.NodeOne:
		policyOpt = info.OneToTwo
	case info.NodeTwo:
		policyOpt = info.TwoToOne
	default:
		return nil
	}

	if policyOpt.IsNone() {
		return nil
	}

	policy := policyOpt.UnsafeFromSome()
	if !policy.Enabled {
		return nil
	}

	if info.Features != nil && info.Features.RequiresUnknownBits() {
		return nil
	}

	return &edge{
		fromNode:     fromNode,
		targetNode:   cur,
		channelID:    info.ChannelID,
		policy:       policy,
		chanFeatures: info.Features,
		capacitySat:  info.CapacitySat,
	}
}

// nodeRequiresUnknownFeatures reports whether node has an announcement (or
// first-hop override) whose feature bits require something this
// implementation doesn't understand; such a node must be skipped entirely
// (§4.2). A node with no announcement at all may still be used.
func (gv *graphView) nodeRequiresUnknownFeatures(node route.Vertex) bool {
	if gv.firstHops != nil {
		if fh, ok := gv.firstHopByCounterparty[node]; ok {
			return fh.CounterpartyFeatures != nil &&
				fh.CounterpartyFeatures.RequiresUnknownBits()
		}
	}

	lnNode, ok := gv.graph.FetchLightningNode(node)
	if !ok {
		return false
	}

	requires := false
	lnNode.Announcement.WhenSome(func(ann channeldb.NodeAnnouncement) {
		if ann.Features != nil {
			requires = ann.Features.RequiresUnknownBits()
		}
	})

	return requires
}

// nodeFeatures returns the feature vector advertised by node, preferring a
// first-hop override, then the graph announcement, then an empty vector
// (§4.3: "node-feature bits are attached from first-hop channel metadata
// when present, otherwise from the graph's node announcement, otherwise
// left empty").
func (gv *graphView) nodeFeatures(node route.Vertex) lnwire.NodeFeatures {
	if gv.firstHops != nil {
		if fh, ok := gv.firstHopByCounterparty[node]; ok &&
			fh.CounterpartyFeatures != nil {

			return lnwire.NodeFeatures{
				FeatureVector: fh.CounterpartyFeatures,
			}
		}
	}

	lnNode, ok := gv.graph.FetchLightningNode(node)
	if !ok {
		return lnwire.EmptyNodeFeatures()
	}

	var feats lnwire.NodeFeatures
	found := false
	lnNode.Announcement.WhenSome(func(ann channeldb.NodeAnnouncement) {
		feats = lnwire.NodeFeatures{FeatureVector: ann.Features}
		found = true
	})

	if !found {
		return lnwire.EmptyNodeFeatures()
	}

	return feats
}

// lowestInboundFees returns the cheapest fees known to be charged by any
// channel forwarding into node, used as the estimated-previous-hop-fee
// lower bound of §4.3 step 8.
func (gv *graphView) lowestInboundFees(
	node route.Vertex) fn.Option[channeldb.RoutingFees] {

	lnNode, ok := gv.graph.FetchLightningNode(node)
	if !ok {
		return fn.None[channeldb.RoutingFees]()
	}

	var fees fn.Option[channeldb.RoutingFees]
	lnNode.Announcement.WhenSome(func(ann channeldb.NodeAnnouncement) {
		fees = ann.LowestInboundFees
	})

	return fees
}
