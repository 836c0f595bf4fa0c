// Package channeldb holds the in-memory representation of a gossip-validated
// channel graph: the output of the (out-of-scope, per spec §1) gossip
// subsystem that the routing core consumes as a read-only snapshot.
package channeldb

import (
	"fmt"

	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// RoutingFees is the (base_msat, proportional_millionths) fee pair a
// direction of a channel charges to forward a payment, or that a node has
// advertised as its lowest known inbound fee.
type RoutingFees struct {
	// BaseMsat is charged regardless of the forwarded amount.
	BaseMsat uint32

	// ProportionalMillionths is charged per the forwarded amount, in
	// parts-per-million.
	ProportionalMillionths uint32
}

// NodeAnnouncement is the subset of a node_announcement gossip message the
// path finder cares about.
type NodeAnnouncement struct {
	// Features are the feature bits the node has advertised.
	Features *lnwire.FeatureVector

	// LowestInboundFees are the cheapest fees known to be charged by any
	// channel that forwards into this node, used as the A*-style
	// lower-bound heuristic in the Path Builder (§4.3 step 8).
	LowestInboundFees fn.Option[RoutingFees]
}

// LightningNode is a node in the channel graph.
type LightningNode struct {
	// PubKeyBytes identifies the node.
	PubKeyBytes route.Vertex

	// Channels is the set of short channel ids this node is a party to.
	Channels map[uint64]struct{}

	// Announcement is the node's announcement, if one has been gossiped.
	// A node may be used in path finding even with no announcement
	// present (§4.2).
	Announcement fn.Option[NodeAnnouncement]
}

// ChannelEdgePolicy describes one direction of a channel: the "DirInfo" of
// spec §4.2.
type ChannelEdgePolicy struct {
	// Enabled reports whether this direction is currently usable.
	Enabled bool

	// TimeLockDelta is the CLTV expiry delta this direction contributes.
	TimeLockDelta uint32

	// MinHTLC is the smallest amount this direction will forward.
	MinHTLC lnwire.MilliSatoshi

	// MaxHTLC, if present, upper-bounds the amount a single HTLC may
	// carry across this direction.
	MaxHTLC fn.Option[lnwire.MilliSatoshi]

	// Fees are the fees charged for forwarding across this direction.
	Fees RoutingFees
}

// ChannelEdgeInfo is a channel in the graph, with its two directional
// policies (either of which may be entirely absent if that direction has
// never been gossiped).
type ChannelEdgeInfo struct {
	// ChannelID is the short channel id of this channel.
	ChannelID uint64

	// NodeOne and NodeTwo are the channel's two endpoints. Policy
	// OneToTwo describes the direction from NodeOne to NodeTwo, and
	// TwoToOne the reverse.
	NodeOne, NodeTwo route.Vertex

	// Features are the channel_announcement feature bits.
	Features *lnwire.FeatureVector

	// CapacitySat is the channel's on-chain capacity, if known from a
	// UTXO lookup.
	CapacitySat fn.Option[uint64]

	OneToTwo fn.Option[*ChannelEdgePolicy]
	TwoToOne fn.Option[*ChannelEdgePolicy]
}

// ChannelGraph is an in-memory, read-only-from-the-path-finder's
// perspective view of the gossiped channel graph. Per the "cyclic graph
// references" design note, nodes and channels live in independent flat
// tables keyed by stable ids; edges are navigated by id lookup rather than
// intrusive pointers.
type ChannelGraph struct {
	nodes    map[route.Vertex]*LightningNode
	channels map[uint64]*ChannelEdgeInfo
}

// NewChannelGraph returns an empty channel graph.
func NewChannelGraph() *ChannelGraph {
	return &ChannelGraph{
		nodes:    make(map[route.Vertex]*LightningNode),
		channels: make(map[uint64]*ChannelEdgeInfo),
	}
}

// Nodes returns the full node table, keyed by node id. The map is owned by
// the graph and must be treated as read-only by callers other than the
// mutators below.
func (g *ChannelGraph) Nodes() map[route.Vertex]*LightningNode {
	return g.nodes
}

// Channels returns the full channel table, keyed by short channel id. The
// map is owned by the graph and must be treated as read-only by callers
// other than the mutators below.
func (g *ChannelGraph) Channels() map[uint64]*ChannelEdgeInfo {
	return g.channels
}

// FetchLightningNode looks up a node by id.
func (g *ChannelGraph) FetchLightningNode(v route.Vertex) (*LightningNode, bool) {
	node, ok := g.nodes[v]

	return node, ok
}

// FetchChannelEdge looks up a channel by short channel id.
func (g *ChannelGraph) FetchChannelEdge(scid uint64) (*ChannelEdgeInfo, bool) {
	edge, ok := g.channels[scid]

	return edge, ok
}

// AddNode registers a node in the graph, creating it if it doesn't already
// exist, and returns it.
func (g *ChannelGraph) AddNode(pubKey route.Vertex) *LightningNode {
	if node, ok := g.nodes[pubKey]; ok {
		return node
	}

	node := &LightningNode{
		PubKeyBytes: pubKey,
		Channels:    make(map[uint64]struct{}),
	}
	g.nodes[pubKey] = node

	return node
}

// SetAnnouncement records the announcement for an existing node.
func (g *ChannelGraph) SetAnnouncement(pubKey route.Vertex, ann NodeAnnouncement) error {
	node, ok := g.nodes[pubKey]
	if !ok {
		return fmt.Errorf("unknown node %v", pubKey)
	}

	node.Announcement = fn.Some(ann)

	return nil
}

// AddChannelEdge registers a channel between two nodes, creating the nodes
// if necessary.
func (g *ChannelGraph) AddChannelEdge(info *ChannelEdgeInfo) error {
	if _, exists := g.channels[info.ChannelID]; exists {
		return fmt.Errorf("channel %v already exists", info.ChannelID)
	}

	g.channels[info.ChannelID] = info

	nodeOne := g.AddNode(info.NodeOne)
	nodeTwo := g.AddNode(info.NodeTwo)
	nodeOne.Channels[info.ChannelID] = struct{}{}
	nodeTwo.Channels[info.ChannelID] = struct{}{}

	return nil
}

// UpdateEdgePolicy sets the directional policy for an existing channel.
// fromNodeOne indicates whether the policy describes the node-one-to-
// node-two direction.
func (g *ChannelGraph) UpdateEdgePolicy(scid uint64, fromNodeOne bool,
	policy *ChannelEdgePolicy) error {

	edge, ok := g.channels[scid]
	if !ok {
		return fmt.Errorf("unknown channel %v", scid)
	}

	if fromNodeOne {
		edge.OneToTwo = fn.Some(policy)
	} else {
		edge.TwoToOne = fn.Some(policy)
	}

	return nil
}
