package routing

import (
	"testing"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
	"github.com/stretchr/testify/require"
)

// TestMinimalContributionSinglePathRequiresWholeAmount checks that with MPP
// disallowed, the floor a path must clear is the entire requested value, so
// a single path always carries it all.
func TestMinimalContributionSinglePathRequiresWholeAmount(t *testing.T) {
	c := &collector{finalValueMsat: 500_000, allowMPP: false}

	require.Equal(t, uint64(500_000), c.minimalContribution(1_500_000, 0))
	require.Equal(t, uint64(500_000), c.minimalContribution(1_500_000, 300_000))
}

// TestMinimalContributionMPPDivides20thOfRemaining checks the
// fragmentation-control floor for MPP: 1/20th of whatever remains of the
// over-provisioned target, rounded up.
func TestMinimalContributionMPPDivides20thOfRemaining(t *testing.T) {
	c := &collector{finalValueMsat: 500_000, allowMPP: true}

	// remaining = 1,000,000; 1,000,000/20 = 50,000 exactly.
	require.Equal(t, uint64(50_000), c.minimalContribution(1_000_000, 0))

	// remaining = 200,000; 200,000/20 = 10,000 exactly.
	require.Equal(t, uint64(10_000), c.minimalContribution(1_000_000, 800_000))
}

// TestMinimalContributionClampsWhenOvershot checks already_collected
// exceeding recommended_value floors at zero rather than underflowing.
func TestMinimalContributionClampsWhenOvershot(t *testing.T) {
	c := &collector{finalValueMsat: 500_000, allowMPP: true}

	require.Equal(t, uint64(0), c.minimalContribution(1_000_000, 1_500_000))
}

// collectorSingleHopPath builds a trivial one-hop paymentPath delivering
// valueMsat to payee across chanID, the minimal shape channelAmounts and
// commit need to exercise.
func collectorSingleHopPath(payee route.Vertex, chanID uint64,
	valueMsat uint64) paymentPath {

	return paymentPath{
		{
			node:      payee,
			channelID: chanID,
			feeMsat:   valueMsat,
		},
	}
}

// TestCollectorCommitSpendsChannel checks commit deducts the carried
// amount from the channel the path crosses.
func TestCollectorCommitSpendsChannel(t *testing.T) {
	payee := vtx(3)

	c := &collector{book: newChannelLiquidityBook()}
	c.book.remaining[100] = 1_000_000

	path := collectorSingleHopPath(payee, 100, 400_000)

	require.True(t, c.commit(path))
	require.Equal(t, uint64(600_000), c.book.remaining[100])
}

// TestCollectorCommitFailsOnOverdraw checks commit reports false, rather
// than panicking or silently truncating, when a path tries to spend more
// than a channel has available.
func TestCollectorCommitFailsOnOverdraw(t *testing.T) {
	payee := vtx(3)

	c := &collector{book: newChannelLiquidityBook()}
	c.book.remaining[100] = 1_000_000

	path := collectorSingleHopPath(payee, 100, 2_000_000)

	require.False(t, c.commit(path))
	require.Equal(t, uint64(1_000_000), c.book.remaining[100])
}

// TestCollectNoPathFoundWhenGraphDisconnected checks collect surfaces
// errNoPathFound when the Path Builder never finds a single path.
func TestCollectNoPathFoundWhenGraphDisconnected(t *testing.T) {
	payer, payee := vtx(1), vtx(2)

	graph := channeldb.NewChannelGraph()
	graph.AddNode(payer)
	graph.AddNode(payee)

	gv := newGraphView(graph, payer, payee, nil, nil)

	c := newCollector(gv, payer, payee, 40, 500_000, false)

	_, err := c.collect()
	require.EqualError(t, err, errNoPathFound)
}

// TestCollectSinglePathSatisfiesWholeAmount checks the non-MPP path: the
// Collector stops after its first successful path. collect() itself does
// not trim a path down to the requested amount (that happens downstream in
// the Route Composer's overpayment absorption); here liquidity, not the
// request, is the binding constraint, so the single path delivers exactly
// what the channels allow.
func TestCollectSinglePathSatisfiesWholeAmount(t *testing.T) {
	payer, mid, payee := vtx(1), vtx(2), vtx(3)

	graph := channeldb.NewChannelGraph()
	graph.AddNode(payer)
	graph.AddNode(mid)
	graph.AddNode(payee)

	fees := channeldb.RoutingFees{BaseMsat: 0, ProportionalMillionths: 0}

	addChannel(
		t, graph, 100, payer, mid, fn.None[uint64](),
		openPolicy(40, 0, fn.Some(lnwire.MilliSatoshi(500_000)), fees),
		nil,
	)
	addChannel(
		t, graph, 200, mid, payee, fn.None[uint64](),
		openPolicy(40, 0, fn.Some(lnwire.MilliSatoshi(500_000)), fees),
		nil,
	)

	gv := newGraphView(graph, payer, payee, nil, nil)

	c := newCollector(gv, payer, payee, 9, 500_000, false)

	paths, err := c.collect()
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, uint64(500_000), paths[0].totalValue())
}

// TestCollectMPPStopsOnceRecommendedValueReached checks the Collector keeps
// pulling paths under MPP only until the over-provisioned recommended
// value is reached, not merely the requested value.
func TestCollectMPPStopsOnceRecommendedValueReached(t *testing.T) {
	payer, midA, midB, payee := vtx(1), vtx(2), vtx(3), vtx(4)

	graph := channeldb.NewChannelGraph()
	graph.AddNode(payer)
	graph.AddNode(midA)
	graph.AddNode(midB)
	graph.AddNode(payee)

	fees := channeldb.RoutingFees{BaseMsat: 0, ProportionalMillionths: 0}
	noCapacity := fn.None[uint64]()
	maxHTLC := fn.Some(lnwire.MilliSatoshi(300_000))

	addChannel(t, graph, 101, payer, midA, noCapacity, openPolicy(40, 0, maxHTLC, fees), nil)
	addChannel(t, graph, 102, midA, payee, noCapacity, openPolicy(40, 0, maxHTLC, fees), nil)
	addChannel(t, graph, 201, payer, midB, noCapacity, openPolicy(40, 0, maxHTLC, fees), nil)
	addChannel(t, graph, 202, midB, payee, noCapacity, openPolicy(40, 0, maxHTLC, fees), nil)

	gv := newGraphView(graph, payer, payee, nil, nil)

	// finalValueMsat 100_000, so recommendedValue (x3) is 300_000: a
	// single 300_000-msat-capacity path already clears it, so the
	// Collector should stop after exactly one path.
	c := newCollector(gv, payer, payee, 9, 100_000, true)

	paths, err := c.collect()
	require.NoError(t, err)
	require.Len(t, paths, 1)
}
