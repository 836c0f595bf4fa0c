package routing

import (
	"container/heap"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// pathBuildingHop is the per-node search state kept while the Dijkstra
// frontier explores backward from the payee toward the payer: the realized
// edge under construction (channel used, its policy) together with the
// scalars needed to relax further and, eventually, to reconstruct and
// recompute a PaymentPath.
type pathBuildingHop struct {
	// targetNode is the node this edge forwards onward to (closer to the
	// payee than the node this entry is keyed by).
	targetNode route.Vertex

	channelID    uint64
	chanFeatures *lnwire.FeatureVector
	policy       *channeldb.ChannelEdgePolicy

	// nextHopsFeeMsat is the fee total already committed by edges beyond
	// this one (closer to the payee).
	nextHopsFeeMsat uint64

	// hopUseFeeMsat is the fee charged for forwarding across this edge,
	// paid at the preceding link; zero when this edge leaves the payer.
	hopUseFeeMsat uint64

	// totalFeeMsat is the scalar used for frontier ordering: the sum of
	// nextHopsFeeMsat, hopUseFeeMsat, and the estimated fee the
	// predecessor will charge.
	totalFeeMsat uint64

	// valueContributionMsat upper-bounds how much value can be delivered
	// to the payee through this entry.
	valueContributionMsat uint64
}

// frontierEntry is one pending node in the Dijkstra priority queue.
type frontierEntry struct {
	node     route.Vertex
	priority uint64
}

// frontierHeap implements container/heap.Interface, ordering entries by
// ascending priority and, on ties, by byte-wise node comparison — the exact
// tie-break rule of §4.3, chosen to be deterministic and independent of
// memory layout.
type frontierHeap []*frontierEntry

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}

	return h[i].node.Less(h[j].node)
}

func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x any) {
	*h = append(*h, x.(*frontierEntry))
}

func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return item
}

// pathHop is one hop of a PaymentPath: the RouteHop under construction plus
// the channel metadata needed to recompute fees if the path's carried value
// is later reduced by the Route Composer.
type pathHop struct {
	node         route.Vertex
	nodeFeatures lnwire.NodeFeatures
	channelID    uint64
	chanFeatures *lnwire.FeatureVector

	fees            channeldb.RoutingFees
	htlcMinimumMsat uint64

	feeMsat         uint64
	cltvExpiryDelta uint32
}

// paymentPath is an ordered, payer-to-payee PaymentPath (§3): it retains the
// per-hop fee configuration so the Route Composer can recompute fees after
// reducing the path's carried value, something the public route.Path type
// deliberately does not carry.
type paymentPath []*pathHop

// totalValue returns the amount delivered to the payee by this path: the
// terminal hop's fee (§3).
func (p paymentPath) totalValue() uint64 {
	if len(p) == 0 {
		return 0
	}

	return p[len(p)-1].feeMsat
}

// totalFees returns the sum of fees paid across the path, excluding the
// terminal hop's delivered value.
func (p paymentPath) totalFees() uint64 {
	var total uint64
	for i, hop := range p {
		if i == len(p)-1 {
			continue
		}

		total = saturatingAdd(total, hop.feeMsat)
	}

	return total
}

// totalProportionalFeeParts sums each non-terminal hop's proportional fee
// rate, used by the Route Composer to pick the "cheapest" path to absorb
// overpayment (§4.5 step 4, §9 open question 2).
func (p paymentPath) totalProportionalFeeParts() uint64 {
	var total uint64
	for i, hop := range p {
		if i == len(p)-1 {
			continue
		}

		total = saturatingAdd(total, uint64(hop.fees.ProportionalMillionths))
	}

	return total
}

// clone returns a deep copy of the path, so the Route Composer can try
// reducing or dropping hops in one rotation candidate without disturbing
// the same underlying paths reused by another.
func (p paymentPath) clone() paymentPath {
	cp := make(paymentPath, len(p))
	for i, h := range p {
		hopCopy := *h
		cp[i] = &hopCopy
	}

	return cp
}

// channelAmounts returns, for each hop, the amount that flows across its
// channel: the terminal hop carries the path's delivered value, and each
// earlier hop carries that plus every downstream hop's fee (§4.4 step 2).
func (p paymentPath) channelAmounts() []uint64 {
	amounts := make([]uint64, len(p))
	if len(p) == 0 {
		return amounts
	}

	last := len(p) - 1
	amounts[last] = p[last].feeMsat

	for i := last - 1; i >= 0; i-- {
		amounts[i] = saturatingAdd(amounts[i+1], p[i].feeMsat)
	}

	return amounts
}

// toRoutePath converts an internal PaymentPath into the public route.Path
// representation returned to callers, discarding the fee-recompute
// metadata PaymentPath carries internally.
func (p paymentPath) toRoutePath() route.Path {
	hops := make(route.Path, len(p))
	for i, h := range p {
		hops[i] = &route.Hop{
			PubKeyBytes:     h.node,
			NodeFeatures:    lnwire.NodeFeatures{FeatureVector: h.nodeFeatures.Clone()},
			ChannelID:       h.channelID,
			ChannelFeatures: lnwire.ChannelFeatures{FeatureVector: h.chanFeatures.Clone()},
			FeeMsat:         lnwire.MilliSatoshi(h.feeMsat),
			CltvExpiryDelta: h.cltvExpiryDelta,
		}
	}

	return hops
}

// pathBuilder runs one payee-to-payer Dijkstra search and, on success,
// returns a single reconstructed PaymentPath (§4.3).
type pathBuilder struct {
	gv   *graphView
	book *channelLiquidityBook

	payer, payee route.Vertex
	finalCltv    uint32
}

func newPathBuilder(gv *graphView, book *channelLiquidityBook,
	payer, payee route.Vertex, finalCltv uint32) *pathBuilder {

	return &pathBuilder{
		gv:        gv,
		book:      book,
		payer:     payer,
		payee:     payee,
		finalCltv: finalCltv,
	}
}

// findPath performs one search iteration, returning (path, true, nil) when a
// path reaches the payer and (nil, false, nil) when the frontier empties
// without reaching it. The error result is always nil.
func (pb *pathBuilder) findPath(finalValueMsat,
	minimalContribution uint64) (paymentPath, bool, error) {

	dist := make(map[route.Vertex]*pathBuildingHop)
	finalized := make(map[route.Vertex]bool)
	h := &frontierHeap{}
	heap.Init(h)

	relax := func(node route.Vertex, nextHopsFeeMsat,
		nextHopsValueContribution uint64) {

		for _, e := range pb.gv.predecessorEdges(node) {
			pb.addEntry(
				dist, finalized, h, e, nextHopsFeeMsat,
				nextHopsValueContribution, minimalContribution,
			)
		}
	}

	relax(pb.payee, 0, finalValueMsat)

	for h.Len() > 0 {
		top := heap.Pop(h).(*frontierEntry)
		if finalized[top.node] {
			continue
		}

		finalized[top.node] = true

		if top.node == pb.payer {
			path := pb.reconstruct(dist)

			return path, true, nil
		}

		entry := dist[top.node]
		relax(top.node, entry.totalFeeMsat, entry.valueContributionMsat)
	}

	return nil, false, nil
}

// addEntry is the add_entry relaxation primitive of §4.3.
func (pb *pathBuilder) addEntry(dist map[route.Vertex]*pathBuildingHop,
	finalized map[route.Vertex]bool, h *frontierHeap, e *edge,
	nextHopsFeeMsat, nextHopsValueContribution, minimalContribution uint64) {

	// 1. Reject self-loops.
	if e.fromNode == e.targetNode {
		return
	}

	if finalized[e.fromNode] {
		return
	}

	if e.chanFeatures != nil && e.chanFeatures.RequiresUnknownBits() {
		return
	}

	if pb.gv.nodeRequiresUnknownFeatures(e.fromNode) {
		return
	}

	// 2. Resolve available liquidity.
	maxHtlc := fn.None[uint64]()
	e.policy.MaxHTLC.WhenSome(func(m lnwire.MilliSatoshi) {
		maxHtlc = fn.Some(uint64(m))
	})

	available := pb.book.availableLiquidity(
		e.channelID, e.capacitySat, maxHtlc,
	)

	// 3. available_value = available_liquidity - next_hops_fee_msat.
	availableValueOpt := checkedSub(available, nextHopsFeeMsat)
	if availableValueOpt.IsNone() {
		return
	}

	availableValue := availableValueOpt.UnsafeFromSome()

	// 4. Fragmentation heuristic.
	if availableValue < minimalContribution {
		return
	}

	// 5. value_contribution = min(available_value, next_hops_value_contribution).
	valueContribution := min64(availableValue, nextHopsValueContribution)

	// 6. amount_to_transfer = value_contribution + next_hops_fee_msat.
	amountToTransfer := saturatingAdd(valueContribution, nextHopsFeeMsat)
	if amountToTransfer < uint64(e.policy.MinHTLC) {
		return
	}

	// 7. hop_use_fee, ignored when src is the payer.
	var (
		hopUseFeeMsat uint64
		overflowed    bool
	)

	if e.fromNode != pb.payer {
		feeOpt := computeFee(
			lnwire.MilliSatoshi(amountToTransfer), e.policy.Fees,
		)
		if feeOpt.IsNone() {
			overflowed = true
		} else {
			hopUseFeeMsat = uint64(feeOpt.UnsafeFromSome())
		}
	}

	// 8. total_fee, including the estimated previous-hop fee.
	var totalFeeMsat uint64
	if overflowed {
		totalFeeMsat = maxFeeMsat
	} else {
		totalFeeMsat = saturatingAdd(nextHopsFeeMsat, hopUseFeeMsat)

		pb.gv.lowestInboundFees(e.fromNode).WhenSome(
			func(fees channeldb.RoutingFees) {
				base := saturatingAdd(totalFeeMsat, amountToTransfer)

				estOpt := computeFee(lnwire.MilliSatoshi(base), fees)
				est := uint64(estOpt.UnwrapOr(0))

				totalFeeMsat = saturatingAdd(totalFeeMsat, est)
			},
		)
	}

	// 9. Compare against the existing entry, biased by htlc_minimum_msat.
	newCost := saturatingAdd(totalFeeMsat, uint64(e.policy.MinHTLC))

	if existing, ok := dist[e.fromNode]; ok {
		oldCost := saturatingAdd(
			existing.totalFeeMsat, uint64(existing.policy.MinHTLC),
		)
		if newCost >= oldCost {
			return
		}
	}

	dist[e.fromNode] = &pathBuildingHop{
		targetNode:            e.targetNode,
		channelID:             e.channelID,
		chanFeatures:          e.chanFeatures,
		policy:                e.policy,
		nextHopsFeeMsat:       nextHopsFeeMsat,
		hopUseFeeMsat:         hopUseFeeMsat,
		totalFeeMsat:          totalFeeMsat,
		valueContributionMsat: valueContribution,
	}

	heap.Push(h, &frontierEntry{node: e.fromNode, priority: totalFeeMsat})
}

// reconstruct walks the payer-to-payee chain recorded in dist, building a
// PaymentPath and propagating each successor's hop_use_fee_msat and
// cltv_expiry_delta one hop backward (§4.3).
func (pb *pathBuilder) reconstruct(dist map[route.Vertex]*pathBuildingHop) paymentPath {
	var entries []*pathBuildingHop

	cur := pb.payer
	for {
		entry := dist[cur]
		entries = append(entries, entry)

		if entry.targetNode == pb.payee {
			break
		}

		cur = entry.targetNode
	}

	hops := make(paymentPath, len(entries))
	for i, entry := range entries {
		hops[i] = &pathHop{
			node:            entry.targetNode,
			nodeFeatures:    pb.gv.nodeFeatures(entry.targetNode),
			channelID:       entry.channelID,
			chanFeatures:    entry.chanFeatures,
			fees:            entry.policy.Fees,
			htlcMinimumMsat: uint64(entry.policy.MinHTLC),
		}

		if i+1 < len(entries) {
			hops[i].feeMsat = entries[i+1].hopUseFeeMsat
			hops[i].cltvExpiryDelta = entries[i+1].policy.TimeLockDelta
		}
	}

	last := len(hops) - 1
	hops[last].feeMsat = entries[0].valueContributionMsat
	hops[last].cltvExpiryDelta = pb.finalCltv

	updateValueAndRecomputeFees(hops, entries[0].valueContributionMsat)

	return hops
}

// updateValueAndRecomputeFees re-derives every hop's carried fee for a
// path now delivering valueMsat to the payee, walking payee → payer
// (§4.3). It must only ever be called with valueMsat no greater than the
// path's original carried value.
func updateValueAndRecomputeFees(path paymentPath, valueMsat uint64) {
	if len(path) == 0 {
		return
	}

	carried := make([]uint64, len(path))
	hopUseFee := make([]uint64, len(path))

	var runningFees uint64

	for i := len(path) - 1; i >= 0; i-- {
		hop := path[i]

		c := saturatingAdd(valueMsat, runningFees)
		if c < hop.htlcMinimumMsat {
			deficit := hop.htlcMinimumMsat - c
			c += deficit
			runningFees = saturatingAdd(runningFees, deficit)
		}
		carried[i] = c

		if i == 0 {
			// The payer-side hop's use fee is never charged.
			hopUseFee[i] = 0
			continue
		}

		feeOpt := computeFee(lnwire.MilliSatoshi(c), hop.fees)
		if feeOpt.IsNone() {
			hopUseFee[i] = maxFeeMsat
		} else {
			hopUseFee[i] = uint64(feeOpt.UnsafeFromSome())
		}

		runningFees = saturatingAdd(runningFees, hopUseFee[i])
	}

	last := len(path) - 1
	path[last].feeMsat = carried[last]

	for i := 0; i < last; i++ {
		path[i].feeMsat = hopUseFee[i+1]
	}
}
