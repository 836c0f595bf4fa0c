package routing

import (
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// Multi-Path Collector (§4.4): orchestrates repeated Path Builder
// invocations under a shared ChannelLiquidityBook until either enough value
// has been collected or the search stalls.

// minContributionDivisor is MIN_CONTRIBUTION_DIVISOR (§6): the fragmentation
// control heuristic requires each path to carry at least
// 1/minContributionDivisor of the remaining over-provisioned target.
const minContributionDivisor = 20

// routeCapacityProvisionFactor is ROUTE_CAPACITY_PROVISION_FACTOR (§6): the
// Collector over-provisions to this multiple of the requested value before
// stopping, giving the Route Composer room to drop or reduce paths.
const routeCapacityProvisionFactor = 3

type collector struct {
	gv   *graphView
	book *channelLiquidityBook

	payer, payee   route.Vertex
	finalCltv      uint32
	finalValueMsat uint64
	allowMPP       bool
}

func newCollector(gv *graphView, payer, payee route.Vertex, finalCltv uint32,
	finalValueMsat uint64, allowMPP bool) *collector {

	return &collector{
		gv:             gv,
		book:           newChannelLiquidityBook(),
		payer:          payer,
		payee:          payee,
		finalCltv:      finalCltv,
		finalValueMsat: finalValueMsat,
		allowMPP:       allowMPP,
	}
}

// collect runs the Collector's state machine (§4.7) to completion, returning
// either the set of paths collected or one of the two Collector-level
// errors (§4.4).
func (c *collector) collect() ([]paymentPath, error) {
	recommendedValue := saturatingMul(
		c.finalValueMsat, routeCapacityProvisionFactor,
	)

	var (
		paths            []paymentPath
		alreadyCollected uint64
	)

	for {
		minContribution := c.minimalContribution(
			recommendedValue, alreadyCollected,
		)

		pb := newPathBuilder(c.gv, c.book, c.payer, c.payee, c.finalCltv)

		// Every search iteration is bounded by recommendedValue, not
		// finalValueMsat: a single generous path is allowed to carry
		// more than what was asked for, so the Collector can stop
		// after fewer, larger paths and let the Route Composer trim
		// the surplus back down (§4.5 step 4).
		path, found, err := pb.findPath(recommendedValue, minContribution)
		if err != nil {
			return nil, err
		}

		if !found {
			break
		}

		if !c.commit(path) {
			// Defensive: the search already enforces liquidity
			// sufficiency in add_entry, so this should not
			// happen. Stop with whatever was already collected.
			break
		}

		alreadyCollected = saturatingAdd(alreadyCollected, path.totalValue())
		paths = append(paths, path)

		log.Tracef("collected path delivering %v, %v collected so far "+
			"of %v recommended",
			lnwire.MilliSatoshi(path.totalValue()),
			lnwire.MilliSatoshi(alreadyCollected),
			lnwire.MilliSatoshi(recommendedValue))

		if !c.allowMPP {
			break
		}

		if alreadyCollected >= recommendedValue {
			break
		}
	}

	if len(paths) == 0 {
		return nil, newError(errNoPathFound)
	}

	if alreadyCollected < c.finalValueMsat {
		return nil, newError(errInsufficientRoute)
	}

	return paths, nil
}

// minimalContribution computes the fragmentation-control floor a path must
// clear to be accepted (§4.3 step 4, §9 open question 1): for single-path
// payments the whole amount must fit in one path; for MPP, a path must
// carry at least 1/20th of whatever remains of the over-provisioned target,
// clamped to zero rather than underflowing if already_collected has
// overshot recommended_value.
func (c *collector) minimalContribution(recommendedValue, alreadyCollected uint64) uint64 {
	if !c.allowMPP {
		return c.finalValueMsat
	}

	remaining := saturatingSub(recommendedValue, alreadyCollected)

	return (remaining + minContributionDivisor - 1) / minContributionDivisor
}

// commit deducts a newly found path's carried amount, plus its downstream
// fees, from every channel it uses. It reports false without partially
// undoing any spends already applied, mirroring the defensive "should not
// occur" handling of §4.4 step 2.
func (c *collector) commit(path paymentPath) bool {
	amounts := path.channelAmounts()

	for i, hop := range path {
		if !c.book.spend(hop.channelID, amounts[i]) {
			return false
		}
	}

	return true
}
