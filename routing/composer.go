package routing

import (
	"math/rand"
	"sort"

	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// mppPathsMax is MPP_PATHS_MAX (§6): the Composer never considers more than
// this many collected paths as rotation candidates.
const mppPathsMax = 50

// composedRoute is one candidate route drawn by the rotation step, paired
// with the total fees it would cost so the final selection can compare
// candidates cheaply.
type composedRoute struct {
	paths     []paymentPath
	totalFees uint64
}

// composeRoute is the Route Composer (§4.5): it sorts and truncates the
// collected paths, draws one candidate route per rotation, drops or reduces
// paths to shed any overpayment, and returns the cheapest candidate.
func composeRoute(paths []paymentPath,
	finalValueMsat uint64, payeeFeatures *lnwire.FeatureVector) *route.Route {

	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].totalFees() < paths[j].totalFees()
	})

	if len(paths) > mppPathsMax {
		paths = paths[:mppPathsMax]
	}

	rotations := make([]int, len(paths))
	for i := range rotations {
		rotations[i] = i
	}

	// §9 open question 3: by default rotation order is the deterministic
	// paths[i:] ++ paths[:i] of §4.5; the dev-only RandomizePathOrder
	// toggle instead tries rotations in a random order. Every rotation
	// is still drawn either way, so the order only decides which
	// candidate is selected among those with equal total fees.
	if experimentalCfg.RandomizeOrder() {
		rand.Shuffle(len(rotations), func(i, j int) {
			rotations[i], rotations[j] = rotations[j], rotations[i]
		})
	}

	var drawn []composedRoute

	for _, i := range rotations {
		cur := rotateAndFill(paths, i, finalValueMsat)
		cur = dropLowValuePaths(cur, finalValueMsat)
		cur = absorbOverpayment(cur, finalValueMsat)

		drawn = append(drawn, composedRoute{
			paths:     cur,
			totalFees: sumTotalFees(cur),
		})
	}

	best := drawn[0]
	for _, candidate := range drawn[1:] {
		if candidate.totalFees < best.totalFees {
			best = candidate
		}
	}

	if payeeFeatures != nil {
		for _, p := range best.paths {
			p[len(p)-1].nodeFeatures = lnwire.NodeFeatures{
				FeatureVector: payeeFeatures,
			}
		}
	}

	out := make([]route.Path, len(best.paths))
	for i, p := range best.paths {
		out[i] = p.toRoutePath()
	}

	return &route.Route{Paths: out}
}

// rotateAndFill concatenates paths[start:] ++ paths[:start], appending one
// path at a time until the cumulative carried value reaches or exceeds
// finalValueMsat (§4.5 step 2).
func rotateAndFill(paths []paymentPath, start int, finalValueMsat uint64) []paymentPath {
	n := len(paths)

	var (
		cur        []paymentPath
		cumulative uint64
	)

	for k := 0; k < n; k++ {
		p := paths[(start+k)%n].clone()
		cur = append(cur, p)
		cumulative = saturatingAdd(cumulative, p.totalValue())

		if cumulative >= finalValueMsat {
			break
		}
	}

	return cur
}

// dropLowValuePaths removes whole low-value paths from the front of a
// value-sorted copy of cur, as long as doing so doesn't eat into the
// requested amount, always keeping at least one path (§4.5 step 3).
func dropLowValuePaths(cur []paymentPath, finalValueMsat uint64) []paymentPath {
	var cumulative uint64
	for _, p := range cur {
		cumulative = saturatingAdd(cumulative, p.totalValue())
	}

	overpaid := saturatingSub(cumulative, finalValueMsat)
	if overpaid == 0 {
		return cur
	}

	sorted := make([]paymentPath, len(cur))
	copy(sorted, cur)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].totalValue() < sorted[j].totalValue()
	})

	drop := 0
	for drop < len(sorted)-1 && sorted[drop].totalValue() <= overpaid {
		overpaid -= sorted[drop].totalValue()
		drop++
	}

	return sorted[drop:]
}

// absorbOverpayment reduces the single cheapest (by proportional-fee sum)
// path in cur to soak up any carried value still exceeding finalValueMsat
// after dropLowValuePaths has run (§4.5 step 4, §9 open question 2: this
// follows the source's literal behavior of reducing the cheapest path, not
// the most expensive one the surrounding comment implies).
func absorbOverpayment(cur []paymentPath, finalValueMsat uint64) []paymentPath {
	var cumulative uint64
	for _, p := range cur {
		cumulative = saturatingAdd(cumulative, p.totalValue())
	}

	overpaid := saturatingSub(cumulative, finalValueMsat)
	if overpaid == 0 {
		return cur
	}

	sorted := make([]paymentPath, len(cur))
	copy(sorted, cur)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].totalProportionalFeeParts() <
			sorted[j].totalProportionalFeeParts()
	})

	cheapest := sorted[0]
	newValue := saturatingSub(cheapest.totalValue(), overpaid)
	updateValueAndRecomputeFees(cheapest, newValue)

	return cur
}

func sumTotalFees(paths []paymentPath) uint64 {
	var total uint64
	for _, p := range paths {
		total = saturatingAdd(total, p.totalFees())
	}

	return total
}
