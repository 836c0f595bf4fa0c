package routing

import (
	"github.com/lnroute/pathfinder/channeldb"
	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing/route"
)

// GetRoute is the Public Entry Point (§4.6): given a read-only channel
// graph and a requested payment, it validates its inputs, runs the
// Multi-Path Collector, hands the collected paths to the Route Composer,
// and returns the resulting Route.
//
// graph is borrowed read-only for the duration of the call; the caller is
// responsible for holding whatever external lock makes that safe (§5).
func GetRoute(graph *channeldb.ChannelGraph, payer, payee route.Vertex,
	payeeFeatures fn.Option[lnwire.InvoiceFeatures],
	firstHops []*FirstHopChannel, lastHops []RouteHint,
	finalValueMsat uint64, finalCltv uint32) (*route.Route, error) {

	log.Debugf("searching for route to %v, sending %v with final "+
		"cltv delta %v", payee, lnwire.MilliSatoshi(finalValueMsat),
		finalCltv)

	if payee == payer {
		return nil, newError(errSelfPayment)
	}

	if finalValueMsat > uint64(lnwire.MaxMilliSatoshi) {
		return nil, newError(errValueTooLarge)
	}

	if finalValueMsat == 0 {
		return nil, newError(errZeroValue)
	}

	for _, hint := range lastHops {
		if hint.SrcNodeID == payee {
			return nil, newError(errLastHopIsPayee)
		}
	}

	if firstHops != nil {
		if len(firstHops) == 0 {
			return nil, newError(errNoOutboundChannels)
		}

		for _, fh := range firstHops {
			if fh.ShortChannelID == 0 {
				panic("routing: first-hop entry missing a short channel id")
			}

			if fh.CounterpartyNode == payer {
				return nil, newError(errFirstHopIsOurself)
			}
		}
	}

	gv := newGraphView(graph, payer, payee, firstHops, lastHops)

	allowMPP := false
	payeeFeatures.WhenSome(func(f lnwire.InvoiceFeatures) {
		if f.SupportsBasicMPP() {
			allowMPP = true
		}
	})

	if !allowMPP && gv.nodeFeatures(payee).SupportsBasicMPP() {
		allowMPP = true
	}

	c := newCollector(gv, payer, payee, finalCltv, finalValueMsat, allowMPP)

	paths, err := c.collect()
	if err != nil {
		log.Debugf("unable to find route to %v: %v", payee, err)

		return nil, err
	}

	log.Debugf("found %v path(s) to %v", len(paths), payee)

	var payeeFeatureVector *lnwire.FeatureVector
	payeeFeatures.WhenSome(func(f lnwire.InvoiceFeatures) {
		payeeFeatureVector = f.FeatureVector
	})

	return composeRoute(paths, finalValueMsat, payeeFeatureVector), nil
}
