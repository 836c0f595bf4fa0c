package main

import (
	"errors"
	"fmt"

	"github.com/lnroute/pathfinder/fn"
	"github.com/lnroute/pathfinder/lnwire"
	"github.com/lnroute/pathfinder/routing"
	"github.com/lnroute/pathfinder/routing/route"
	"github.com/urfave/cli"
)

var getRouteCommand = cli.Command{
	Name:  "getroute",
	Usage: "compute a route over a local graph fixture",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "request",
			Usage: "path to a JSON route request (graph + payment)",
		},
	},
	Action: actionDecorator(getRoute),
}

func getRoute(ctx *cli.Context) error {
	requestPath := ctx.String("request")
	if requestPath == "" {
		return errors.New("--request is required")
	}

	req, err := loadRouteRequest(requestPath)
	if err != nil {
		return err
	}

	graph, err := buildGraph(req.Graph)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	payer, err := route.NewVertexFromStr(req.Payer)
	if err != nil {
		return fmt.Errorf("payer: %w", err)
	}

	payee, err := route.NewVertexFromStr(req.Payee)
	if err != nil {
		return fmt.Errorf("payee: %w", err)
	}

	firstHops, err := buildFirstHops(req.FirstHops)
	if err != nil {
		return err
	}

	hints, err := buildRouteHints(req.RouteHints)
	if err != nil {
		return err
	}

	var payeeFeatures fn.Option[lnwire.InvoiceFeatures]
	if len(req.PayeeFeatures) > 0 {
		payeeFeatures = fn.Some(lnwire.InvoiceFeatures{
			FeatureVector: featureVectorFromBits(req.PayeeFeatures),
		})
	}

	r, err := routing.GetRoute(
		graph, payer, payee, payeeFeatures, firstHops, hints,
		req.AmtMsat, req.FinalCltvDelta,
	)
	if err != nil {
		return err
	}

	printRoute(r)

	return nil
}

func printRoute(r *route.Route) {
	fmt.Printf(
		"route: %d path(s), delivering %v, paying %v in fees\n",
		len(r.Paths), r.TotalAmount(), r.TotalFees(),
	)

	for i, p := range r.Paths {
		fmt.Printf("  path %d:\n", i)
		for _, hop := range p {
			fmt.Printf(
				"    -> %s via scid=%d fee=%v cltv_delta=%d\n",
				hop.PubKeyBytes, hop.ChannelID, hop.FeeMsat,
				hop.CltvExpiryDelta,
			)
		}
	}
}
