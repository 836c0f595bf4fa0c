// Command routecli computes a payment route over a local JSON graph
// fixture, without needing a running daemon: a small, self-contained
// exerciser for the routing core, grounded on the teacher's cmd/lncli
// command-registration pattern.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "routecli"
	app.Usage = "compute a payment route over a local graph fixture"
	app.Commands = []cli.Command{
		getRouteCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// actionDecorator wraps a command action so a returned error is reported
// through cli's own exit-code machinery, matching the teacher's
// cmd/lncli convention of wrapping every command action the same way.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		if err := f(ctx); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		return nil
	}
}
