package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waterfall"
	"github.com/etnz/waterfall/renderer"
	"github.com/google/subcommands"
)

// payoutCmd holds the flags for the 'payout' subcommand.
type payoutCmd struct {
	structureFlags
	exit decimalFlag
	json bool
}

func (*payoutCmd) Name() string { return "payout" }
func (*payoutCmd) Synopsis() string {
	return "split an exit across the capital stack and show the option holder's profit"
}
func (*payoutCmd) Usage() string {
	return `tov payout -exit <valuation> [-scenario <scenario> -round <round>] [structure flags]

  Runs the liquidation waterfall for one exit: preferred is paid first, common
  gets what is left, and your options are worth your diluted share of it minus
  the cost to exercise them.

Usage Examples:
# A 100M exit with the default structure.
$ tov payout -exit 100_000_000

# The same exit in a distressed market, with a 1.00 strike.
$ tov payout -exit 100_000_000 -scenario Distressed -round "Series B" -strike 1

`
}

func (c *payoutCmd) SetFlags(f *flag.FlagSet) {
	c.structureFlags.SetFlags(f)
	f.Var(&c.exit, "exit", "Exit valuation: the total proceeds of the sale. Required.")
	f.BoolVar(&c.json, "json", false, "Print the distribution as JSON.")
}

func (c *payoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !isSet(f, "exit") {
		fmt.Fprintln(os.Stderr, "Error: -exit is required")
		return subcommands.ExitUsageError
	}

	cs, err := c.structure(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid capital structure: %v\n", err)
		return exitStatus(err)
	}

	d, err := waterfall.Distribute(cs, c.exit.money())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the payout: %v\n", err)
		return exitStatus(err)
	}

	if c.json {
		return printJSON(d)
	}
	printMarkdown(renderer.RenderPayout(renderer.NewPayout(c.preset(), cs, d)))
	return subcommands.ExitSuccess
}
