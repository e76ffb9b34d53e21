package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/waterfall"
	"github.com/etnz/waterfall/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// sweepCmd holds the flags for the 'sweep' subcommand.
type sweepCmd struct {
	structureFlags
	from    decimalFlag
	to      decimalFlag
	steps   int
	workers int
	json    bool
}

func (*sweepCmd) Name() string { return "sweep" }
func (*sweepCmd) Synopsis() string {
	return "compute the payout over a range of exit valuations"
}
func (*sweepCmd) Usage() string {
	return `tov sweep [-from <valuation>] [-to <valuation>] [-steps <n>] [-workers <n>] [-json] [structure flags]

  Computes the waterfall at evenly spaced exits from -from to -to, both
  included. By default the range goes from zero to the larger of ten times
  the capital raised and twice the nominal break-even.

  With -json, each distribution is printed as one JSON object per line.

Usage Examples:
# The payout curve of a 2x participating preference, on 8 workers.
$ tov sweep -multiple 2 -participating -workers 8

`
}

func (c *sweepCmd) SetFlags(f *flag.FlagSet) {
	c.structureFlags.SetFlags(f)
	f.Var(&c.from, "from", "Lowest exit valuation.")
	f.Var(&c.to, "to", "Highest exit valuation.")
	f.IntVar(&c.steps, "steps", waterfall.DefaultSteps, "Number of intervals between -from and -to.")
	f.IntVar(&c.workers, "workers", 0, "Number of concurrent workers. Zero computes the valuations in sequence.")
	f.BoolVar(&c.json, "json", false, "Print each distribution as a JSON line.")
}

// valuationRange returns the range of the sweep, defaulting to DefaultRange.
func (c *sweepCmd) valuationRange(f *flag.FlagSet, cs waterfall.CapitalStructure) (waterfall.ValuationRange, error) {
	r, err := waterfall.DefaultRange(cs)
	if err != nil {
		return r, err
	}
	if isSet(f, "from") {
		r.From = c.from.money()
	}
	if isSet(f, "to") {
		r.To = c.to.money()
	}
	r.Steps = c.steps
	return r, r.Validate()
}

func (c *sweepCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cs, err := c.structure(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid capital structure: %v\n", err)
		return exitStatus(err)
	}

	r, err := c.valuationRange(f, cs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid range: %v\n", err)
		return exitStatus(err)
	}

	var ds []waterfall.Distribution
	if c.workers > 0 {
		ds, err = waterfall.SweepParallel(ctx, cs, slices.Collect(r.Valuations()), c.workers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing the sweep: %v\n", err)
			return exitStatus(err)
		}
		if c.json {
			return printJSONLines(slices.Values(ds))
		}
	} else {
		enc := json.NewEncoder(out)
		for d, err := range waterfall.Sweep(cs, r.Valuations()) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error computing the sweep: %v\n", err)
				return exitStatus(err)
			}
			if c.json {
				// stream lines as they are computed.
				if err := enc.Encode(d); err != nil {
					fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
					return subcommands.ExitFailure
				}
				continue
			}
			ds = append(ds, d)
		}
		if c.json {
			return subcommands.ExitSuccess
		}
	}

	be, err := waterfall.FindBreakEven(cs, r.To, waterfall.M(decimal.New(1, -2), *currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching the break-even: %v\n", err)
		return exitStatus(err)
	}
	printMarkdown(renderer.RenderSweep(renderer.NewSweep(ds, be)))
	return subcommands.ExitSuccess
}
