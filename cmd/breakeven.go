package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/waterfall"
	"github.com/etnz/waterfall/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// breakEvenCmd holds the flags for the 'breakeven' subcommand.
type breakEvenCmd struct {
	structureFlags
	max       decimalFlag
	tolerance decimalFlag
	json      bool
}

func (*breakEvenCmd) Name() string { return "breakeven" }
func (*breakEvenCmd) Synopsis() string {
	return "find the lowest exit where the options become profitable"
}
func (*breakEvenCmd) Usage() string {
	return `tov breakeven [-max <valuation>] [-tolerance <amount>] [structure flags]

  Searches the lowest exit valuation where the net profit of exercising the
  options reaches zero. The search covers exits from zero to -max, that
  defaults to the larger of ten times the capital raised and twice the
  nominal break-even.

`
}

func (c *breakEvenCmd) SetFlags(f *flag.FlagSet) {
	c.structureFlags.SetFlags(f)
	c.tolerance.value = decimal.New(1, -2)
	f.Var(&c.max, "max", "Highest exit valuation searched.")
	f.Var(&c.tolerance, "tolerance", "Precision of the break-even valuation.")
	f.BoolVar(&c.json, "json", false, "Print the result as JSON.")
}

func (c *breakEvenCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cs, err := c.structure(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid capital structure: %v\n", err)
		return exitStatus(err)
	}

	r, err := waterfall.DefaultRange(cs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid capital structure: %v\n", err)
		return exitStatus(err)
	}
	upper := r.To
	if isSet(f, "max") {
		upper = c.max.money()
	}

	be, err := waterfall.FindBreakEven(cs, upper, c.tolerance.money())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching the break-even: %v\n", err)
		return exitStatus(err)
	}
	if *Verbose {
		log.Printf("break-even search stopped after %d bisections", be.Iterations)
	}

	report := renderer.NewBreakEven(c.preset(), cs, be)
	if c.json {
		return printJSON(report)
	}
	printMarkdown(renderer.RenderBreakEven(report))
	return subcommands.ExitSuccess
}
