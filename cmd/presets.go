package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/waterfall/renderer"
	"github.com/google/subcommands"
)

// presetsCmd holds the flags for the 'presets' subcommand.
type presetsCmd struct {
	json bool
}

func (*presetsCmd) Name() string     { return "presets" }
func (*presetsCmd) Synopsis() string { return "list the liquidation presets by scenario and round" }
func (*presetsCmd) Usage() string {
	return `tov presets [-json]

  Lists the liquidation terms of every preset. Use -presets (or $` + EnvPresets + `)
  to read them from your own JSON or YAML file.

`
}

func (c *presetsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the presets as JSON.")
}

func (c *presetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	presets, err := LoadPresets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading presets: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := renderer.NewPresets(presets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading presets: %v\n", err)
		return exitStatus(err)
	}
	if c.json {
		return printJSON(report)
	}
	printMarkdown(renderer.RenderPresets(report))
	return subcommands.ExitSuccess
}
