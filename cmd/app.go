// Package cmd implements the CLI application to explore the true value of
// stock options behind a liquidation waterfall.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/waterfall"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range commands {
		c.Register(cmd.Command, cmd.group)
	}
}

// commands lists the application commands, with their group.
var commands = []struct {
	subcommands.Command
	group string
}{
	{&payoutCmd{}, "simulation"},
	{&breakEvenCmd{}, "simulation"},
	{&sweepCmd{}, "simulation"},
	{&presetsCmd{}, "presets"},
	{&topicCmd{}, "documentation"},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var presetsFile = flag.String("presets", os.Getenv(EnvPresets), "Path to a JSON or YAML presets file. Defaults to $"+EnvPresets+", or the built-in presets if empty.")
var currency = flag.String("currency", envOr(EnvCurrency, "USD"), "Currency of every monetary input.")
var raw = flag.Bool("raw", false, "Print reports as raw markdown instead of rendering them for the terminal.")

// Verbose enables verbose logging.
var Verbose = flag.Bool("v", false, "Verbose logging.")

// out is where commands print their results.
var out io.Writer = os.Stdout

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// SetupLogging configures the standard logger according to the -v flag.
func SetupLogging() {
	if *Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		return
	}
	log.SetFlags(0)
}

// LoadPresets loads the presets file, or the built-in presets if none is configured.
func LoadPresets() (*waterfall.Presets, error) {
	if *presetsFile == "" {
		return waterfall.DefaultPresets(), nil
	}
	if *Verbose {
		log.Printf("loading presets from %q", *presetsFile)
	}
	return waterfall.LoadPresets(*presetsFile)
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(out, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var rendered string
		rendered, err = r.Render(md)
		if err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	log.Printf("warning: cannot render markdown: %v", err)
	fmt.Fprint(out, md)
}

// printJSON prints v as indented JSON.
func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printJSONLines prints each value of seq as a single line of JSON.
func printJSONLines[T any](seq iter.Seq[T]) subcommands.ExitStatus {
	enc := json.NewEncoder(out)
	for v := range seq {
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// exitStatus maps an engine error to the command exit status: invalid inputs
// are usage errors.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, waterfall.ErrInvalidInput),
		errors.Is(err, waterfall.ErrInconsistentOwnership),
		errors.Is(err, waterfall.ErrCurrencyMismatch),
		errors.Is(err, waterfall.ErrUnknownPreset):
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}
