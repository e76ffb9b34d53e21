// Command tov shows the true value of startup stock options behind a
// liquidation waterfall.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/waterfall/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Complete("tov")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	// unknown subcommands are looked up as tov-<subcommand> extensions.
	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// isRegistered reports whether 'name' is a registered subcommand.
func isRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		if sc.Name() == name {
			found = true
		}
	})
	return found
}
