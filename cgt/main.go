// Command cgt computes FIFO capital gains and plans net withdrawals from
// ledgers of purchases and sales.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.LoadEnv()

	commander := subcommands.NewCommander(flag.CommandLine, "cgt")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// handles the shell completion requests, and exits when it does.
	cmd.Completion(commander).Complete("cgt")

	flag.Parse()
	cmd.SetupLogging()

	if args := flag.Args(); len(args) > 0 && !isCommand(commander, args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// isCommand reports whether name is a registered subcommand.
func isCommand(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
