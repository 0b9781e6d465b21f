package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	date string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "purchases still holding units" }
func (*lotsCmd) Usage() string {
	return `cgt lots [-d <date>]

  Displays the lots, the purchases still holding units once every sale has
  consumed its share, in the order they would be sold.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Only show the lots that can be sold on that date, bought strictly before it.")
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on date.Date
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	history, err := DecodeHistory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LotsMarkdown(capgains.Consolidate(history), on))
	return subcommands.ExitSuccess
}
