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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	start string
	end   string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains of every sale" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-s <date>] [-d <date>]

  Calculates and displays the capital gain realized by every sale, using the
  FIFO method. Only the sales within the period are displayed, but all the
  transactions are used to compute them.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the reporting period. See 'cgt topic ledger' for supported date formats.")
	f.StringVar(&c.end, "d", "", "End date of the reporting period.")
}

// period parses the reporting period, open on unset sides.
func (c *gainsCmd) period() (date.Range, error) {
	var period date.Range
	var err error
	if c.start != "" {
		if period.From, err = date.Parse(c.start); err != nil {
			return period, fmt.Errorf("start date: %w", err)
		}
	}
	if c.end != "" {
		if period.To, err = date.Parse(c.end); err != nil {
			return period, fmt.Errorf("end date: %w", err)
		}
	}
	return period, nil
}

func (c *gainsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := c.period()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}

	history, err := DecodeHistory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledgers: %v\n", err)
		return subcommands.ExitFailure
	}

	gains, err := capgains.CalculateFIFOCapitalGains(history)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(gains, period))
	return subcommands.ExitSuccess
}
