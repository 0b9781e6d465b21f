package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

type yearlyCmd struct{}

func (*yearlyCmd) Name() string     { return "yearly" }
func (*yearlyCmd) Synopsis() string { return "realized capital gains by calendar year" }
func (*yearlyCmd) Usage() string {
	return `cgt yearly

  Displays the realized capital gains summed by calendar year. Losses offset
  the gains of the same year.
`
}

func (c *yearlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.YearlyMarkdown(capgains.AggregateByYear(gains)))
	return subcommands.ExitSuccess
}
