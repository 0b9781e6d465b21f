package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cgt fmt

  Validates and formats every ledger file in-place, one transaction per line
  with the fields in a fixed order. Transactions are never reordered: the
  order of the purchases decides which lots are sold first.

Usage Examples:
# Formats the default ledger file.
$ cgt fmt

# Formats two ledgers.
$ cgt -l 2023.jsonl,2024.jsonl fmt
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, file := range LedgerFiles() {
		log.Printf("formatting ledger %q", file)

		history, err := decodeLedgerFile(file, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not load ledger %q: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}
		if err := encodeLedgerFile(file, history); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving formatted ledger %q: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}
		log.Printf("formatted %d transactions in %q", len(history), file)
	}
	return status
}
