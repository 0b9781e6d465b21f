// Package cmd implements the cgt command-line application.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const (
	EnvLedgerFile     = "CGT_LEDGER_FILE"
	EnvCurrency       = "CGT_CURRENCY"
	EnvTaxRate        = "CGT_TAX_RATE"
	EnvAddr           = "CGT_ADDR"
	EnvAllowedOrigins = "CGT_ALLOWED_ORIGINS"
	EnvVerbose        = "CGT_VERBOSE"
)

// DefaultLedgerFile is the ledger used when none is configured.
const DefaultLedgerFile = "transactions.jsonl"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("l", "", "Comma separated list of ledger files (JSONL format). Defaults to $"+EnvLedgerFile+" or "+DefaultLedgerFile)
var currency = flag.String("c", "", "Currency of the prices in the ledgers. Defaults to $"+EnvCurrency)
var Verbose = flag.Bool("v", false, "Log diagnostics to stderr")

// maxConcurrentDecodes bounds the number of ledger files read at once.
const maxConcurrentDecodes = 4

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&transactionCmd{typ: capgains.Buy}, "transactions")
	c.Register(&transactionCmd{typ: capgains.Sell}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&gainsCmd{}, "reports")
	c.Register(&yearlyCmd{}, "reports")
	c.Register(&lotsCmd{}, "reports")
	c.Register(&withdrawCmd{}, "reports")

	c.Register(&serveCmd{}, "server")
	c.Register(&topicCmd{}, "documentation")
}

// LoadEnv loads the .env file of the working directory, if any, into the
// environment. Variables already set are not overridden.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, could not load .env file: %v", err)
	}
}

// SetupLogging silences the log unless verbose mode is on.
func SetupLogging() {
	if *Verbose || os.Getenv(EnvVerbose) == "true" {
		*Verbose = true
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

// LedgerFiles returns the configured ledger files, in order.
func LedgerFiles() []string {
	value := *ledgerFile
	if value == "" {
		value = os.Getenv(EnvLedgerFile)
	}
	if value == "" {
		value = DefaultLedgerFile
	}
	var files []string
	for _, file := range strings.Split(value, ",") {
		if file = strings.TrimSpace(file); file != "" {
			files = append(files, file)
		}
	}
	if len(files) == 0 {
		files = []string{DefaultLedgerFile}
	}
	return files
}

// Currency returns the configured currency, possibly empty.
func Currency() string {
	if *currency != "" {
		return *currency
	}
	return os.Getenv(EnvCurrency)
}

// decodeLedgerFile decodes a single ledger file.
func decodeLedgerFile(file, cur string) ([]capgains.Transaction, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	history, err := capgains.DecodeHistory(f, cur)
	if err != nil {
		return nil, fmt.Errorf("ledger %q: %w", file, err)
	}
	return history, nil
}

// DecodeHistory decodes all the ledger files, concurrently, and returns their
// transactions concatenated in the order of the files.
func DecodeHistory(ctx context.Context) ([]capgains.Transaction, error) {
	files := LedgerFiles()
	cur := Currency()
	histories := make([][]capgains.Transaction, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			history, err := decodeLedgerFile(file, cur)
			if err != nil {
				return err
			}
			log.Printf("decoded %d transactions from %q", len(history), file)
			histories[i] = history
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(histories...), nil
}

// EncodeTransaction appends a single transaction into the first ledger file.
func EncodeTransaction(tx capgains.Transaction) subcommands.ExitStatus {
	filename := LedgerFiles()[0]
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := capgains.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	log.Printf("appended %s to %s", tx, filename)
	return subcommands.ExitSuccess
}

// encodeLedgerFile replaces the content of a ledger file with history.
func encodeLedgerFile(file string, history []capgains.Transaction) error {
	var buf bytes.Buffer
	if err := capgains.EncodeHistory(&buf, history); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}
