package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// priceFlags collects the repeated -p SYMBOL=PRICE flags.
type priceFlags map[string]string

func (p priceFlags) String() string {
	var parts []string
	for _, symbol := range slices.Sorted(maps.Keys(p)) {
		parts = append(parts, symbol+"="+p[symbol])
	}
	return strings.Join(parts, ",")
}

func (p priceFlags) Set(value string) error {
	symbol, price, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("invalid price %q want SYMBOL=PRICE", value)
	}
	p[strings.TrimSpace(symbol)] = strings.TrimSpace(price)
	return nil
}

type withdrawCmd struct {
	net        string
	tax        string
	date       string
	prices     priceFlags
	pricesFile string
	pricesPath string
	commit     bool
}

func (*withdrawCmd) Name() string { return "withdraw" }
func (*withdrawCmd) Synopsis() string {
	return "plans the sales raising a net amount of cash"
}
func (*withdrawCmd) Usage() string {
	return `cgt withdraw -n <amount> [-t <rate>] [-d <date>] [-p SYMBOL=PRICE]... [-prices <file> [-path <jsonpath>]] [-commit]

  Computes the sales raising the net amount of cash once capital gains tax is
  paid. Lots are sold in the order of their purchases in the ledgers, only
  the ones bought strictly before the date. The market prices are read from
  the -prices JSON file, then overridden by the -p flags.

  With -commit, the sales are appended to the first ledger file.

Usage Examples:
$ cgt withdraw -n 5000 -t 30% -p STK1=300 -p STK2=150
$ cgt withdraw -n 5000 -t 0.3 -prices quotes.json -path '$.data'
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	c.prices = make(priceFlags)
	f.StringVar(&c.net, "n", "", "Net amount of cash to raise, after tax.")
	f.StringVar(&c.tax, "t", os.Getenv(EnvTaxRate), "Capital gains tax rate, like 0.3 or 30%. Defaults to $"+EnvTaxRate)
	f.StringVar(&c.date, "d", "0d", "Date of the sales.")
	f.Var(c.prices, "p", "Market price of a symbol, as SYMBOL=PRICE. Can be repeated.")
	f.StringVar(&c.pricesFile, "prices", "", "JSON file with the market prices by symbol.")
	f.StringVar(&c.pricesPath, "path", "$", "JSONPath to the prices inside the -prices file.")
	f.BoolVar(&c.commit, "commit", false, "Append the sales to the first ledger file.")
}

// options parses the flags into withdrawal options.
func (c *withdrawCmd) options() (capgains.WithdrawalOptions, error) {
	var (
		options capgains.WithdrawalOptions
		err     error
	)
	cur := Currency()
	if c.net == "" {
		return options, fmt.Errorf("the net amount -n is required")
	}
	if options.NetWithdrawal, err = capgains.ParseMoney(c.net, cur); err != nil {
		return options, fmt.Errorf("net amount: %w", err)
	}
	if c.tax == "" {
		c.tax = "0"
	}
	if options.CapitalGainsTax, err = capgains.ParseRate(c.tax); err != nil {
		return options, fmt.Errorf("tax rate: %w", err)
	}
	if options.Date, err = date.Parse(c.date); err != nil {
		return options, err
	}

	options.Prices = make(map[string]capgains.Money)
	if c.pricesFile != "" {
		f, err := os.Open(c.pricesFile)
		if err != nil {
			return options, err
		}
		defer f.Close()
		if options.Prices, err = capgains.DecodePrices(f, c.pricesPath, cur); err != nil {
			return options, fmt.Errorf("prices file %q: %w", c.pricesFile, err)
		}
	}
	for symbol, p := range c.prices {
		price, err := capgains.ParseMoney(p, cur)
		if err != nil {
			return options, fmt.Errorf("price of %q: %w", symbol, err)
		}
		if price.IsNegative() {
			return options, fmt.Errorf("price of %q is negative: %s", symbol, price)
		}
		options.Prices[symbol] = price
	}
	return options, nil
}

func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	options, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	history, err := DecodeHistory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledgers: %v\n", err)
		return subcommands.ExitFailure
	}

	sales, err := capgains.CalculateSalesForNetWithdrawal(history, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error planning the withdrawal: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("proposed %d sales", len(sales))

	// the gains of the proposed sales are the last ones of the extended history
	gains, err := capgains.CalculateFIFOCapitalGains(slices.Concat(history, sales))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return subcommands.ExitFailure
	}
	proposed := gains[len(gains)-len(sales):]

	printMarkdown(renderer.SalesMarkdown(renderer.NewWithdrawal(options.Date, proposed, options.NetWithdrawal, options.CapitalGainsTax)))

	if c.commit {
		for _, sale := range sales {
			if status := EncodeTransaction(sale); status != subcommands.ExitSuccess {
				return status
			}
		}
	}
	return subcommands.ExitSuccess
}
