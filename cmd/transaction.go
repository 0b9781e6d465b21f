package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
	"github.com/google/subcommands"
)

// transactionCmd records a purchase or a sale.
type transactionCmd struct {
	typ    capgains.TransactionType
	date   string
	symbol string
	amount string
	price  string
	memo   string
}

func (c *transactionCmd) Name() string { return c.typ.String() }
func (c *transactionCmd) Synopsis() string {
	if c.typ == capgains.Sell {
		return "record a sale of a security"
	}
	return "record a purchase of a security"
}
func (c *transactionCmd) Usage() string {
	return fmt.Sprintf(`cgt %s -s <symbol> -a <amount> -p <price> [-d <date>] [-m <memo>]

  Appends the transaction to the first ledger file. A sale is refused if
  the ledgers do not hold enough units bought before it.
`, c.typ)
}

func (c *transactionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the transaction. See 'cgt topic ledger' for supported date formats.")
	f.StringVar(&c.symbol, "s", "", "Symbol of the security.")
	f.StringVar(&c.amount, "a", "", "Number of units.")
	f.StringVar(&c.price, "p", "", "Unit price.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *transactionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if tx.Type == capgains.Sell {
		// a sale must be covered by earlier purchases.
		history, err := DecodeHistory(ctx)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading ledgers: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := capgains.CalculateFIFOCapitalGains(append(history, tx)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return EncodeTransaction(tx)
}

// transaction parses the flags into a valid transaction.
func (c *transactionCmd) transaction() (capgains.Transaction, error) {
	on, err := date.Parse(c.date)
	if err != nil {
		return capgains.Transaction{}, err
	}
	amount, err := capgains.ParseQuantity(c.amount)
	if err != nil {
		return capgains.Transaction{}, err
	}
	price, err := capgains.ParseMoney(c.price, Currency())
	if err != nil {
		return capgains.Transaction{}, err
	}

	tx := capgains.NewBuy(on, c.symbol, amount, price)
	tx.Type = c.typ
	tx.Memo = c.memo
	return tx, tx.Validate()
}
