package capgains

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/capgains/date"
)

var (
	// ErrMissingPrice is returned when a security that could be sold has no
	// market price.
	ErrMissingPrice = errors.New("missing market price")
	// ErrInvalidTaxRate is returned when the capital gains tax is not in [0,1].
	ErrInvalidTaxRate = errors.New("capital gains tax must be between 0 and 1")
)

// WithdrawalOptions describes the cash to raise by selling securities.
type WithdrawalOptions struct {
	NetWithdrawal   Money            // NetWithdrawal is the cash wanted, after tax.
	CapitalGainsTax Rate             // CapitalGainsTax is the tax rate applied to positive capital gains.
	Date            date.Date        // Date of the sales.
	Prices          map[string]Money // Prices are the market prices on Date, by symbol.
}

// netProceedsPerUnit returns the cash left after tax by selling one unit
// bought at basis for price. Losses are not taxed.
func netProceedsPerUnit(basis, price Money, tax Rate) Money {
	gain := price.Sub(basis)
	if gain.IsNegative() {
		return basis.Add(gain)
	}
	return basis.Add(gain.MulRate(tax.Complement()))
}

// CalculateSalesForNetWithdrawal computes the sales needed to raise
// options.NetWithdrawal in cash once capital gains tax is paid.
//
// Lots are sold in the order of their purchases in history, not by date: to
// sell a security first, list its purchases first. Only lots bought strictly
// before options.Date can be sold. A lot that would bring no cash after tax
// (its market price is zero) is skipped.
//
// It returns at most one sale per symbol, dated options.Date at the market
// price, sorted by symbol. If the lots cannot raise the whole amount, the
// returned sales sell everything they can.
func CalculateSalesForNetWithdrawal(history []Transaction, options WithdrawalOptions) ([]Transaction, error) {
	if !options.CapitalGainsTax.IsFraction() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTaxRate, options.CapitalGainsTax)
	}

	proposed := make(map[string]Transaction)
	withdrawn := M(0, options.NetWithdrawal.Currency())

	for _, buy := range Consolidate(history) {
		if withdrawn.GreaterThanOrEqual(options.NetWithdrawal) {
			break
		}
		if !buy.Date.Before(options.Date) {
			continue
		}
		price, ok := options.Prices[buy.Symbol]
		if !ok {
			return nil, fmt.Errorf("%w for %q on %s", ErrMissingPrice, buy.Symbol, options.Date)
		}

		net := netProceedsPerUnit(buy.Price, price, options.CapitalGainsTax)
		if !net.IsPositive() {
			continue
		}

		units := MinQ(options.NetWithdrawal.Sub(withdrawn).DivPrice(net), buy.Amount)
		if !units.IsPositive() {
			// what is left to withdraw is below the division precision
			break
		}
		withdrawn = withdrawn.Add(net.Mul(units))

		sale, ok := proposed[buy.Symbol]
		if !ok {
			sale = NewSell(options.Date, buy.Symbol, Q(0), price)
		}
		sale.Amount = sale.Amount.Add(units)
		proposed[buy.Symbol] = sale
	}

	sorted := make([]Transaction, 0, len(proposed))
	for _, symbol := range slices.Sorted(maps.Keys(proposed)) {
		sorted = append(sorted, proposed[symbol])
	}
	return sorted, nil
}
