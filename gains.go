package capgains

import (
	"errors"
	"fmt"
)

// ErrInsufficientBuyVolume is returned when a sale sells more units than were
// bought before it.
var ErrInsufficientBuyVolume = errors.New("insufficient buy volume")

// RealizedGain is the capital gain (or loss when negative) realized by a sale.
type RealizedGain struct {
	Sale         Transaction `json:"sale"`         // Sale is the sale, as found in the history.
	CapitalGains Money       `json:"capitalGains"` // CapitalGains realized by the sale.
}

// CalculateFIFOCapitalGains computes the capital gains realized by every sale
// in history, in history order, using the FIFO method.
//
// A sale is matched against the purchases of the same symbol dated strictly
// before it: purchases made the same day as the sale are never used. Units
// consumed by a sale are no longer available to the following ones.
//
// It fails with ErrInsufficientBuyVolume if a sale cannot be fully matched,
// which means the history sells more than it bought.
func CalculateFIFOCapitalGains(history []Transaction) ([]RealizedGain, error) {
	inv := newInventory(history)
	gains := make([]RealizedGain, 0)

	for _, sale := range sales(history) {
		gain := M(0, sale.Price.Currency())
		before := func(l lot) bool { return l.buy.Date.Before(sale.Date) }

		var unmatched Quantity
		inv[sale.Symbol], unmatched = inv[sale.Symbol].consume(sale.Amount, before, func(l lot, sold Quantity) {
			gain = gain.Add(sale.Price.Sub(l.buy.Price).Mul(sold))
		})
		if unmatched.IsPositive() {
			return nil, fmt.Errorf("%w: sale of %s %s on %s exceeds the amount bought by %s", ErrInsufficientBuyVolume, sale.Amount, sale.Symbol, sale.Date, unmatched)
		}

		gains = append(gains, RealizedGain{Sale: sale, CapitalGains: gain})
	}
	return gains, nil
}
