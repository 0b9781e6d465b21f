package capgains

import (
	"cmp"
	"slices"
)

// lot is the part of a purchase that has not been sold yet.
type lot struct {
	index     int         // position of the purchase in the history
	buy       Transaction // the original purchase
	remaining Quantity
}

// lots is a FIFO queue of the lots of a single security, in history order.
type lots []lot

// consume sells quantity units from the lots using the FIFO method.
//
// Only the lots accepted by eligible are consumed, the others are kept as
// is. For every consumed lot, matched (if not nil) is called with the lot as
// it was before the sale and the quantity taken from it.
//
// It returns the remaining lots, and the quantity that could not be matched.
// The receiver is not modified.
func (l lots) consume(quantity Quantity, eligible func(lot) bool, matched func(lot, Quantity)) (lots, Quantity) {
	remainingLots := make(lots, 0, len(l))

	for _, currentLot := range l {
		if !quantity.IsPositive() || !eligible(currentLot) {
			remainingLots = append(remainingLots, currentLot)
			continue
		}

		sold := MinQ(quantity, currentLot.remaining)
		if matched != nil {
			matched(currentLot, sold)
		}
		quantity = quantity.Sub(sold)
		currentLot.remaining = currentLot.remaining.Sub(sold)
		if currentLot.remaining.IsPositive() {
			// Partial sale from this lot
			remainingLots = append(remainingLots, currentLot)
		}
	}
	return remainingLots, quantity
}

// anyLot accepts every lot.
func anyLot(lot) bool { return true }

// inventory holds the lots of every security, by symbol.
type inventory map[string]lots

// newInventory returns the inventory made of every purchase in history,
// before any sale.
func newInventory(history []Transaction) inventory {
	inv := make(inventory)
	for i, tx := range history {
		if tx.Type != Buy {
			continue
		}
		inv[tx.Symbol] = append(inv[tx.Symbol], lot{index: i, buy: tx, remaining: tx.Amount})
	}
	return inv
}

// residual returns the unsold part of every purchase, as purchases, in
// history order.
func (inv inventory) residual() []Transaction {
	var all lots
	for _, l := range inv {
		all = append(all, l...)
	}
	slices.SortFunc(all, func(a, b lot) int { return cmp.Compare(a.index, b.index) })

	residual := make([]Transaction, 0, len(all))
	for _, l := range all {
		if !l.remaining.IsPositive() {
			continue
		}
		buy := l.buy
		buy.Amount = l.remaining
		residual = append(residual, buy)
	}
	return residual
}
