package capgains

// Consolidate reduces a history to its residual purchases.
//
// Every sale, in history order, consumes the purchases of the same symbol in
// history order, whatever their dates. A sale larger than what is left to
// consume is not an error here: the excess is ignored.
//
// It returns the purchases that still hold units, with their amount reduced
// to the units left, in their original relative order. history is not
// modified.
func Consolidate(history []Transaction) []Transaction {
	inv := newInventory(history)
	for _, sale := range sales(history) {
		inv[sale.Symbol], _ = inv[sale.Symbol].consume(sale.Amount, anyLot, nil)
	}
	return inv.residual()
}
