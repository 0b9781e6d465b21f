package capgains

import (
	"github.com/etnz/capgains/date"
)

// day is a helper for tests to create a date from a const.
func day(s string) date.Date { return date.MustParse(s) }

// buy is a helper for tests to create a purchase with no currency.
func buy(on, symbol string, amount, price float64) Transaction {
	return NewBuy(day(on), symbol, Q(amount), M(price, ""))
}

// sell is a helper for tests to create a sale with no currency.
func sell(on, symbol string, amount, price float64) Transaction {
	return NewSell(day(on), symbol, Q(amount), M(price, ""))
}

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// clone returns a copy of history, to check it has not been modified.
func clone(history []Transaction) []Transaction {
	return append([]Transaction(nil), history...)
}
