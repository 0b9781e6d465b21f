package capgains

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/capgains/date"
)

// Transaction records units of a security bought or sold at a unit price.
//
// Transactions are values. Every computation in this package works on copies
// and never modifies the transactions it is given.
type Transaction struct {
	Symbol string          // Symbol identifies the security, it only needs to differ between securities.
	Date   date.Date       // Date is the day the transaction took place.
	Price  Money           // Price is the unit price: buying price for a buy, selling price for a sell.
	Amount Quantity        // Amount is the number of units transacted.
	Type   TransactionType // Type is Buy or Sell.
	Memo   string          // Memo is an optional note, never used in computations.
}

// NewBuy creates a purchase of amount units of symbol at a unit price.
func NewBuy(on date.Date, symbol string, amount Quantity, price Money) Transaction {
	return Transaction{Symbol: symbol, Date: on, Price: price, Amount: amount, Type: Buy}
}

// NewSell creates a sale of amount units of symbol at a unit price.
func NewSell(on date.Date, symbol string, amount Quantity, price Money) Transaction {
	return Transaction{Symbol: symbol, Date: on, Price: price, Amount: amount, Type: Sell}
}

// Value returns the total value of the transaction (amount x price).
func (t Transaction) Value() Money { return t.Price.Mul(t.Amount) }

// Equal reports whether t and u record the same transaction.
func (t Transaction) Equal(u Transaction) bool {
	return t.Symbol == u.Symbol &&
		t.Date == u.Date &&
		t.Price.Equal(u.Price) &&
		t.Amount.Equal(u.Amount) &&
		t.Type == u.Type &&
		t.Memo == u.Memo
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", t.Date, t.Type, t.Amount, t.Symbol, t.Price)
}

// Validate checks that the transaction can take part in a computation.
func (t Transaction) Validate() error {
	var errs []error
	if t.Symbol == "" {
		errs = append(errs, errors.New("symbol is missing"))
	}
	if t.Date.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if t.Type != Buy && t.Type != Sell {
		errs = append(errs, fmt.Errorf("invalid transaction type %d", int(t.Type)))
	}
	if t.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount %s is negative", t.Amount))
	}
	if t.Price.IsNegative() {
		errs = append(errs, fmt.Errorf("price %s is negative", t.Price))
	}
	return errors.Join(errs...)
}

// MarshalJSON writes the transaction with its keys in a canonical order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Type)
	w.Append("date", t.Date)
	w.Append("symbol", t.Symbol)
	w.Append("amount", t.Amount)
	w.Append("price", t.Price)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	var temp struct {
		Command string    `json:"command"`
		Date    date.Date `json:"date"`
		Symbol  string    `json:"symbol"`
		Amount  Quantity  `json:"amount"`
		Price   Money     `json:"price"`
		Memo    string    `json:"memo"`
	}
	if err := json.Unmarshal(b, &temp); err != nil {
		return err
	}
	typ, err := ParseTransactionType(temp.Command)
	if err != nil {
		return err
	}
	*t = Transaction{
		Symbol: temp.Symbol,
		Date:   temp.Date,
		Price:  temp.Price,
		Amount: temp.Amount,
		Type:   typ,
		Memo:   temp.Memo,
	}
	return nil
}

// sales returns the sales in history, in order.
func sales(history []Transaction) []Transaction {
	var s []Transaction
	for _, tx := range history {
		if tx.Type == Sell {
			s = append(s, tx)
		}
	}
	return s
}
