package capgains

import (
	"encoding/json"
	"fmt"
)

// TransactionType tells whether a transaction buys or sells units.
type TransactionType int

const (
	// Buy acquires units of a security, opening a lot.
	Buy TransactionType = iota
	// Sell disposes of units of a security, consuming lots first-in first-out.
	Sell
)

func (t TransactionType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "buy", "BUY":
		return Buy, nil
	case "sell", "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	if t != Buy && t != Sell {
		return nil, fmt.Errorf("cannot marshal transaction type %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
