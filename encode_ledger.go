package capgains

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeHistory decodes a history from a stream of JSONL data, one
// transaction per line:
//
//	{"command":"buy","date":"2020-01-01","symbol":"STK1","amount":10,"price":100}
//
// Transactions keep the order of the stream: it is the FIFO order. Empty lines
// are skipped. Prices are assigned currency, which may be empty.
func DecodeHistory(r io.Reader, currency string) ([]Transaction, error) {
	var history []Transaction
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction %q: %w", line, string(lineBytes), err)
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: invalid transaction: %w", line, err)
		}
		tx.Price = tx.Price.WithCurrency(currency)
		history = append(history, tx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return history, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeHistory writes history to w in JSONL format, in the given order.
func EncodeHistory(w io.Writer, history []Transaction) error {
	for _, tx := range history {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
