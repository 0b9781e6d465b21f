package capgains

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// DecodePrices reads market prices from a JSON document.
//
// path is a JSONPath expression selecting the prices in the document ("$" if
// empty). It must select either an object mapping symbols to prices:
//
//	{"STK1": 300, "STK2": "612.5"}
//
// or a list of quotes:
//
//	[{"symbol": "STK1", "price": 300}, {"symbol": "STK2", "price": "612.5"}]
//
// Prices are JSON numbers or numeric strings, they are read exactly and
// assigned currency.
func DecodePrices(r io.Reader, path, currency string) (map[string]Money, error) {
	var jobj any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("could not decode prices: %w", err)
	}
	if path == "" {
		path = "$"
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}

	switch v := jval.(type) {
	case map[string]any:
		return pricesFrom(v, currency)
	case []any:
		// because jsonpath is never clear about whether it returns a list of 1
		// answer, or a single answer: a single object is the answer.
		if len(v) == 1 {
			if obj, ok := v[0].(map[string]any); ok && obj["symbol"] == nil {
				return pricesFrom(obj, currency)
			}
		}
		prices := make(map[string]Money, len(v))
		for i, q := range v {
			quote, ok := q.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("quote #%d is not an object: %v", i, q)
			}
			symbol, ok := quote["symbol"].(string)
			if !ok || symbol == "" {
				return nil, fmt.Errorf("quote #%d has no symbol", i)
			}
			m, err := decodePrice(symbol, quote["price"], currency)
			if err != nil {
				return nil, err
			}
			prices[symbol] = m
		}
		return prices, nil
	default:
		return nil, fmt.Errorf("%q selects neither an object nor a list: %v", path, jval)
	}
}

// pricesFrom converts an object mapping symbols to prices.
func pricesFrom(obj map[string]any, currency string) (map[string]Money, error) {
	prices := make(map[string]Money, len(obj))
	for symbol, p := range obj {
		m, err := decodePrice(symbol, p, currency)
		if err != nil {
			return nil, err
		}
		prices[symbol] = m
	}
	return prices, nil
}

func decodePrice(symbol string, jval any, currency string) (Money, error) {
	var s string
	switch v := jval.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = v
	case float64:
		return M(v, currency), nil
	case nil:
		return Money{}, fmt.Errorf("price of %q is missing", symbol)
	default:
		return Money{}, fmt.Errorf("price of %q is not a number: %v", symbol, jval)
	}
	m, err := ParseMoney(s, currency)
	if err != nil {
		return Money{}, fmt.Errorf("price of %q: %w", symbol, err)
	}
	if m.IsNegative() {
		return Money{}, fmt.Errorf("price of %q is negative: %s", symbol, m)
	}
	return m, nil
}
