package capgains

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/capgains/date"
)

func TestTransaction_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		tx      Transaction
		wantErr string
	}{
		{name: "valid buy", tx: buy("2020-01-01", "STK1", 10, 100)},
		{name: "valid sell", tx: sell("2020-01-01", "STK1", 10, 100)},
		{name: "zero price", tx: buy("2020-01-01", "STK1", 10, 0)},
		{name: "no symbol", tx: buy("2020-01-01", "", 10, 100), wantErr: "symbol is missing"},
		{name: "no date", tx: NewBuy(date.Date{}, "STK1", Q(1), NO(1)), wantErr: "date is missing"},
		{name: "negative amount", tx: buy("2020-01-01", "STK1", -1, 100), wantErr: "amount -1 is negative"},
		{name: "negative price", tx: sell("2020-01-01", "STK1", 1, -100), wantErr: "price -100 is negative"},
		{name: "unknown type", tx: Transaction{Symbol: "STK1", Date: day("2020-01-01"), Type: 7}, wantErr: "invalid transaction type"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestTransaction_Value(t *testing.T) {
	if got, want := buy("2020-01-01", "STK1", 2.5, 100).Value(), NO(250); !got.Equal(want) {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestTransaction_UnmarshalJSON(t *testing.T) {
	var tx Transaction
	if err := json.Unmarshal([]byte(`{"command":"sell","date":"2020-01-02","symbol":"STK1","amount":3,"price":4}`), &tx); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if want := sell("2020-01-02", "STK1", 3, 4); !tx.Equal(want) {
		t.Errorf("Unmarshal() = %v, want %v", tx, want)
	}

	err := json.Unmarshal([]byte(`{"command":"split","date":"2020-01-02","symbol":"STK1"}`), &tx)
	if err == nil || !strings.Contains(err.Error(), "unknown transaction type") {
		t.Errorf("Unmarshal() error = %v, want an unknown transaction type", err)
	}
}

func TestTransaction_String(t *testing.T) {
	want := "2020-01-02 sell 3 STK1 @ 4"
	if got := sell("2020-01-02", "STK1", 3, 4).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
