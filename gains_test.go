package capgains

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalculateFIFOCapitalGains(t *testing.T) {
	testCases := []struct {
		name    string
		history []Transaction
		want    []RealizedGain
	}{
		{
			name: "one symbol",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				buy("2020-02-01", "STK1", 10, 150),
				sell("2020-03-01", "STK1", 15, 200),
			},
			want: []RealizedGain{
				{Sale: sell("2020-03-01", "STK1", 15, 200), CapitalGains: NO(1250)},
			},
		},
		{
			name: "multiple symbols",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				buy("2020-02-01", "STK2", 10, 150),
				sell("2020-03-01", "STK1", 5, 200),
				sell("2021-01-01", "STK2", 10, 200),
			},
			want: []RealizedGain{
				{Sale: sell("2020-03-01", "STK1", 5, 200), CapitalGains: NO(500)},
				{Sale: sell("2021-01-01", "STK2", 10, 200), CapitalGains: NO(500)},
			},
		},
		{
			name: "intercalated buys and sales",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				buy("2020-02-01", "STK2", 10, 150),
				sell("2020-03-01", "STK1", 5, 200),
				buy("2020-04-01", "STK1", 10, 250),
				sell("2021-01-01", "STK2", 10, 200),
				sell("2022-01-01", "STK1", 15, 300),
			},
			want: []RealizedGain{
				{Sale: sell("2020-03-01", "STK1", 5, 200), CapitalGains: NO(500)},
				{Sale: sell("2021-01-01", "STK2", 10, 200), CapitalGains: NO(500)},
				// 5 x (300-100) + 10 x (300-250)
				{Sale: sell("2022-01-01", "STK1", 15, 300), CapitalGains: NO(1500)},
			},
		},
		{
			name: "losses are negative",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				buy("2020-02-01", "STK1", 10, 150),
				sell("2020-03-01", "STK1", 15, 120),
			},
			want: []RealizedGain{
				// 10 x 20 + 5 x -30
				{Sale: sell("2020-03-01", "STK1", 15, 120), CapitalGains: NO(50)},
			},
		},
		{
			name: "exact decimals",
			history: []Transaction{
				buy("2020-01-01", "STK1", 0.1, 100.1),
				buy("2020-01-02", "STK1", 0.2, 100.2),
				sell("2020-01-03", "STK1", 0.3, 100.3),
			},
			want: []RealizedGain{
				// 0.1 x 0.2 + 0.2 x 0.1
				{Sale: sell("2020-01-03", "STK1", 0.3, 100.3), CapitalGains: NO(0.04)},
			},
		},
		{
			name: "purchase listed after the sale but dated before",
			history: []Transaction{
				sell("2020-03-01", "STK1", 5, 200),
				buy("2020-01-01", "STK1", 10, 100),
			},
			want: []RealizedGain{
				{Sale: sell("2020-03-01", "STK1", 5, 200), CapitalGains: NO(500)},
			},
		},
		{
			name: "no sales",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
			},
			want: []RealizedGain{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateFIFOCapitalGains(tc.history)
			if err != nil {
				t.Fatalf("CalculateFIFOCapitalGains() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CalculateFIFOCapitalGains() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateFIFOCapitalGains_FIFOOrdering(t *testing.T) {
	// B1 must be fully consumed before B2 is touched.
	history := []Transaction{
		buy("2020-01-01", "STK1", 10, 100),
		buy("2020-02-01", "STK1", 10, 150),
		sell("2020-03-01", "STK1", 15, 180),
		sell("2020-04-01", "STK1", 5, 180),
	}
	got, err := CalculateFIFOCapitalGains(history)
	if err != nil {
		t.Fatalf("CalculateFIFOCapitalGains() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CalculateFIFOCapitalGains() returned %d gains, want 2", len(got))
	}
	// 10 x 80 + 5 x 30
	if want := NO(950); !got[0].CapitalGains.Equal(want) {
		t.Errorf("first sale gain = %v, want %v", got[0].CapitalGains, want)
	}
	// the remaining 5 units of B2: 5 x 30
	if want := NO(150); !got[1].CapitalGains.Equal(want) {
		t.Errorf("second sale gain = %v, want %v", got[1].CapitalGains, want)
	}
}

func TestCalculateFIFOCapitalGains_SameDayPurchaseIsNotMatched(t *testing.T) {
	t.Run("only a same day purchase", func(t *testing.T) {
		history := []Transaction{
			buy("2020-03-01", "STK1", 10, 100),
			sell("2020-03-01", "STK1", 5, 200),
		}
		_, err := CalculateFIFOCapitalGains(history)
		if !errors.Is(err, ErrInsufficientBuyVolume) {
			t.Errorf("CalculateFIFOCapitalGains() error = %v, want %v", err, ErrInsufficientBuyVolume)
		}
	})

	t.Run("same day purchase is skipped for an older one", func(t *testing.T) {
		history := []Transaction{
			buy("2020-03-01", "STK1", 10, 190),
			buy("2020-01-01", "STK1", 10, 100),
			sell("2020-03-01", "STK1", 5, 200),
		}
		got, err := CalculateFIFOCapitalGains(history)
		if err != nil {
			t.Fatalf("CalculateFIFOCapitalGains() error = %v", err)
		}
		if want := NO(500); !got[0].CapitalGains.Equal(want) {
			t.Errorf("gain = %v, want %v", got[0].CapitalGains, want)
		}
	})
}

func TestCalculateFIFOCapitalGains_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		history []Transaction
	}{
		{
			name: "sales exceed buys",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				sell("2020-03-01", "STK1", 15, 200),
			},
		},
		{
			name: "sales but no buys",
			history: []Transaction{
				sell("2020-03-01", "STK1", 15, 200),
			},
		},
		{
			name: "buys of another symbol",
			history: []Transaction{
				buy("2020-01-01", "STK2", 100, 100),
				sell("2020-03-01", "STK1", 15, 200),
			},
		},
		{
			name: "cumulative sales exceed buys",
			history: []Transaction{
				buy("2020-01-01", "STK1", 10, 100),
				sell("2020-02-01", "STK1", 6, 200),
				sell("2020-03-01", "STK1", 6, 200),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateFIFOCapitalGains(tc.history)
			if !errors.Is(err, ErrInsufficientBuyVolume) {
				t.Fatalf("CalculateFIFOCapitalGains() error = %v, want %v", err, ErrInsufficientBuyVolume)
			}
			if !strings.Contains(err.Error(), "STK1") {
				t.Errorf("error %q should name the symbol", err)
			}
			if got != nil {
				t.Errorf("CalculateFIFOCapitalGains() = %v, want nil on error", got)
			}
		})
	}
}

func TestCalculateFIFOCapitalGains_DoesNotModifyHistory(t *testing.T) {
	history := []Transaction{
		buy("2020-01-01", "STK1", 10, 100),
		buy("2020-02-01", "STK1", 10, 150),
		sell("2020-03-01", "STK1", 15, 200),
	}
	original := clone(history)

	gains, err := CalculateFIFOCapitalGains(history)
	if err != nil {
		t.Fatalf("CalculateFIFOCapitalGains() error = %v", err)
	}
	if diff := cmp.Diff(original, history); diff != "" {
		t.Errorf("history was modified (-want +got):\n%s", diff)
	}
	// the sale keeps the amount requested
	if want := Q(15); !gains[0].Sale.Amount.Equal(want) {
		t.Errorf("Sale.Amount = %v, want %v", gains[0].Sale.Amount, want)
	}
}
