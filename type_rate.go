package capgains

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is an exact fraction, like a tax rate: 0.26 is 26%.
type Rate struct {
	value decimal.Decimal
}

// R returns the Rate for the fraction value.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate parses a fraction ("0.26") or a percentage ("26%").
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	v, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if percent {
		v = v.Shift(-2)
	}
	return Rate{value: v}, nil
}

// Complement returns 1 - r.
func (r Rate) Complement() Rate { return Rate{value: decimal.NewFromInt(1).Sub(r.value)} }

// IsFraction reports whether r lies in [0,1].
func (r Rate) IsFraction() bool {
	return !r.value.IsNegative() && r.value.LessThanOrEqual(decimal.NewFromInt(1))
}

func (r Rate) Equal(s Rate) bool { return r.value.Equal(s.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }

// String formats the rate as a percentage.
func (r Rate) String() string { return r.value.Shift(2).String() + "%" }

func (r Rate) MarshalJSON() ([]byte, error) {
	return r.value.MarshalJSON()
}

func (r *Rate) UnmarshalJSON(decimalBytes []byte) error {
	return r.value.UnmarshalJSON(decimalBytes)
}
