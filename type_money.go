package waterfall

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount.
//
// The amount is kept as an exact decimal in major units (dollars, euros), so
// that sums of payouts add up exactly to the exit proceeds.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M creates a Money from a numeric value and an ISO currency code.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency definition.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted with its currency, rounded to the
// currency's minor unit.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation with an explicit sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(r Ratio) Money               { return Money{value: m.value.Mul(r.value), cur: m.cur} }
func (m Money) MulQ(q Quantity) Money           { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Half() Money                     { return Money{value: m.value.Div(two), cur: m.cur} }

// DivQ divides the amount by a share count, giving a per-share price.
func (m Money) DivQ(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Min returns the smaller of m and n.
func (m Money) Min(n Money) Money {
	if n.LessThan(m) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// Max returns the larger of m and n.
func (m Money) Max(n Money) Money {
	if n.GreaterThan(m) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// In returns the same amount in currency c if m has no currency yet.
func (m Money) In(c string) Money {
	if m.cur == "" {
		m.cur = c
	}
	return m
}

// AsFloat returns the amount as a float, for charting only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		// Validate rejects mixed currencies before any arithmetic happens.
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// sameCurrency reports whether a and b can be combined.
func sameCurrency(a, b Money) bool { return a.cur == "" || b.cur == "" || a.cur == b.cur }

// MarshalJSON writes the amount rounded to the currency minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}

// UnmarshalJSON accepts either a bare number or a {"currency","amount"} object.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err == nil {
		*m = Money{value: d}
		return nil
	}
	var jm struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	}
	if err := json.Unmarshal(data, &jm); err != nil {
		return fmt.Errorf("invalid money %s: %w", data, err)
	}
	*m = Money{value: jm.Amount, cur: jm.Currency}
	return nil
}

var _ json.Marshaler = Money{}
var _ json.Unmarshaler = (*Money)(nil)
