package waterfall

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ratio is a dimensionless decimal: a liquidation multiple, an ownership
// fraction or a dilution factor.
type Ratio struct {
	value decimal.Decimal
}

// R creates a Ratio.
func R[T number](value T) Ratio {
	return Ratio{value: newDecimal(value)}
}

// Percent creates a Ratio from a percentage, e.g. Percent(20) is 0.2.
func Percent[T number](value T) Ratio {
	return Ratio{value: newDecimal(value).Shift(-2)}
}

func (r Ratio) Decimal() decimal.Decimal     { return r.value }
func (r Ratio) Equal(s Ratio) bool           { return r.value.Equal(s.value) }
func (r Ratio) LessThan(s Ratio) bool        { return r.value.LessThan(s.value) }
func (r Ratio) GreaterThan(s Ratio) bool     { return r.value.GreaterThan(s.value) }
func (r Ratio) IsNegative() bool             { return r.value.IsNegative() }
func (r Ratio) IsZero() bool                 { return r.value.IsZero() }
func (r Ratio) Add(s Ratio) Ratio            { return Ratio{value: r.value.Add(s.value)} }
func (r Ratio) Sub(s Ratio) Ratio            { return Ratio{value: r.value.Sub(s.value)} }
func (r Ratio) Mul(s Ratio) Ratio            { return Ratio{value: r.value.Mul(s.value)} }
func (r Ratio) Div(s Ratio) Ratio            { return Ratio{value: r.value.Div(s.value)} }
func (r Ratio) Complement() Ratio            { return Ratio{value: one.Sub(r.value)} }
func (r Ratio) AsFloat() float64             { return r.value.InexactFloat64() }
func (r Ratio) Between(lo, hi Ratio) bool    { return !r.LessThan(lo) && !r.GreaterThan(hi) }
func (r Ratio) String() string               { return r.value.String() }
func (r Ratio) MarshalJSON() ([]byte, error) { return r.value.MarshalJSON() }

func (r *Ratio) UnmarshalJSON(data []byte) error { return r.value.UnmarshalJSON(data) }

// Multiple formats r as a liquidation multiple, e.g. "1.5x".
func (r Ratio) Multiple() string {
	return r.value.String() + "x"
}

// Percent formats r as a percentage with the given number of decimals.
func (r Ratio) Percent(decimals int32) string {
	return fmt.Sprintf("%s%%", r.value.Shift(2).StringFixed(decimals))
}
