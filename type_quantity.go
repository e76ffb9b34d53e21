package waterfall

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is a number of shares or options.
type Quantity struct {
	value decimal.Decimal
}

// Q creates a Quantity.
func Q[T number](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) String() string              { return q.value.String() }

// Grouped formats whole quantities with thousands separators, e.g. "10,000".
func (q Quantity) Grouped() string {
	if !q.value.IsInteger() {
		return q.value.String()
	}
	return quantityFormatter.Format(q.value.IntPart())
}

var quantityFormatter = money.NewFormatter(0, ".", ",", "", "1")

// Of returns the fraction q/total.
func (q Quantity) Of(total Quantity) Ratio { return Ratio{value: q.value.Div(total.value)} }

// Scale returns the quantity divided by r, e.g. the share count after
// dilution grows the total so that existing holders keep r of it.
func (q Quantity) Scale(r Ratio) Quantity { return Quantity{value: q.value.Div(r.value)} }

func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	return q.value.UnmarshalJSON(data)
}
