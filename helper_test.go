package waterfall

import "github.com/google/go-cmp/cmp"

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// decimalComparer lets cmp compare the package value types by value.
var decimalComparer = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Ratio) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
}

// seriesA is a 10M raise at 1x for 30% of the company, with a 10,000 options
// grant out of 10M shares at a 0.50 strike and 20% future dilution.
func seriesA(participating bool) CapitalStructure {
	return CapitalStructure{
		PreferredInvestment: USD(10_000_000),
		LiquidationMultiple: R(1),
		Participating:       participating,
		PreferredOwnership:  R(0.3),
		CommonOwnership:     R(0.7),
		Dilution:            Percent(20),
		OptionGrant:         Q(10_000),
		FullyDilutedShares:  Q(10_000_000),
		StrikePrice:         USD(0.5),
	}
}

// within reports whether a and b differ by at most tol.
func within(a, b, tol Money) bool {
	d := a.Sub(b)
	if d.IsNegative() {
		d = d.Neg()
	}
	return d.LessThanOrEqual(tol)
}
