package waterfall

import "fmt"

// MaxBisections bounds the number of bisection steps of FindBreakEven, so
// that it terminates even when the tolerance is below what the arithmetic
// can resolve.
const MaxBisections = 100

// BreakEven is the result of a break-even search.
//
// When Found is false no exit within the searched range makes the option
// holder whole, and Valuation is the upper bound that was searched.
type BreakEven struct {
	Valuation  Money
	Found      bool
	Iterations int
}

// FindBreakEven returns the smallest exit valuation in [0, upper] where the
// option holder's net profit reaches zero, within 'tolerance'.
//
// The net profit is a non decreasing, piecewise linear function of the exit:
// flat at minus the exercise cost up to the hurdle, then increasing. The
// hurdle is probed directly so that the search starts on the right piece.
func FindBreakEven(cs CapitalStructure, upper, tolerance Money) (BreakEven, error) {
	if err := cs.Validate(); err != nil {
		return BreakEven{}, err
	}
	if err := validateExit(cs, upper); err != nil {
		return BreakEven{}, fmt.Errorf("search bound: %w", err)
	}
	if !tolerance.IsPositive() {
		return BreakEven{}, fmt.Errorf("%w: tolerance %v must be positive", ErrInvalidInput, tolerance)
	}
	if !sameCurrency(tolerance, upper) || !sameCurrency(tolerance, M(0, cs.Currency())) {
		return BreakEven{}, fmt.Errorf("%w: tolerance in %q, capital structure in %q", ErrCurrencyMismatch, tolerance.Currency(), cs.Currency())
	}

	cur := cs.Currency()
	lo, hi := M(0, cur), upper.In(cur)

	if !net(cs, lo).IsNegative() {
		// in the money with zero proceeds: nothing to pay to exercise.
		return BreakEven{Valuation: lo, Found: true}, nil
	}
	if net(cs, hi).IsNegative() {
		return BreakEven{Valuation: hi}, nil
	}

	if h := cs.Hurdle().In(cur); h.GreaterThan(lo) && h.LessThan(hi) {
		switch n := net(cs, h); {
		case n.IsZero():
			return BreakEven{Valuation: h, Found: true}, nil
		case n.IsNegative():
			lo = h
		default:
			hi = h
		}
	}

	i := 0
	for ; i < MaxBisections && hi.Sub(lo).GreaterThanOrEqual(tolerance); i++ {
		mid := lo.Add(hi).Half()
		if net(cs, mid).IsNegative() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return BreakEven{Valuation: lo.Add(hi).Half(), Found: true, Iterations: i}, nil
}

// NominalBreakEven is the quick estimate of the break-even exit: the hurdle
// plus the strike price paid on every diluted share.
//
// It is exact when preferred is non-participating and does not convert at
// that exit; otherwise it underestimates the break-even. The structure must be
// valid: a dilution of 1 leaves no diluted share to divide by.
func NominalBreakEven(cs CapitalStructure) Money {
	cur := cs.Currency()
	return cs.Hurdle().In(cur).Add(cs.StrikePrice.In(cur).MulQ(cs.DilutedShares()))
}
