package waterfall

import (
	"context"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"
)

// DefaultSteps is the number of intervals of DefaultRange.
const DefaultSteps = 100

// ValuationRange is an evenly spaced set of exit valuations, bounds included.
type ValuationRange struct {
	From, To Money
	Steps    int // Steps is the number of intervals between From and To.
}

// DefaultRange returns a range wide enough to show both the hurdle and the
// break-even: from zero to the largest of ten times the capital raised and
// twice the nominal break-even.
func DefaultRange(cs CapitalStructure) (ValuationRange, error) {
	if err := cs.Validate(); err != nil {
		return ValuationRange{}, err
	}
	cur := cs.Currency()
	to := cs.PreferredInvestment.In(cur).Mul(R(10)).Max(NominalBreakEven(cs).Mul(R(2)))
	return ValuationRange{From: M(0, cur), To: to, Steps: DefaultSteps}, nil
}

// Validate checks the range bounds.
func (r ValuationRange) Validate() error {
	if r.From.IsNegative() {
		return fmt.Errorf("%w: range starts at negative valuation %v", ErrInvalidInput, r.From)
	}
	if !sameCurrency(r.From, r.To) {
		return fmt.Errorf("%w: range from %q to %q", ErrCurrencyMismatch, r.From.Currency(), r.To.Currency())
	}
	if r.To.LessThan(r.From) {
		return fmt.Errorf("%w: range ends at %v before it starts at %v", ErrInvalidInput, r.To, r.From)
	}
	return nil
}

// Valuations returns an iterator over the valuations of the range. With
// zero or negative Steps it yields From only.
func (r ValuationRange) Valuations() iter.Seq[Money] {
	return func(yield func(Money) bool) {
		if r.Steps <= 0 {
			yield(r.From)
			return
		}
		step := r.To.Sub(r.From).DivQ(Q(r.Steps))
		for i := 0; i < r.Steps; i++ {
			if !yield(r.From.Add(step.MulQ(Q(i)))) {
				return
			}
		}
		yield(r.To.In(r.From.Currency()))
	}
}

// Sweep returns an iterator computing the distribution at each valuation, in
// order. The capital structure is validated once, when iteration starts; an
// invalid structure yields a single error. An invalid valuation yields an
// error for that point only.
//
// Nothing is computed until iterated, and the sequence can be iterated again
// as long as 'valuations' can.
func Sweep(cs CapitalStructure, valuations iter.Seq[Money]) iter.Seq2[Distribution, error] {
	return func(yield func(Distribution, error) bool) {
		if err := cs.Validate(); err != nil {
			yield(Distribution{}, err)
			return
		}
		for v := range valuations {
			if err := validateExit(cs, v); err != nil {
				if !yield(Distribution{}, err) {
					return
				}
				continue
			}
			if !yield(distribute(cs, v), nil) {
				return
			}
		}
	}
}

// SweepParallel computes the distribution at each valuation using up to
// 'workers' goroutines (unlimited when workers <= 0). Results are in the
// order of 'valuations'. All inputs are validated before any work starts.
func SweepParallel(ctx context.Context, cs CapitalStructure, valuations []Money, workers int) ([]Distribution, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	for i, v := range valuations {
		if err := validateExit(cs, v); err != nil {
			return nil, fmt.Errorf("valuation #%d: %w", i, err)
		}
	}

	out := make([]Distribution, len(valuations))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, v := range valuations {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = distribute(cs, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped early without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
