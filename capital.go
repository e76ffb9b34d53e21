package waterfall

import (
	"errors"
	"fmt"
	"log"
)

// OwnershipTolerance is the maximum deviation from 1 accepted for the sum of
// the preferred and common ownership fractions.
var OwnershipTolerance = R(0.000001)

// MaxDilution is the largest accepted dilution factor.
var MaxDilution = R(0.8)

// CapitalStructure describes a single-tranche cap table: an aggregate
// preferred class and the common pool that includes the option holder.
//
// It is a value: operations never modify it.
type CapitalStructure struct {
	PreferredInvestment Money    // PreferredInvestment is the capital raised by preferred investors.
	LiquidationMultiple Ratio    // LiquidationMultiple applies to PreferredInvestment to get the hurdle.
	Participating       bool     // Participating preferred also shares the proceeds above the hurdle.
	PreferredOwnership  Ratio    // PreferredOwnership is the fully diluted fraction held by preferred.
	CommonOwnership     Ratio    // CommonOwnership is the fully diluted fraction held by common and options.
	Dilution            Ratio    // Dilution reduces the holder's stake to simulate future rounds.
	OptionGrant         Quantity // OptionGrant is the number of options held.
	FullyDilutedShares  Quantity // FullyDilutedShares is the company share count today.
	StrikePrice         Money    // StrikePrice is the per share exercise cost.
}

// Hurdle returns the liquidation preference owed before common gets anything.
func (cs CapitalStructure) Hurdle() Money {
	return cs.PreferredInvestment.Mul(cs.LiquidationMultiple)
}

// ExerciseCost returns the cost to exercise the whole grant.
func (cs CapitalStructure) ExerciseCost() Money {
	return cs.StrikePrice.MulQ(cs.OptionGrant)
}

// EffectiveOwnership returns the holder's fraction of the common pool once
// dilution is applied.
func (cs CapitalStructure) EffectiveOwnership() Ratio {
	return cs.OptionGrant.Of(cs.FullyDilutedShares).Mul(cs.Dilution.Complement())
}

// DilutedShares returns the share count at exit, after dilution.
func (cs CapitalStructure) DilutedShares() Quantity {
	return cs.FullyDilutedShares.Scale(cs.Dilution.Complement())
}

// Currency returns the currency of the structure's monetary fields.
func (cs CapitalStructure) Currency() string {
	if c := cs.PreferredInvestment.Currency(); c != "" {
		return c
	}
	return cs.StrikePrice.Currency()
}

// Validate checks every constraint on the structure and returns all the
// failures joined together, or nil.
func (cs CapitalStructure) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...))
	}
	zero, unit := R(0), R(1)

	if cs.PreferredInvestment.IsNegative() {
		invalid("preferred investment %v is negative", cs.PreferredInvestment)
	}
	if cs.LiquidationMultiple.IsNegative() {
		invalid("liquidation multiple %v is negative", cs.LiquidationMultiple)
	}
	if !cs.PreferredOwnership.Between(zero, unit) {
		invalid("preferred ownership %v is outside [0,1]", cs.PreferredOwnership)
	}
	if !cs.CommonOwnership.Between(zero, unit) {
		invalid("common ownership %v is outside [0,1]", cs.CommonOwnership)
	}
	if !cs.Dilution.Between(zero, MaxDilution) {
		invalid("dilution %v is outside [0,%v]", cs.Dilution, MaxDilution)
	}
	if cs.OptionGrant.IsNegative() {
		invalid("option grant %v is negative", cs.OptionGrant)
	}
	if !cs.FullyDilutedShares.IsPositive() {
		invalid("fully diluted shares %v must be positive", cs.FullyDilutedShares)
	} else if cs.OptionGrant.GreaterThan(cs.FullyDilutedShares) {
		invalid("option grant %v exceeds fully diluted shares %v", cs.OptionGrant, cs.FullyDilutedShares)
	}
	if cs.StrikePrice.IsNegative() {
		invalid("strike price %v is negative", cs.StrikePrice)
	}
	if !sameCurrency(cs.PreferredInvestment, cs.StrikePrice) {
		errs = append(errs, fmt.Errorf("%w: preferred investment in %q, strike price in %q", ErrCurrencyMismatch, cs.PreferredInvestment.Currency(), cs.StrikePrice.Currency()))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if dev := cs.ownershipDeviation(); dev.GreaterThan(OwnershipTolerance) {
		return fmt.Errorf("%w: preferred %v + common %v = %v", ErrInconsistentOwnership,
			cs.PreferredOwnership, cs.CommonOwnership, cs.PreferredOwnership.Add(cs.CommonOwnership))
	}
	return nil
}

func (cs CapitalStructure) ownershipDeviation() Ratio {
	d := cs.PreferredOwnership.Add(cs.CommonOwnership).Sub(R(1))
	if d.IsNegative() {
		return R(0).Sub(d)
	}
	return d
}

// Normalize returns a copy with ownership fractions rescaled to sum to 1.
// A warning is logged when rescaling was needed. If both fractions are zero,
// common is assumed to own everything.
//
// Only the sum is fixed: a fraction outside [0,1] is left as is, for Validate
// to report.
func (cs CapitalStructure) Normalize() CapitalStructure {
	if !cs.ownershipDeviation().GreaterThan(OwnershipTolerance) {
		return cs
	}
	zero, unit := R(0), R(1)
	if !cs.PreferredOwnership.Between(zero, unit) || !cs.CommonOwnership.Between(zero, unit) {
		return cs
	}
	total := cs.PreferredOwnership.Add(cs.CommonOwnership)
	if cs.PreferredOwnership.IsZero() && cs.CommonOwnership.IsZero() {
		log.Printf("warning: ownership fractions are both zero, assuming common owns 100%%")
		cs.PreferredOwnership, cs.CommonOwnership = R(0), R(1)
		return cs
	}
	log.Printf("warning: ownership fractions sum to %v, rescaling preferred %v and common %v", total, cs.PreferredOwnership, cs.CommonOwnership)
	cs.PreferredOwnership = cs.PreferredOwnership.Div(total)
	cs.CommonOwnership = cs.PreferredOwnership.Complement()
	return cs
}

// DefaultCapitalStructure returns the starting point of a simulation: a
// 10,000 options offer at a 0.50 strike in a 10M shares company that raised
// 20M at 1x non-participating, with 20% future dilution.
func DefaultCapitalStructure() CapitalStructure {
	return CapitalStructure{
		PreferredInvestment: M(20_000_000, "USD"),
		LiquidationMultiple: R(1),
		Participating:       false,
		PreferredOwnership:  R(0.25),
		CommonOwnership:     R(0.75),
		Dilution:            Percent(20),
		OptionGrant:         Q(10_000),
		FullyDilutedShares:  Q(10_000_000),
		StrikePrice:         M(0.5, "USD"),
	}
}
