package waterfall

import "fmt"

// Zone classifies an exit from the option holder's point of view.
type Zone int

const (
	// ZoneOfZero is an exit at or below the hurdle: common gets nothing.
	ZoneOfZero Zone = iota
	// Underwater is an exit above the hurdle where the holder's share does not
	// cover the exercise cost.
	Underwater
	// InTheMoney is an exit where the holder's net profit is non negative.
	InTheMoney
)

func (z Zone) String() string {
	switch z {
	case ZoneOfZero:
		return "zone of zero"
	case Underwater:
		return "underwater"
	case InTheMoney:
		return "in the money"
	default:
		return fmt.Sprintf("Zone(%d)", int(z))
	}
}

// Distribution is the split of one exit's proceeds across the capital stack,
// and what it means for the option holder.
type Distribution struct {
	Exit               Money // Exit is the total proceeds of the sale.
	Hurdle             Money // Hurdle is the liquidation preference owed to preferred.
	Preferred          Money // Preferred is the amount paid to preferred holders.
	CommonPool         Money // CommonPool is what is left for common and option holders.
	Converted          bool  // Converted is true when non-participating preferred converted to common.
	EffectiveOwnership Ratio // EffectiveOwnership is the holder's diluted fraction of the common pool.
	Gross              Money // Gross is the holder's share of the common pool.
	ExerciseCost       Money // ExerciseCost is the cost to exercise the grant.
	Net                Money // Net is Gross minus ExerciseCost, possibly negative.
}

// Zone returns the zone this exit falls in.
func (d Distribution) Zone() Zone {
	switch {
	case d.Exit.LessThanOrEqual(d.Hurdle):
		return ZoneOfZero
	case d.Net.IsNegative():
		return Underwater
	default:
		return InTheMoney
	}
}

// MarshalJSON implements the json.Marshaler interface for Distribution.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("exit", d.Exit)
	w.Append("hurdle", d.Hurdle)
	w.Append("preferred", d.Preferred)
	w.Append("commonPool", d.CommonPool)
	w.Optional("converted", d.Converted)
	w.Append("effectiveOwnership", d.EffectiveOwnership)
	w.Append("gross", d.Gross)
	w.Append("exerciseCost", d.ExerciseCost)
	w.Append("net", d.Net)
	w.Append("zone", d.Zone().String())
	return w.MarshalJSON()
}

// Distribute runs the liquidation waterfall for an exit of 'exit' proceeds.
//
// Preferred is paid first, up to the hurdle. Above the hurdle, participating
// preferred also takes its pro rata share of the remainder, while
// non-participating preferred takes the greater of the hurdle and converting
// to common (converting on a tie). Common gets exactly what is left.
func Distribute(cs CapitalStructure, exit Money) (Distribution, error) {
	if err := cs.Validate(); err != nil {
		return Distribution{}, err
	}
	if err := validateExit(cs, exit); err != nil {
		return Distribution{}, err
	}
	return distribute(cs, exit), nil
}

func validateExit(cs CapitalStructure, exit Money) error {
	if exit.IsNegative() {
		return fmt.Errorf("%w: exit valuation %v is negative", ErrInvalidInput, exit)
	}
	if !sameCurrency(exit, cs.PreferredInvestment) || !sameCurrency(exit, cs.StrikePrice) {
		return fmt.Errorf("%w: exit valuation in %q, capital structure in %q", ErrCurrencyMismatch, exit.Currency(), cs.Currency())
	}
	return nil
}

// distribute is Distribute on already validated inputs.
func distribute(cs CapitalStructure, exit Money) Distribution {
	exit = exit.In(cs.Currency())
	d := Distribution{
		Exit:               exit,
		Hurdle:             cs.Hurdle().In(cs.Currency()),
		EffectiveOwnership: cs.EffectiveOwnership(),
		ExerciseCost:       cs.ExerciseCost().In(cs.Currency()),
	}

	switch {
	case exit.LessThanOrEqual(d.Hurdle):
		d.Preferred = exit.Min(d.Hurdle)
	case cs.Participating:
		d.Preferred = d.Hurdle.Add(exit.Sub(d.Hurdle).Mul(cs.PreferredOwnership))
	default:
		conversion := exit.Mul(cs.PreferredOwnership)
		if conversion.GreaterThanOrEqual(d.Hurdle) {
			d.Preferred, d.Converted = conversion, true
		} else {
			d.Preferred = d.Hurdle
		}
	}

	d.CommonPool = exit.Sub(d.Preferred)
	d.Gross = d.CommonPool.Mul(d.EffectiveOwnership)
	d.Net = d.Gross.Sub(d.ExerciseCost)
	return d
}

// net returns only the holder's net profit for an exit. It is the function
// FindBreakEven searches the root of.
func net(cs CapitalStructure, exit Money) Money {
	return distribute(cs, exit).Net
}
