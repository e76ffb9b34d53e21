package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/waterfall"
	"github.com/shopspring/decimal"
)

// decimalFlag is a flag.Value for exact decimal numbers. Underscores and
// commas can be used to group digits, e.g. 20_000_000.
type decimalFlag struct {
	value decimal.Decimal
}

func (d *decimalFlag) String() string { return d.value.String() }

func (d *decimalFlag) Set(s string) error {
	s = strings.NewReplacer("_", "", ",", "").Replace(s)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	d.value = v
	return nil
}

// money returns the flag value in the configured currency.
func (d *decimalFlag) money() waterfall.Money { return waterfall.M(d.value, *currency) }

// isSet reports whether the flag 'name' has been set on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	found := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// structureFlags are the flags shared by commands that simulate a capital
// structure.
//
// The structure is built in layers: the defaults, then the preset terms, then
// only the flags explicitly set on the command line.
type structureFlags struct {
	scenario string
	round    string

	raised        decimalFlag
	multiple      decimalFlag
	participating bool
	preferred     decimalFlag
	common        decimalFlag
	dilution      decimalFlag
	options       decimalFlag
	shares        decimalFlag
	strike        decimalFlag

	normalize bool
}

func (s *structureFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.scenario, "scenario", "", "Market scenario of the preset to start from, e.g. \"Distressed\". Requires -round.")
	f.StringVar(&s.round, "round", "", "Latest funding round of the preset, e.g. \"Series B\". Requires -scenario.")

	f.Var(&s.raised, "raised", "Total capital raised by preferred investors.")
	f.Var(&s.multiple, "multiple", "Liquidation preference multiple, e.g. 1.5.")
	f.BoolVar(&s.participating, "participating", false, "Preferred participates in the proceeds above the hurdle.")
	f.Var(&s.preferred, "preferred", "Fully diluted fraction owned by preferred, e.g. 0.25. Sets common to the rest unless -common is given.")
	f.Var(&s.common, "common", "Fully diluted fraction owned by common and options, e.g. 0.75.")
	f.Var(&s.dilution, "dilution", "Expected future dilution, as a fraction between 0 and 0.8.")
	f.Var(&s.options, "options", "Number of options granted.")
	f.Var(&s.shares, "shares", "Fully diluted share count of the company today.")
	f.Var(&s.strike, "strike", "Strike price per share.")

	f.BoolVar(&s.normalize, "normalize", false, "Rescale ownership fractions that do not add up to 1 instead of failing.")
}

// overrides returns the overrides of the flags explicitly set on 'f'.
func (s *structureFlags) overrides(f *flag.FlagSet) waterfall.Overrides {
	var o waterfall.Overrides
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "raised":
			m := s.raised.money()
			o.PreferredInvestment = &m
		case "multiple":
			r := waterfall.R(s.multiple.value)
			o.LiquidationMultiple = &r
		case "participating":
			o.Participating = &s.participating
		case "preferred":
			r := waterfall.R(s.preferred.value)
			o.PreferredOwnership = &r
		case "common":
			r := waterfall.R(s.common.value)
			o.CommonOwnership = &r
		case "dilution":
			r := waterfall.R(s.dilution.value)
			o.Dilution = &r
		case "options":
			q := waterfall.Q(s.options.value)
			o.OptionGrant = &q
		case "shares":
			q := waterfall.Q(s.shares.value)
			o.FullyDilutedShares = &q
		case "strike":
			m := s.strike.money()
			o.StrikePrice = &m
		}
	})
	return o
}

// preset returns the name of the selected preset, empty if none.
func (s *structureFlags) preset() string {
	if s.scenario == "" && s.round == "" {
		return ""
	}
	return s.scenario + " / " + s.round
}

// structure builds and validates the capital structure described by the flags set on 'f'.
func (s *structureFlags) structure(f *flag.FlagSet) (waterfall.CapitalStructure, error) {
	cs := waterfall.DefaultCapitalStructure()
	cs.PreferredInvestment = waterfall.M(cs.PreferredInvestment.Decimal(), *currency)
	cs.StrikePrice = waterfall.M(cs.StrikePrice.Decimal(), *currency)

	if s.preset() != "" {
		if s.scenario == "" || s.round == "" {
			return cs, fmt.Errorf("%w: -scenario and -round must be used together", waterfall.ErrInvalidInput)
		}
		presets, err := LoadPresets()
		if err != nil {
			return cs, fmt.Errorf("cannot load presets: %w", err)
		}
		terms, err := presets.Lookup(s.scenario, s.round)
		if err != nil {
			return cs, err
		}
		cs = terms.Apply(cs)
	}

	cs = s.overrides(f).Apply(cs)
	if s.normalize {
		cs = cs.Normalize()
	}
	return cs, cs.Validate()
}
