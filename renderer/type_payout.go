package renderer

import "github.com/etnz/waterfall"

// Structure is the capital structure as shown in reports.
// Numbers keep their exact types, that already know how to print themselves.
type Structure struct {
	PreferredInvestment waterfall.Money    `json:"preferredInvestment"`
	LiquidationMultiple waterfall.Ratio    `json:"liquidationMultiple"`
	Participating       bool               `json:"participating,omitempty"`
	PreferredOwnership  waterfall.Ratio    `json:"preferredOwnership"`
	Dilution            waterfall.Ratio    `json:"dilution"`
	OptionGrant         waterfall.Quantity `json:"optionGrant"`
	FullyDilutedShares  waterfall.Quantity `json:"fullyDilutedShares"`
	StrikePrice         waterfall.Money    `json:"strikePrice"`
}

// NewStructure creates the report view of a capital structure.
func NewStructure(cs waterfall.CapitalStructure) Structure {
	return Structure{
		PreferredInvestment: cs.PreferredInvestment,
		LiquidationMultiple: cs.LiquidationMultiple,
		Participating:       cs.Participating,
		PreferredOwnership:  cs.PreferredOwnership,
		Dilution:            cs.Dilution,
		OptionGrant:         cs.OptionGrant,
		FullyDilutedShares:  cs.FullyDilutedShares,
		StrikePrice:         cs.StrikePrice,
	}
}

// Payout is the report of a single exit.
type Payout struct {
	// Preset names the scenario and round the terms come from, if any.
	Preset    string    `json:"preset,omitempty"`
	Structure Structure `json:"structure"`

	Exit               waterfall.Money `json:"exit"`
	Hurdle             waterfall.Money `json:"hurdle"`
	Preferred          waterfall.Money `json:"preferred"`
	CommonPool         waterfall.Money `json:"commonPool"`
	Converted          bool            `json:"converted,omitempty"`
	EffectiveOwnership waterfall.Ratio `json:"effectiveOwnership"`
	Gross              waterfall.Money `json:"gross"`
	ExerciseCost       waterfall.Money `json:"exerciseCost"`
	Net                waterfall.Money `json:"net"`
	// Zone is one of "zone of zero", "underwater" or "in the money".
	Zone string `json:"zone"`
}

// NewPayout creates the report of distribution 'd' computed on 'cs'.
func NewPayout(preset string, cs waterfall.CapitalStructure, d waterfall.Distribution) *Payout {
	return &Payout{
		Preset:             preset,
		Structure:          NewStructure(cs),
		Exit:               d.Exit,
		Hurdle:             d.Hurdle,
		Preferred:          d.Preferred,
		CommonPool:         d.CommonPool,
		Converted:          d.Converted,
		EffectiveOwnership: d.EffectiveOwnership,
		Gross:              d.Gross,
		ExerciseCost:       d.ExerciseCost,
		Net:                d.Net,
		Zone:               d.Zone().String(),
	}
}
