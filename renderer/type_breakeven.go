package renderer

import "github.com/etnz/waterfall"

// BreakEven is the report of a break-even search.
type BreakEven struct {
	Preset    string    `json:"preset,omitempty"`
	Structure Structure `json:"structure"`

	Found bool `json:"found,omitempty"`
	// Valuation is the break-even, or the searched upper bound when not found.
	Valuation    waterfall.Money `json:"valuation"`
	Hurdle       waterfall.Money `json:"hurdle"`
	ExerciseCost waterfall.Money `json:"exerciseCost"`
	Nominal      waterfall.Money `json:"nominal"`
}

// NewBreakEven creates the report of a break-even search on 'cs'.
func NewBreakEven(preset string, cs waterfall.CapitalStructure, be waterfall.BreakEven) *BreakEven {
	cur := cs.Currency()
	return &BreakEven{
		Preset:       preset,
		Structure:    NewStructure(cs),
		Found:        be.Found,
		Valuation:    be.Valuation,
		Hurdle:       cs.Hurdle().In(cur),
		ExerciseCost: cs.ExerciseCost().In(cur),
		Nominal:      waterfall.NominalBreakEven(cs),
	}
}
