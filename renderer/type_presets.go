package renderer

import "github.com/etnz/waterfall"

// Presets lists the available liquidation presets.
type Presets struct {
	Scenarios []PresetScenario `json:"scenarios"`
}

// PresetScenario is a market scenario and its rounds.
type PresetScenario struct {
	Name   string        `json:"name"`
	Rounds []PresetRound `json:"rounds"`
}

// PresetRound is the terms of one round.
type PresetRound struct {
	Name                string          `json:"name"`
	LiquidationMultiple waterfall.Ratio `json:"liquidationMultiple"`
	Participating       bool            `json:"participating,omitempty"`
	// PreferredOwnership is "-" when the preset leaves it unset.
	PreferredOwnership string `json:"preferredOwnership"`
}

// NewPresets creates the list of presets, sorted by scenario and round.
func NewPresets(p *waterfall.Presets) (*Presets, error) {
	res := &Presets{}
	for _, scenario := range p.Scenarios() {
		s := PresetScenario{Name: scenario}
		for _, round := range p.Rounds(scenario) {
			terms, err := p.Lookup(scenario, round)
			if err != nil {
				return nil, err
			}
			r := PresetRound{
				Name:                round,
				LiquidationMultiple: terms.LiquidationMultiple,
				Participating:       terms.Participating,
				PreferredOwnership:  "-",
			}
			if terms.PreferredOwnership != nil {
				r.PreferredOwnership = terms.PreferredOwnership.Percent(0)
			}
			s.Rounds = append(s.Rounds, r)
		}
		res.Scenarios = append(res.Scenarios, s)
	}
	return res, nil
}
