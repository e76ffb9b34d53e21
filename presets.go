package waterfall

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"
)

//go:embed presets.json
var defaultPresets []byte

// Preset file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Presets are named liquidation terms, indexed by market scenario (e.g.
// "Market Standard", "Distressed") and then by latest round (e.g. "Series A").
//
// The file is a nested object:
//
//	{"Distressed": {"Series B": {"liquidation_multiple": 2, "participation": true, "preferred_ownership": 0.45}}}
type Presets struct {
	data map[string]any
}

// Terms are the liquidation terms of a preset.
type Terms struct {
	LiquidationMultiple Ratio
	Participating       bool
	PreferredOwnership  *Ratio // nil when the preset does not set it.
}

// Apply returns a copy of cs with the terms applied. When the terms set the
// preferred ownership, common ownership becomes its complement.
func (t Terms) Apply(cs CapitalStructure) CapitalStructure {
	cs.LiquidationMultiple = t.LiquidationMultiple
	cs.Participating = t.Participating
	if t.PreferredOwnership != nil {
		cs.PreferredOwnership = *t.PreferredOwnership
		cs.CommonOwnership = t.PreferredOwnership.Complement()
	}
	return cs
}

// DefaultPresets returns the presets built in the binary.
func DefaultPresets() *Presets {
	p, err := DecodePresets(bytes.NewReader(defaultPresets), FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded presets: %v", err))
	}
	return p
}

// LoadPresets reads a preset file. Files ending in .yaml or .yml are read as
// YAML, anything else as JSON.
func LoadPresets(path string) (*Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open presets %q: %w", path, err)
	}
	defer f.Close()

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	p, err := DecodePresets(f, format)
	if err != nil {
		return nil, fmt.Errorf("format error in %q: %w", path, err)
	}
	return p, nil
}

// DecodePresets reads presets in the given format (FormatJSON or FormatYAML).
func DecodePresets(r io.Reader, format string) (*Presets, error) {
	var data map[string]any
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("invalid json presets: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&data); err != nil {
			return nil, fmt.Errorf("invalid yaml presets: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported presets format %q", format)
	}

	p := &Presets{data: data}
	// check every entry now, rather than on lookup.
	for _, s := range p.Scenarios() {
		if _, ok := data[s].(map[string]any); !ok {
			return nil, fmt.Errorf("scenario %q is not an object", s)
		}
		for _, r := range p.Rounds(s) {
			if _, err := p.Lookup(s, r); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// Scenarios returns the sorted list of scenario names.
func (p *Presets) Scenarios() []string {
	names := make([]string, 0, len(p.data))
	for name := range p.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Rounds returns the sorted list of round names of a scenario.
func (p *Presets) Rounds(scenario string) []string {
	rounds, _ := p.data[scenario].(map[string]any)
	names := make([]string, 0, len(rounds))
	for name := range rounds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the terms of a scenario and round.
func (p *Presets) Lookup(scenario, round string) (Terms, error) {
	path := fmt.Sprintf("$[%q][%q]", scenario, round)
	val, err := jsonpath.Get(path, p.data)
	if err != nil {
		return Terms{}, fmt.Errorf("%w: %q / %q", ErrUnknownPreset, scenario, round)
	}
	// jsonpath may wrap a single match into a list.
	if list, ok := val.([]any); ok && len(list) == 1 {
		val = list[0]
	}
	if _, ok := val.(map[string]any); !ok {
		return Terms{}, fmt.Errorf("%w: %q / %q is not an object", ErrUnknownPreset, scenario, round)
	}

	// round trip through json to reuse Ratio's number parsing.
	raw, err := json.Marshal(val)
	if err != nil {
		return Terms{}, fmt.Errorf("preset %q / %q: %w", scenario, round, err)
	}
	var jt struct {
		LiquidationMultiple *Ratio `json:"liquidation_multiple"`
		Participation       bool   `json:"participation"`
		PreferredOwnership  *Ratio `json:"preferred_ownership"`
	}
	if err := json.Unmarshal(raw, &jt); err != nil {
		return Terms{}, fmt.Errorf("preset %q / %q: %w", scenario, round, err)
	}
	if jt.LiquidationMultiple == nil {
		return Terms{}, fmt.Errorf("preset %q / %q: liquidation_multiple is missing", scenario, round)
	}
	return Terms{
		LiquidationMultiple: *jt.LiquidationMultiple,
		Participating:       jt.Participation,
		PreferredOwnership:  jt.PreferredOwnership,
	}, nil
}

// Overrides are user adjustments merged into a base capital structure. Nil
// fields keep the base value.
type Overrides struct {
	PreferredInvestment *Money
	LiquidationMultiple *Ratio
	Participating       *bool
	PreferredOwnership  *Ratio
	CommonOwnership     *Ratio
	Dilution            *Ratio
	OptionGrant         *Quantity
	FullyDilutedShares  *Quantity
	StrikePrice         *Money
}

// Apply returns a copy of cs with the overrides applied. Overriding only the
// preferred ownership sets common ownership to its complement.
func (o Overrides) Apply(cs CapitalStructure) CapitalStructure {
	if o.PreferredInvestment != nil {
		cs.PreferredInvestment = *o.PreferredInvestment
	}
	if o.LiquidationMultiple != nil {
		cs.LiquidationMultiple = *o.LiquidationMultiple
	}
	if o.Participating != nil {
		cs.Participating = *o.Participating
	}
	if o.PreferredOwnership != nil {
		cs.PreferredOwnership = *o.PreferredOwnership
		if o.CommonOwnership == nil {
			cs.CommonOwnership = o.PreferredOwnership.Complement()
		}
	}
	if o.CommonOwnership != nil {
		cs.CommonOwnership = *o.CommonOwnership
	}
	if o.Dilution != nil {
		cs.Dilution = *o.Dilution
	}
	if o.OptionGrant != nil {
		cs.OptionGrant = *o.OptionGrant
	}
	if o.FullyDilutedShares != nil {
		cs.FullyDilutedShares = *o.FullyDilutedShares
	}
	if o.StrikePrice != nil {
		cs.StrikePrice = *o.StrikePrice
	}
	return cs
}
