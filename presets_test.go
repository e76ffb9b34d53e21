package waterfall

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultPresets(t *testing.T) {
	p := DefaultPresets()

	if got, want := p.Scenarios(), []string{"Distressed", "Market Standard"}; !slices.Equal(got, want) {
		t.Errorf("Scenarios() = %v, want %v", got, want)
	}
	if got, want := p.Rounds("Market Standard"), []string{"Series A", "Series B", "Series C"}; !slices.Equal(got, want) {
		t.Errorf("Rounds() = %v, want %v", got, want)
	}
	if got := p.Rounds("Boom"); len(got) != 0 {
		t.Errorf("Rounds() of an unknown scenario = %v, want none", got)
	}

	got, err := p.Lookup("Distressed", "Series B")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	ownership := R(0.45)
	want := Terms{LiquidationMultiple: R(2), Participating: true, PreferredOwnership: &ownership}
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}
}

func TestPresets_LookupUnknown(t *testing.T) {
	p := DefaultPresets()
	for _, q := range [][2]string{{"Boom", "Series A"}, {"Distressed", "Seed"}} {
		if _, err := p.Lookup(q[0], q[1]); !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("Lookup(%q, %q) error = %v, want %v", q[0], q[1], err, ErrUnknownPreset)
		}
	}
}

func TestDecodePresets_YAML(t *testing.T) {
	const doc = `
Bubble:
  Seed:
    liquidation_multiple: 1
    participation: false
Downturn:
  Series D:
    liquidation_multiple: 2.5
    participation: true
    preferred_ownership: 0.6
`
	p, err := DecodePresets(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("DecodePresets() failed: %v", err)
	}
	if got, want := p.Scenarios(), []string{"Bubble", "Downturn"}; !slices.Equal(got, want) {
		t.Errorf("Scenarios() = %v, want %v", got, want)
	}

	seed, err := p.Lookup("Bubble", "Seed")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if diff := cmp.Diff(Terms{LiquidationMultiple: R(1)}, seed, decimalComparer); diff != "" {
		t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
	}

	d, err := p.Lookup("Downturn", "Series D")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if !d.LiquidationMultiple.Equal(R(2.5)) || !d.Participating || d.PreferredOwnership == nil || !d.PreferredOwnership.Equal(R(0.6)) {
		t.Errorf("Lookup() = %+v, want 2.5x participating 60%%", d)
	}
}

func TestDecodePresets_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		doc    string
		format string
	}{
		{"not json", `{`, FormatJSON},
		{"unknown format", `{}`, "toml"},
		{"scenario not an object", `{"Boom": 1}`, FormatJSON},
		{"missing multiple", `{"Boom": {"Seed": {"participation": true}}}`, FormatJSON},
		{"bad multiple", `{"Boom": {"Seed": {"liquidation_multiple": "lots"}}}`, FormatJSON},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodePresets(strings.NewReader(tc.doc), tc.format); err == nil {
				t.Errorf("DecodePresets() succeeded, want an error")
			}
		})
	}
}

func TestLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "benchmarks.yml")
	if err := os.WriteFile(path, []byte("Flat:\n  Series A:\n    liquidation_multiple: 1.25\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets() failed: %v", err)
	}
	terms, err := p.Lookup("Flat", "Series A")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if !terms.LiquidationMultiple.Equal(R(1.25)) {
		t.Errorf("Lookup() multiple = %v, want 1.25", terms.LiquidationMultiple)
	}

	if _, err := LoadPresets(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadPresets() on a missing file error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestTerms_Apply(t *testing.T) {
	base := DefaultCapitalStructure()

	got := Terms{LiquidationMultiple: R(2), Participating: true}.Apply(base)
	want := base
	want.LiquidationMultiple = R(2)
	want.Participating = true
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}

	ownership := R(0.4)
	got = Terms{LiquidationMultiple: R(1), PreferredOwnership: &ownership}.Apply(base)
	if !got.PreferredOwnership.Equal(R(0.4)) || !got.CommonOwnership.Equal(R(0.6)) {
		t.Errorf("Apply() ownership = %v / %v, want 0.4 / 0.6", got.PreferredOwnership, got.CommonOwnership)
	}
}

func TestOverrides_Apply(t *testing.T) {
	base := DefaultCapitalStructure()

	if diff := cmp.Diff(base, Overrides{}.Apply(base), decimalComparer); diff != "" {
		t.Errorf("empty Overrides changed the structure (-want +got):\n%s", diff)
	}

	strike, grant, preferred, participating := USD(1.25), Q(50_000), R(0.35), true
	got := Overrides{StrikePrice: &strike, OptionGrant: &grant, PreferredOwnership: &preferred, Participating: &participating}.Apply(base)

	want := base
	want.StrikePrice = strike
	want.OptionGrant = grant
	want.PreferredOwnership = R(0.35)
	want.CommonOwnership = R(0.65)
	want.Participating = true
	if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}

	common := R(0.5)
	got = Overrides{PreferredOwnership: &preferred, CommonOwnership: &common}.Apply(base)
	if !got.CommonOwnership.Equal(R(0.5)) {
		t.Errorf("Apply() common = %v, want the explicit 0.5", got.CommonOwnership)
	}
}
