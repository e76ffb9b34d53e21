package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/waterfall"
	"github.com/etnz/waterfall/renderer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

func usd(v float64) waterfall.Money { return waterfall.M(v, "USD") }

// run executes 'c' with 'args' and returns its exit status and output.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	setGlobal(t, raw, true)
	setGlobal(t, presetsFile, "")
	setGlobal(t, currency, "USD")

	var b bytes.Buffer
	setGlobal[io.Writer](t, &out, &b)

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %q: %v", args, err)
	}
	return c.Execute(context.Background(), f), b.String()
}

// golden returns a renderer golden file.
func golden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "renderer", "testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPayoutCmd(t *testing.T) {
	status, got := run(t, &payoutCmd{}, "-exit", "24_000_000")
	if status != subcommands.ExitSuccess {
		t.Fatalf("payout failed with status %v", status)
	}
	if diff := cmp.Diff(golden(t, "payout_underwater.md"), got); diff != "" {
		t.Errorf("payout output mismatch (-want +got):\n%s", diff)
	}

	status, got = run(t, &payoutCmd{}, "-exit", "15_000_000", "-scenario", "Distressed", "-round", "Series B")
	if status != subcommands.ExitSuccess {
		t.Fatalf("payout with a preset failed with status %v", status)
	}
	if diff := cmp.Diff(golden(t, "payout_zone_of_zero.md"), got); diff != "" {
		t.Errorf("payout output mismatch (-want +got):\n%s", diff)
	}
}

func TestPayoutCmd_JSON(t *testing.T) {
	status, got := run(t, &payoutCmd{}, "-exit", "100000000", "-participating", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("payout failed with status %v", status)
	}

	var d struct {
		Preferred waterfall.Money `json:"preferred"`
		Net       waterfall.Money `json:"net"`
		Zone      string          `json:"zone"`
	}
	if err := json.Unmarshal([]byte(got), &d); err != nil {
		t.Fatalf("invalid JSON output %q: %v", got, err)
	}
	// 20M hurdle + 25% of the 80M above it.
	if !d.Preferred.Equal(usd(40_000_000)) {
		t.Errorf("preferred = %v, want %v", d.Preferred, usd(40_000_000))
	}
	// 0.08% of 60M minus 5,000.
	if !d.Net.Equal(usd(43_000)) {
		t.Errorf("net = %v, want %v", d.Net, usd(43_000))
	}
	if d.Zone != "in the money" {
		t.Errorf("zone = %q, want %q", d.Zone, "in the money")
	}
}

func TestPayoutCmd_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"missing exit", nil, subcommands.ExitUsageError},
		{"negative exit", []string{"-exit", "-1"}, subcommands.ExitUsageError},
		{"inconsistent ownership", []string{"-exit", "1000", "-preferred", "0.4", "-common", "0.5"}, subcommands.ExitUsageError},
		{"normalized ownership", []string{"-exit", "1000", "-preferred", "0.4", "-common", "0.5", "-normalize"}, subcommands.ExitSuccess},
		{"normalized negative ownership", []string{"-exit", "1000", "-preferred=-0.5", "-common", "0.5", "-normalize"}, subcommands.ExitUsageError},
		{"normalized ownership above one", []string{"-exit", "1000", "-preferred", "1.5", "-common", "0.5", "-normalize"}, subcommands.ExitUsageError},
		{"scenario without round", []string{"-exit", "1000", "-scenario", "Distressed"}, subcommands.ExitUsageError},
		{"unknown preset", []string{"-exit", "1000", "-scenario", "Boom", "-round", "Seed"}, subcommands.ExitUsageError},
		{"dilution too high", []string{"-exit", "1000", "-dilution", "0.9"}, subcommands.ExitUsageError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if status, _ := run(t, &payoutCmd{}, tc.args...); status != tc.want {
				t.Errorf("payout %q = %v, want %v", tc.args, status, tc.want)
			}
		})
	}
}

func TestBreakEvenCmd(t *testing.T) {
	status, got := run(t, &breakEvenCmd{}, "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("breakeven failed with status %v", status)
	}
	var report renderer.BreakEven
	if err := json.Unmarshal([]byte(got), &report); err != nil {
		t.Fatalf("invalid JSON output %q: %v", got, err)
	}
	if !report.Found {
		t.Fatalf("breakeven not found: %s", got)
	}
	// non converting: the nominal break-even is exact.
	if diff := report.Valuation.Sub(usd(26_250_000)).Decimal().Abs(); diff.GreaterThan(usd(0.01).Decimal()) {
		t.Errorf("breakeven = %v, want %v", report.Valuation, usd(26_250_000))
	}

	status, got = run(t, &breakEvenCmd{}, "-max", "10_000_000")
	if status != subcommands.ExitSuccess {
		t.Fatalf("breakeven failed with status %v", status)
	}
	if !strings.Contains(got, "No break-even up to $10,000,000.00") {
		t.Errorf("breakeven output does not report the missing break-even:\n%s", got)
	}

	if status, _ := run(t, &breakEvenCmd{}, "-tolerance", "0"); status != subcommands.ExitUsageError {
		t.Errorf("breakeven -tolerance 0 = %v, want %v", status, subcommands.ExitUsageError)
	}
}

func TestSweepCmd(t *testing.T) {
	status, got := run(t, &sweepCmd{}, "-from", "0", "-to", "50_000_000", "-steps", "2")
	if status != subcommands.ExitSuccess {
		t.Fatalf("sweep failed with status %v", status)
	}
	for _, want := range []string{
		"| $0.00 | $0.00 | $0.00 | -$5,000.00 | zone of zero |",
		"| $25,000,000.00 | $20,000,000.00 | $5,000,000.00 | -$1,000.00 | underwater |",
		"| $50,000,000.00 | $20,000,000.00 | $30,000,000.00 | +$19,000.00 | in the money |",
		"Break-even: **",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("sweep output does not contain %q:\n%s", want, got)
		}
	}
}

func TestSweepCmd_JSONLines(t *testing.T) {
	lines := func(output string) []string {
		var res []string
		s := bufio.NewScanner(strings.NewReader(output))
		for s.Scan() {
			res = append(res, s.Text())
		}
		return res
	}

	_, sequential := run(t, &sweepCmd{}, "-to", "200_000_000", "-steps", "20", "-json")
	_, parallel := run(t, &sweepCmd{}, "-to", "200_000_000", "-steps", "20", "-json", "-workers", "4")

	seq := lines(sequential)
	if len(seq) != 21 {
		t.Fatalf("sweep -json printed %d lines, want 21", len(seq))
	}
	if diff := cmp.Diff(seq, lines(parallel)); diff != "" {
		t.Errorf("parallel sweep differs from the sequential one (-sequential +parallel):\n%s", diff)
	}

	var exit struct {
		Exit waterfall.Money `json:"exit"`
	}
	if err := json.Unmarshal([]byte(seq[0]), &exit); err != nil {
		t.Fatalf("invalid JSON line %q: %v", seq[0], err)
	}
	if !exit.Exit.IsZero() {
		t.Errorf("first exit = %v, want 0", exit.Exit)
	}
}

func TestSweepCmd_InvalidRange(t *testing.T) {
	if status, _ := run(t, &sweepCmd{}, "-from", "10", "-to", "5"); status != subcommands.ExitUsageError {
		t.Errorf("sweep on a reversed range = %v, want %v", status, subcommands.ExitUsageError)
	}
}

func TestPresetsCmd(t *testing.T) {
	status, got := run(t, &presetsCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("presets failed with status %v", status)
	}
	if diff := cmp.Diff(golden(t, "presets.md"), got); diff != "" {
		t.Errorf("presets output mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetsCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "Seed Stage:\n  Seed:\n    liquidation_multiple: 1\n    participation: false\n    preferred_ownership: 0.15\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	c := &presetsCmd{}
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	setGlobal(t, raw, true)
	setGlobal(t, presetsFile, path)
	var b bytes.Buffer
	setGlobal[io.Writer](t, &out, &b)

	if status := c.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("presets failed with status %v", status)
	}
	if want := "| Seed | 1x | non-participating | 15% |"; !strings.Contains(b.String(), want) {
		t.Errorf("presets output does not contain %q:\n%s", want, b.String())
	}
}

func TestDecimalFlag(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20_000_000", "20000000", false},
		{"1,250,000.5", "1250000.5", false},
		{"0.25", "0.25", false},
		{"lots", "", true},
	}
	for _, tc := range testCases {
		var d decimalFlag
		err := d.Set(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Set(%q) error = %v, want error %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && d.String() != tc.want {
			t.Errorf("Set(%q) = %q, want %q", tc.in, d.String(), tc.want)
		}
	}
}

func TestStructureFlags_OnlySetFlagsOverride(t *testing.T) {
	setGlobal(t, presetsFile, "")
	setGlobal(t, currency, "EUR")

	var s structureFlags
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	s.SetFlags(f)
	if err := f.Parse([]string{"-scenario", "Distressed", "-round", "Series A", "-strike", "2"}); err != nil {
		t.Fatal(err)
	}
	cs, err := s.structure(f)
	if err != nil {
		t.Fatalf("structure() failed: %v", err)
	}

	// the preset sets a participating 1.5x for 30%.
	if !cs.LiquidationMultiple.Equal(waterfall.R(1.5)) || !cs.Participating {
		t.Errorf("preset terms not applied: %v participating %v", cs.LiquidationMultiple, cs.Participating)
	}
	if !cs.PreferredOwnership.Equal(waterfall.R(0.3)) || !cs.CommonOwnership.Equal(waterfall.R(0.7)) {
		t.Errorf("ownership = %v / %v, want 0.3 / 0.7", cs.PreferredOwnership, cs.CommonOwnership)
	}
	if !cs.StrikePrice.Equal(waterfall.M(2, "EUR")) {
		t.Errorf("strike = %v, want 2 EUR", cs.StrikePrice)
	}
	// unset flags keep the defaults.
	if !cs.PreferredInvestment.Equal(waterfall.M(20_000_000, "EUR")) || !cs.OptionGrant.Equal(waterfall.Q(10_000)) {
		t.Errorf("defaults changed: %v raised, %v options", cs.PreferredInvestment, cs.OptionGrant)
	}
	if got := s.preset(); got != "Distressed / Series A" {
		t.Errorf("preset() = %q", got)
	}
}

func TestCompletion(t *testing.T) {
	setGlobal(t, presetsFile, "")
	root := completionCommand()

	payout, ok := root.Sub["payout"]
	if !ok {
		t.Fatal("payout is not completed")
	}
	for _, name := range []string{"exit", "strike", "scenario", "normalize", "json"} {
		if _, ok := payout.Flags[name]; !ok {
			t.Errorf("payout flag -%s is not completed", name)
		}
	}
	if got, want := payout.Flags["scenario"].Predict(""), []string{"Distressed", "Market Standard"}; !cmp.Equal(got, want) {
		t.Errorf("scenario completion = %v, want %v", got, want)
	}
	if got, want := payout.Flags["round"].Predict(""), []string{"Series A", "Series B", "Series C"}; !cmp.Equal(got, want) {
		t.Errorf("round completion = %v, want %v", got, want)
	}
	if got := root.Sub["topic"].Args.Predict(""); !cmp.Equal(got, []string{"breakeven", "presets", "waterfall"}) {
		t.Errorf("topic completion = %v", got)
	}
}

func TestTopicCmd(t *testing.T) {
	status, got := run(t, &topicCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("topic failed with status %v", status)
	}
	if !strings.HasPrefix(got, "# tov: the true value of your stock options") {
		t.Errorf("topic without argument does not show the introduction:\n%s", got)
	}

	if status, _ := run(t, &topicCmd{}, "unknown"); status != subcommands.ExitFailure {
		t.Errorf("topic unknown = %v, want %v", status, subcommands.ExitFailure)
	}
}
