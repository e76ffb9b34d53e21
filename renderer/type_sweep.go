package renderer

import "github.com/etnz/waterfall"

// Sweep is the report of a valuation sweep.
type Sweep struct {
	Rows           []SweepRow      `json:"rows"`
	BreakEvenFound bool            `json:"breakEvenFound,omitempty"`
	BreakEven      waterfall.Money `json:"breakEven"`
}

// SweepRow is one exit of a sweep.
type SweepRow struct {
	Exit       waterfall.Money `json:"exit"`
	Preferred  waterfall.Money `json:"preferred"`
	CommonPool waterfall.Money `json:"commonPool"`
	Net        waterfall.Money `json:"net"`
	Zone       string          `json:"zone"`
}

// NewSweep creates the report of a sweep, in the order of 'ds'.
func NewSweep(ds []waterfall.Distribution, be waterfall.BreakEven) *Sweep {
	s := &Sweep{BreakEvenFound: be.Found, BreakEven: be.Valuation}
	for _, d := range ds {
		s.Rows = append(s.Rows, SweepRow{
			Exit:       d.Exit,
			Preferred:  d.Preferred,
			CommonPool: d.CommonPool,
			Net:        d.Net,
			Zone:       d.Zone().String(),
		})
	}
	return s
}
