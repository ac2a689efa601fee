// Package pricing computes the final appointment price as a base price plus
// an ordered list of adjustments. All amounts are cents.
package pricing

import "fmt"

// Adjustment transforms a running total. Adjustments are applied in slice
// order, so a percentage placed after a flat fee includes that fee.
type Adjustment interface {
	Describe() string
	Apply(cents int64) int64
}

// FlatFee adds a fixed amount.
type FlatFee struct {
	Label string
	Cents int64
}

func (f FlatFee) Describe() string { return fmt.Sprintf("%s (+%d¢)", f.Label, f.Cents) }

func (f FlatFee) Apply(cents int64) int64 { return cents + f.Cents }

// PercentSurcharge adds a percentage of the running total.
type PercentSurcharge struct {
	Label   string
	Percent int64
}

func (p PercentSurcharge) Describe() string { return fmt.Sprintf("%s (+%d%%)", p.Label, p.Percent) }

func (p PercentSurcharge) Apply(cents int64) int64 { return cents + cents*p.Percent/100 }

// PercentDiscount subtracts a percentage of the running total.
type PercentDiscount struct {
	Label   string
	Percent int64
}

func (p PercentDiscount) Describe() string { return fmt.Sprintf("%s (-%d%%)", p.Label, p.Percent) }

func (p PercentDiscount) Apply(cents int64) int64 { return cents - cents*p.Percent/100 }

// Quote applies the adjustments in order. The result never drops below zero.
func Quote(baseCents int64, adjustments ...Adjustment) int64 {
	total := baseCents
	for _, a := range adjustments {
		total = a.Apply(total)
	}
	if total < 0 {
		total = 0
	}
	return total
}

// Standard is the clinic's default adjustment stack for an appointment.
func Standard(emergency, homeVisit bool) []Adjustment {
	var adjs []Adjustment
	if emergency {
		adjs = append(adjs, PercentSurcharge{Label: "emergency", Percent: 50})
	}
	if homeVisit {
		adjs = append(adjs, FlatFee{Label: "home visit", Cents: 1500})
	}
	return adjs
}
