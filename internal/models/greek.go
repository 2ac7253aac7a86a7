package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Greek holds the sensitivity measures for a single contract or an
// aggregate across the legs of a strategy. Pure value, no identity.
type Greek struct {
	Delta decimal.Decimal
	Gamma decimal.Decimal
	Theta decimal.Decimal
	Vega  decimal.Decimal
	Rho   decimal.Decimal
	RhoD  decimal.Decimal
	Alpha decimal.Decimal // gamma/theta ratio, derived at aggregation
}

func (g Greek) String() string {
	return fmt.Sprintf(
		"delta=%s gamma=%s theta=%s vega=%s rho=%s rho_d=%s alpha=%s",
		g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho, g.RhoD, g.Alpha,
	)
}

// DeltaPositionInfo describes one leg's contribution to net delta.
type DeltaPositionInfo struct {
	Delta            decimal.Decimal // quantity-weighted, signed
	DeltaPerContract decimal.Decimal
	Quantity         decimal.Decimal
	Strike           decimal.Decimal
	Style            OptionStyle
	Side             Side
}

func (d DeltaPositionInfo) String() string {
	return fmt.Sprintf("%s %s %s x%s: delta=%s (per contract %s)",
		d.Side, d.Style, d.Strike, d.Quantity, d.Delta, d.DeltaPerContract)
}

// DeltaInfo is the result of one neutrality evaluation. Constructed
// fresh on every query; never persisted.
type DeltaInfo struct {
	NetDelta         decimal.Decimal
	IndividualDeltas []DeltaPositionInfo
	IsNeutral        bool
	Threshold        decimal.Decimal
	UnderlyingPrice  decimal.Decimal
}

func (d DeltaInfo) String() string {
	s := "Delta Analysis:\n"
	s += fmt.Sprintf("  Net Delta: %s\n", d.NetDelta.StringFixed(4))
	s += fmt.Sprintf("  Is Neutral: %t\n", d.IsNeutral)
	s += fmt.Sprintf("  Threshold: %s\n", d.Threshold)
	s += fmt.Sprintf("  Underlying Price: %s\n", d.UnderlyingPrice)
	s += "  Individual Deltas:\n"
	for i, leg := range d.IndividualDeltas {
		s += fmt.Sprintf("    Position %d: %s\n", i+1, leg)
	}
	return s
}
