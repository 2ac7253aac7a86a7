package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one option holding within a strategy: the contract plus
// the premium and fees it was opened with.
type Position struct {
	Option   *Option
	Premium  decimal.Decimal // per contract
	OpenFee  decimal.Decimal
	CloseFee decimal.Decimal
	OpenedAt time.Time
}

// NewPosition creates a position for the given contract.
func NewPosition(o *Option, premium, openFee, closeFee decimal.Decimal) *Position {
	return &Position{
		Option:   o,
		Premium:  premium,
		OpenFee:  openFee,
		CloseFee: closeFee,
		OpenedAt: time.Now(),
	}
}

// Matches reports whether this position is the exact (strike, style,
// side) leg the caller is looking for.
func (p *Position) Matches(strike decimal.Decimal, style OptionStyle, side Side) bool {
	return p.Option.Style == style &&
		p.Option.Side == side &&
		p.Option.Strike.Equal(strike)
}

// Options returns the position's contract as a single-element slice.
func (p *Position) Options() ([]*Option, error) {
	return []*Option{p.Option}, nil
}

// TotalCost returns premium plus round-trip fees, scaled by quantity.
func (p *Position) TotalCost() decimal.Decimal {
	perContract := p.Premium.Add(p.OpenFee).Add(p.CloseFee)
	return perContract.Mul(p.Option.Quantity)
}
