package strategy

import (
	"github.com/shopspring/decimal"

	"optionlab/internal/models"
)

// MarketParams carries the market inputs shared by every leg of a
// strategy.
type MarketParams struct {
	UnderlyingSymbol string
	UnderlyingPrice  decimal.Decimal
	RiskFreeRate     decimal.Decimal
	ExpiryYears      decimal.Decimal
	DividendYield    decimal.Decimal
}

// Leg describes one option leg of a strategy.
type Leg struct {
	Strike            decimal.Decimal
	ImpliedVolatility decimal.Decimal
	Premium           decimal.Decimal
	OpenFee           decimal.Decimal
	CloseFee          decimal.Decimal
	Quantity          decimal.Decimal
}

func buildLeg(m MarketParams, l Leg, style models.OptionStyle, side models.Side) *models.Position {
	o := &models.Option{
		UnderlyingSymbol:  m.UnderlyingSymbol,
		UnderlyingPrice:   m.UnderlyingPrice,
		Strike:            l.Strike,
		RiskFreeRate:      m.RiskFreeRate,
		ExpiryYears:       m.ExpiryYears,
		ImpliedVolatility: l.ImpliedVolatility,
		DividendYield:     m.DividendYield,
		Quantity:          l.Quantity,
		Style:             style,
		Side:              side,
	}
	return models.NewPosition(o, l.Premium, l.OpenFee, l.CloseFee)
}

// NewShortStrangle builds a short call above the spot and a short put
// below it. The call leg comes first in the book.
func NewShortStrangle(m MarketParams, call, put Leg) *Book {
	b := NewBook("short strangle", m.UnderlyingSymbol, m.UnderlyingPrice)
	b.Add(buildLeg(m, call, models.Call, models.Short))
	b.Add(buildLeg(m, put, models.Put, models.Short))
	return b
}

// NewShortStraddle builds a short call and short put at the same
// strike. The put leg inherits the call strike.
func NewShortStraddle(m MarketParams, call, put Leg) *Book {
	put.Strike = call.Strike
	b := NewBook("short straddle", m.UnderlyingSymbol, m.UnderlyingPrice)
	b.Add(buildLeg(m, call, models.Call, models.Short))
	b.Add(buildLeg(m, put, models.Put, models.Short))
	return b
}

// NewBullCallSpread builds a long call at the lower strike and a short
// call at the higher one.
func NewBullCallSpread(m MarketParams, long, short Leg) *Book {
	b := NewBook("bull call spread", m.UnderlyingSymbol, m.UnderlyingPrice)
	b.Add(buildLeg(m, long, models.Call, models.Long))
	b.Add(buildLeg(m, short, models.Call, models.Short))
	return b
}
