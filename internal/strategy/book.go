// Package strategy provides the position book, ready-made multi-leg
// strategy constructors, and the delta-neutrality engine that analyzes
// a book and suggests or applies re-hedging adjustments.
package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

// Book is a collection of option positions over a single underlying.
type Book struct {
	Name             string
	UnderlyingSymbol string
	UnderlyingPrice  decimal.Decimal
	Positions        []*models.Position
}

// NewBook creates an empty book for the given underlying.
func NewBook(name, symbol string, price decimal.Decimal) *Book {
	return &Book{
		Name:             name,
		UnderlyingSymbol: symbol,
		UnderlyingPrice:  price,
	}
}

// Add appends a position to the book.
func (b *Book) Add(p *models.Position) {
	b.Positions = append(b.Positions, p)
}

// Options enumerates the option contracts held in the book. An empty
// book is an error so Greek aggregation cannot silently report zero.
func (b *Book) Options() ([]*models.Option, error) {
	if len(b.Positions) == 0 {
		return nil, fmt.Errorf("%w: book %q", apperrors.ErrNoPositions, b.Name)
	}
	opts := make([]*models.Option, 0, len(b.Positions))
	for _, p := range b.Positions {
		opts = append(opts, p.Option)
	}
	return opts, nil
}

// Get returns the position exactly matching strike, style and side.
func (b *Book) Get(strike decimal.Decimal, style models.OptionStyle, side models.Side) (*models.Position, error) {
	for _, p := range b.Positions {
		if p.Matches(strike, style, side) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s @ %s", apperrors.ErrPositionNotFound, side, style, strike)
}

// Modify adds a signed quantity to the position exactly matching
// strike, style and side. The resulting quantity must stay
// non-negative; a violating delta leaves the book unchanged.
func (b *Book) Modify(quantity, strike decimal.Decimal, style models.OptionStyle, side models.Side) error {
	pos, err := b.Get(strike, style, side)
	if err != nil {
		return err
	}
	next := pos.Option.Quantity.Add(quantity)
	if next.IsNegative() {
		return fmt.Errorf("%w: quantity %s on %s would go negative",
			apperrors.ErrInputValidation, quantity, pos.Option)
	}
	pos.Option.Quantity = next
	return nil
}

// ATMStrike returns the held strike closest to the current underlying
// price, or zero for an empty book.
func (b *Book) ATMStrike() decimal.Decimal {
	var best decimal.Decimal
	var bestDist decimal.Decimal
	for i, p := range b.Positions {
		dist := p.Option.Strike.Sub(b.UnderlyingPrice).Abs()
		if i == 0 || dist.LessThan(bestDist) {
			best = p.Option.Strike
			bestDist = dist
		}
	}
	return best
}
