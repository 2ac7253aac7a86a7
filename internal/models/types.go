// Package models provides domain models for options analytics.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
)

// OptionStyle represents the style of an option contract.
type OptionStyle string

const (
	Call OptionStyle = "CALL"
	Put  OptionStyle = "PUT"
)

// Side represents the direction of exposure for a position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Action represents a trade direction used to filter adjustments.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// ParseAction parses a trade action from its string form.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBuy, ActionSell:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: unknown action %q", apperrors.ErrInputValidation, s)
}

// Option represents a single option contract with the market inputs
// needed for sensitivity calculations. Immutable per calculation; owned
// by whichever Position references it.
type Option struct {
	UnderlyingSymbol  string
	UnderlyingPrice   decimal.Decimal
	Strike            decimal.Decimal
	RiskFreeRate      decimal.Decimal // any sign
	ExpiryYears       decimal.Decimal // time to expiration in years
	ImpliedVolatility decimal.Decimal
	DividendYield     decimal.Decimal
	Quantity          decimal.Decimal
	Style             OptionStyle
	Side              Side
}

// Validate checks the contract bounds required by the pricing kernel.
func (o *Option) Validate() error {
	switch {
	case o.UnderlyingPrice.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: underlying price %s", apperrors.ErrInvalidUnderlying, o.UnderlyingPrice)
	case o.Strike.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: strike %s", apperrors.ErrInvalidStrike, o.Strike)
	case o.ExpiryYears.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: expiry %s years", apperrors.ErrInvalidExpiry, o.ExpiryYears)
	case o.ImpliedVolatility.IsNegative():
		return fmt.Errorf("%w: volatility %s", apperrors.ErrInvalidVolatility, o.ImpliedVolatility)
	case o.DividendYield.IsNegative():
		return fmt.Errorf("%w: dividend yield %s", apperrors.ErrInputValidation, o.DividendYield)
	case o.Quantity.LessThanOrEqual(decimal.Zero):
		return fmt.Errorf("%w: quantity %s", apperrors.ErrInputValidation, o.Quantity)
	}
	return nil
}

// IsLong reports whether the contract is held long.
func (o *Option) IsLong() bool {
	return o.Side == Long
}

// SignFactor returns +1 for long exposure and -1 for short.
func (o *Option) SignFactor() decimal.Decimal {
	if o.IsLong() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// IsITM reports whether the contract is in the money at the current
// underlying price. An at-the-money contract counts as in the money,
// matching the zero-volatility delta convention.
func (o *Option) IsITM() bool {
	if o.Style == Call {
		return o.UnderlyingPrice.GreaterThanOrEqual(o.Strike)
	}
	return o.UnderlyingPrice.LessThanOrEqual(o.Strike)
}

// Options returns the contract as a single-element slice so a lone
// contract satisfies the same aggregation interfaces as a full book.
func (o *Option) Options() ([]*Option, error) {
	return []*Option{o}, nil
}

func (o *Option) String() string {
	return fmt.Sprintf("%s %s %s x%s @ %s", o.Side, o.Style, o.Strike, o.Quantity, o.UnderlyingSymbol)
}
