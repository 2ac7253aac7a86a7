package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DeltaAdjustment describes one corrective trade that moves a strategy
// toward delta neutrality. It is a closed set of variants; values are
// ephemeral and either discarded or applied to the owning strategy.
type DeltaAdjustment interface {
	deltaAdjustment()
	String() string
}

// BuyOptions opens or increases an option leg.
type BuyOptions struct {
	Quantity decimal.Decimal
	Strike   decimal.Decimal
	Style    OptionStyle
	Side     Side
}

// SellOptions closes or decreases an option leg.
type SellOptions struct {
	Quantity decimal.Decimal
	Strike   decimal.Decimal
	Style    OptionStyle
	Side     Side
}

// BuyUnderlying trades the underlying asset directly.
type BuyUnderlying struct {
	Quantity decimal.Decimal
}

// SellUnderlying trades the underlying asset directly.
type SellUnderlying struct {
	Quantity decimal.Decimal
}

// NoAdjustmentNeeded signals that the strategy is already neutral.
type NoAdjustmentNeeded struct{}

// SameSize pairs two adjustments that must be applied atomically as a
// unit to preserve overall position size. Nesting beyond one level is
// unsupported.
type SameSize struct {
	First  DeltaAdjustment
	Second DeltaAdjustment
}

func (BuyOptions) deltaAdjustment()         {}
func (SellOptions) deltaAdjustment()        {}
func (BuyUnderlying) deltaAdjustment()      {}
func (SellUnderlying) deltaAdjustment()     {}
func (NoAdjustmentNeeded) deltaAdjustment() {}
func (SameSize) deltaAdjustment()           {}

func (a BuyOptions) String() string {
	return fmt.Sprintf("buy %s %s %s @ strike %s", a.Quantity, a.Side, a.Style, a.Strike)
}

func (a SellOptions) String() string {
	return fmt.Sprintf("sell %s %s %s @ strike %s", a.Quantity, a.Side, a.Style, a.Strike)
}

func (a BuyUnderlying) String() string {
	return fmt.Sprintf("buy %s underlying", a.Quantity)
}

func (a SellUnderlying) String() string {
	return fmt.Sprintf("sell %s underlying", a.Quantity)
}

func (NoAdjustmentNeeded) String() string {
	return "no adjustment needed"
}

func (a SameSize) String() string {
	return fmt.Sprintf("same size [%s; %s]", a.First, a.Second)
}
