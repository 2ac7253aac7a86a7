// Package store provides persistence for strategy books and the
// adjustment audit trail.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"optionlab/internal/models"
	"optionlab/internal/strategy"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Strategies
	SaveStrategy(ctx context.Context, rec *StrategyRecord) (int64, error)
	GetStrategy(ctx context.Context, id int64) (*StrategyRecord, error)
	ListStrategies(ctx context.Context) ([]StrategyRecord, error)
	UpdateStrategyLegs(ctx context.Context, rec *StrategyRecord) error

	// Adjustment audit trail
	LogAdjustment(ctx context.Context, rec *AdjustmentRecord) (int64, error)
	GetAdjustments(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentRecord, error)

	// Lifecycle
	Close() error
}

// LegRecord is the persisted form of one option leg.
type LegRecord struct {
	Strike            decimal.Decimal
	ImpliedVolatility decimal.Decimal
	Premium           decimal.Decimal
	OpenFee           decimal.Decimal
	CloseFee          decimal.Decimal
	Quantity          decimal.Decimal
	Style             models.OptionStyle
	Side              models.Side
}

// StrategyRecord is the persisted form of a strategy book together
// with the market inputs its legs share.
type StrategyRecord struct {
	ID               int64
	Name             string
	UnderlyingSymbol string
	UnderlyingPrice  decimal.Decimal
	RiskFreeRate     decimal.Decimal
	ExpiryYears      decimal.Decimal
	DividendYield    decimal.Decimal
	Legs             []LegRecord
	CreatedAt        time.Time
}

// AdjustmentRecord is one entry in the adjustment audit trail.
type AdjustmentRecord struct {
	ID          int64
	StrategyID  int64
	Description string
	NetDelta    decimal.Decimal // net delta observed before the adjustment
	Applied     bool
	CreatedAt   time.Time
}

// AdjustmentFilter represents filters for querying the audit trail.
type AdjustmentFilter struct {
	StrategyID int64
	Applied    *bool
	Limit      int
}

// RecordFromBook converts a live book into its persisted form. The
// shared market inputs are taken from the first leg.
func RecordFromBook(b *strategy.Book) *StrategyRecord {
	rec := &StrategyRecord{
		Name:             b.Name,
		UnderlyingSymbol: b.UnderlyingSymbol,
		UnderlyingPrice:  b.UnderlyingPrice,
	}
	for i, p := range b.Positions {
		if i == 0 {
			rec.RiskFreeRate = p.Option.RiskFreeRate
			rec.ExpiryYears = p.Option.ExpiryYears
			rec.DividendYield = p.Option.DividendYield
		}
		rec.Legs = append(rec.Legs, LegRecord{
			Strike:            p.Option.Strike,
			ImpliedVolatility: p.Option.ImpliedVolatility,
			Premium:           p.Premium,
			OpenFee:           p.OpenFee,
			CloseFee:          p.CloseFee,
			Quantity:          p.Option.Quantity,
			Style:             p.Option.Style,
			Side:              p.Option.Side,
		})
	}
	return rec
}

// Book rebuilds a live strategy book from the persisted form.
func (r *StrategyRecord) Book() *strategy.Book {
	b := strategy.NewBook(r.Name, r.UnderlyingSymbol, r.UnderlyingPrice)
	for _, leg := range r.Legs {
		o := &models.Option{
			UnderlyingSymbol:  r.UnderlyingSymbol,
			UnderlyingPrice:   r.UnderlyingPrice,
			Strike:            leg.Strike,
			RiskFreeRate:      r.RiskFreeRate,
			ExpiryYears:       r.ExpiryYears,
			ImpliedVolatility: leg.ImpliedVolatility,
			DividendYield:     r.DividendYield,
			Quantity:          leg.Quantity,
			Style:             leg.Style,
			Side:              leg.Side,
		}
		b.Add(models.NewPosition(o, leg.Premium, leg.OpenFee, leg.CloseFee))
	}
	return b
}
