// Package integration provides end-to-end tests for the analytics pipeline.
package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"optionlab/internal/greeks"
	"optionlab/internal/models"
	"optionlab/internal/store"
	"optionlab/internal/strategy"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func shortStrangle() *strategy.Book {
	m := strategy.MarketParams{
		UnderlyingSymbol: "CL",
		UnderlyingPrice:  dec(7138.5),
		RiskFreeRate:     dec(0.05),
		ExpiryYears:      decimal.NewFromInt(45).Div(decimal.NewFromInt(365)),
		DividendYield:    decimal.Zero,
	}
	call := strategy.Leg{
		Strike:            dec(7450),
		ImpliedVolatility: dec(0.19),
		Premium:           dec(84.2),
		Quantity:          decimal.NewFromInt(2),
	}
	put := strategy.Leg{
		Strike:            dec(7250),
		ImpliedVolatility: dec(0.21),
		Premium:           dec(124.0),
		Quantity:          decimal.NewFromInt(2),
	}
	return strategy.NewShortStrangle(m, call, put)
}

// TestEndToEndNeutralityWorkflow walks the full pipeline: build a strategy,
// persist it, reload it, suggest delta adjustments, apply one and store the
// rebalanced legs, then confirm the reloaded book is neutral.
func TestEndToEndNeutralityWorkflow(t *testing.T) {
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "optionlab.db")
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Save the freshly built strategy.
	book := shortStrangle()
	id, err := st.SaveStrategy(ctx, store.RecordFromBook(book))
	if err != nil {
		t.Fatalf("Failed to save strategy: %v", err)
	}

	// Reload and verify the round trip kept the legs intact.
	rec, err := st.GetStrategy(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load strategy: %v", err)
	}
	loaded := rec.Book()
	if len(loaded.Positions) != 2 {
		t.Fatalf("Expected 2 legs after reload, got %d", len(loaded.Positions))
	}

	// The short strangle starts with positive net delta.
	engine := strategy.NewEngine(strategy.DefaultDeltaThreshold, nil, zerolog.Nop())
	info, err := engine.DeltaNeutrality(loaded)
	if err != nil {
		t.Fatalf("Failed to compute neutrality: %v", err)
	}
	if info.IsNeutral {
		t.Fatal("Fresh strangle should not be delta neutral")
	}
	if !info.NetDelta.IsPositive() {
		t.Fatalf("Expected positive net delta, got %s", info.NetDelta)
	}

	// Aggregate Greeks over the loaded book must match the built book.
	builtGreeks, err := greeks.Compute(book)
	if err != nil {
		t.Fatalf("Failed to compute greeks on built book: %v", err)
	}
	loadedGreeks, err := greeks.Compute(loaded)
	if err != nil {
		t.Fatalf("Failed to compute greeks on loaded book: %v", err)
	}
	if !builtGreeks.Delta.Sub(loadedGreeks.Delta).Abs().LessThan(dec(1e-9)) {
		t.Errorf("Delta drifted across the round trip: %s vs %s",
			builtGreeks.Delta, loadedGreeks.Delta)
	}

	// Suggest adjustments and apply the sell side.
	suggestions, err := engine.DeltaAdjustments(loaded)
	if err != nil {
		t.Fatalf("Failed to suggest adjustments: %v", err)
	}
	if len(suggestions) == 0 {
		t.Fatal("Expected at least one suggestion for an unbalanced book")
	}

	action := models.ActionSell
	if err := engine.ApplyDeltaAdjustments(loaded, &action); err != nil {
		t.Fatalf("Failed to apply adjustments: %v", err)
	}

	neutral, err := engine.IsDeltaNeutral(loaded)
	if err != nil {
		t.Fatalf("Failed to re-check neutrality: %v", err)
	}
	if !neutral {
		t.Fatal("Book should be neutral after applying the sell adjustment")
	}

	// Persist the rebalanced legs and log the audit record.
	updated := store.RecordFromBook(loaded)
	updated.ID = id
	if err := st.UpdateStrategyLegs(ctx, updated); err != nil {
		t.Fatalf("Failed to persist rebalanced legs: %v", err)
	}
	_, err = st.LogAdjustment(ctx, &store.AdjustmentRecord{
		StrategyID:  id,
		Description: suggestions[0].String(),
		NetDelta:    info.NetDelta,
		Applied:     true,
	})
	if err != nil {
		t.Fatalf("Failed to log adjustment: %v", err)
	}

	// A fresh load must see the rebalanced quantities.
	rec2, err := st.GetStrategy(ctx, id)
	if err != nil {
		t.Fatalf("Failed to reload strategy: %v", err)
	}
	reloaded := rec2.Book()
	neutral, err = engine.IsDeltaNeutral(reloaded)
	if err != nil {
		t.Fatalf("Failed to check reloaded neutrality: %v", err)
	}
	if !neutral {
		t.Fatal("Reloaded book should still be neutral")
	}

	// Audit trail records the applied adjustment.
	audits, err := st.GetAdjustments(ctx, store.AdjustmentFilter{StrategyID: id})
	if err != nil {
		t.Fatalf("Failed to load audit trail: %v", err)
	}
	if len(audits) != 1 {
		t.Fatalf("Expected 1 audit record, got %d", len(audits))
	}
	if !audits[0].Applied {
		t.Error("Audit record should be marked applied")
	}

	t.Logf("End-to-end workflow passed: id=%d netDelta=%s suggestions=%d",
		id, info.NetDelta, len(suggestions))
}

// TestLadderAgainstBookLegs prices a ladder spanning the strangle strikes and
// checks the rungs agree with per-leg pricing.
func TestLadderAgainstBookLegs(t *testing.T) {
	book := shortStrangle()

	template := &models.Option{
		UnderlyingSymbol:  book.UnderlyingSymbol,
		UnderlyingPrice:   book.UnderlyingPrice,
		Strike:            dec(7250),
		RiskFreeRate:      dec(0.05),
		ExpiryYears:       decimal.NewFromInt(45).Div(decimal.NewFromInt(365)),
		ImpliedVolatility: dec(0.19),
		DividendYield:     decimal.Zero,
		Quantity:          decimal.NewFromInt(1),
		Style:             models.Call,
		Side:              models.Long,
	}

	strikes := []decimal.Decimal{dec(7250), dec(7350), dec(7450)}
	rows, err := greeks.ComputeLadder(template, strikes, 2)
	if err != nil {
		t.Fatalf("Failed to price ladder: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	o := *template
	o.Strike = dec(7450)
	want, err := greeks.Delta(&o)
	if err != nil {
		t.Fatalf("Failed to price single contract: %v", err)
	}
	if !rows[2].Delta.Equal(want) {
		t.Errorf("Ladder rung disagrees with single pricing: %s vs %s", rows[2].Delta, want)
	}
}
