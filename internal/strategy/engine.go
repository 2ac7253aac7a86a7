package strategy

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/greeks"
	"optionlab/internal/models"
	"optionlab/pkg/decimalmath"
)

// DefaultDeltaThreshold is the net-delta magnitude at or below which a
// book counts as neutral.
var DefaultDeltaThreshold = decimal.NewFromFloat(0.0001)

// UnderlyingTrader executes trades in the underlying asset when an
// adjustment calls for direct hedging.
type UnderlyingTrader interface {
	AdjustUnderlyingPosition(symbol string, quantity decimal.Decimal, action models.Action) error
}

// Engine analyzes books for delta neutrality and suggests or applies
// re-hedging adjustments.
type Engine struct {
	threshold  decimal.Decimal
	underlying UnderlyingTrader
	logger     zerolog.Logger
}

// NewEngine creates an engine with the given neutrality threshold. A
// non-positive threshold falls back to DefaultDeltaThreshold. The
// underlying trader may be nil when only option adjustments are used.
func NewEngine(threshold decimal.Decimal, underlying UnderlyingTrader, logger zerolog.Logger) *Engine {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = DefaultDeltaThreshold
	}
	return &Engine{
		threshold:  threshold,
		underlying: underlying,
		logger:     logger,
	}
}

// Threshold returns the neutrality threshold in effect.
func (e *Engine) Threshold() decimal.Decimal {
	return e.threshold
}

// DeltaNeutrality computes the net delta of the book together with a
// per-leg breakdown and the neutrality verdict.
func (e *Engine) DeltaNeutrality(b *Book) (*models.DeltaInfo, error) {
	opts, err := b.Options()
	if err != nil {
		return nil, err
	}

	info := &models.DeltaInfo{
		Threshold:       e.threshold,
		UnderlyingPrice: b.UnderlyingPrice,
	}
	for _, o := range opts {
		delta, err := greeks.Delta(o)
		if err != nil {
			return nil, err
		}
		info.IndividualDeltas = append(info.IndividualDeltas, models.DeltaPositionInfo{
			Delta:            delta,
			DeltaPerContract: delta.Div(o.Quantity),
			Quantity:         o.Quantity,
			Strike:           o.Strike,
			Style:            o.Style,
			Side:             o.Side,
		})
		info.NetDelta = info.NetDelta.Add(delta)
	}
	info.IsNeutral = info.NetDelta.Abs().LessThanOrEqual(e.threshold)
	return info, nil
}

// IsDeltaNeutral reports whether the book's net delta magnitude is
// within the threshold.
func (e *Engine) IsDeltaNeutral(b *Book) (bool, error) {
	info, err := e.DeltaNeutrality(b)
	if err != nil {
		return false, err
	}
	return info.IsNeutral, nil
}

// DeltaAdjustments suggests adjustments that would bring the book to
// neutrality. Each leg with usable delta yields one standalone
// suggestion that fully neutralizes the book on its own; when at least
// two legs are usable, a trailing SameSize pair rebalances the first
// two legs in lockstep with equal quantities. A neutral book yields a
// single NoAdjustmentNeeded.
func (e *Engine) DeltaAdjustments(b *Book) ([]models.DeltaAdjustment, error) {
	info, err := e.DeltaNeutrality(b)
	if err != nil {
		return nil, err
	}
	if info.IsNeutral {
		return []models.DeltaAdjustment{models.NoAdjustmentNeeded{}}, nil
	}

	var out []models.DeltaAdjustment
	var usable []models.DeltaPositionInfo
	for _, leg := range info.IndividualDeltas {
		if leg.DeltaPerContract.IsZero() {
			e.logger.Debug().
				Str("strike", leg.Strike.String()).
				Str("style", string(leg.Style)).
				Msg("skipping leg with zero delta per contract")
			continue
		}
		qty := info.NetDelta.Div(leg.DeltaPerContract).Abs()
		out = append(out, legAdjustment(leg, info.NetDelta, qty))
		usable = append(usable, leg)
	}
	if len(usable) >= 2 {
		first, second := usable[0], usable[1]
		denom := first.DeltaPerContract.Abs().Add(second.DeltaPerContract.Abs())
		qty := info.NetDelta.Abs().Div(denom)
		out = append(out, models.SameSize{
			First:  legAdjustment(first, info.NetDelta, qty),
			Second: legAdjustment(second, info.NetDelta, qty),
		})
	}
	return out, nil
}

// legAdjustment wraps a quantity in the buy or sell variant for the
// given leg. Selling reduces a leg whose delta leans the same way as
// the net; buying grows a leg that leans against it.
func legAdjustment(leg models.DeltaPositionInfo, netDelta, qty decimal.Decimal) models.DeltaAdjustment {
	if decimalmath.SameSign(leg.DeltaPerContract, netDelta) {
		return models.SellOptions{
			Quantity: qty,
			Strike:   leg.Strike,
			Style:    leg.Style,
			Side:     leg.Side,
		}
	}
	return models.BuyOptions{
		Quantity: qty,
		Strike:   leg.Strike,
		Style:    leg.Style,
		Side:     leg.Side,
	}
}

// ApplyDeltaAdjustments mutates the book toward neutrality. With a nil
// action it applies the SameSize pair (or the first standalone
// suggestion when no pair exists); any one suggestion fully
// neutralizes, so applying several would overshoot. With an explicit
// action it applies every standalone suggestion matching that
// direction and skips the rest. Application is best effort: earlier
// mutations are not rolled back when a later one fails.
func (e *Engine) ApplyDeltaAdjustments(b *Book, action *models.Action) error {
	adjustments, err := e.DeltaAdjustments(b)
	if err != nil {
		return err
	}

	if action == nil {
		return e.applySingle(b, pickPreferred(adjustments))
	}

	for _, adj := range adjustments {
		if !matchesAction(adj, *action) {
			e.logger.Debug().
				Stringer("adjustment", adj).
				Str("action", string(*action)).
				Msg("skipping adjustment not matching requested action")
			continue
		}
		if err := e.applySingle(b, adj); err != nil {
			return err
		}
	}
	return nil
}

// pickPreferred selects the SameSize pair when present, otherwise the
// first suggestion.
func pickPreferred(adjustments []models.DeltaAdjustment) models.DeltaAdjustment {
	for _, adj := range adjustments {
		if pair, ok := adj.(models.SameSize); ok {
			return pair
		}
	}
	if len(adjustments) == 0 {
		return models.NoAdjustmentNeeded{}
	}
	return adjustments[0]
}

func matchesAction(adj models.DeltaAdjustment, action models.Action) bool {
	switch adj.(type) {
	case models.BuyOptions, models.BuyUnderlying:
		return action == models.ActionBuy
	case models.SellOptions, models.SellUnderlying:
		return action == models.ActionSell
	}
	return false
}

func (e *Engine) applySingle(b *Book, adj models.DeltaAdjustment) error {
	switch a := adj.(type) {
	case models.NoAdjustmentNeeded:
		e.logger.Debug().Msg("book already neutral, nothing to apply")
		return nil
	case models.BuyOptions:
		return e.AdjustOptionPosition(b, a.Quantity, a.Strike, a.Style, a.Side)
	case models.SellOptions:
		return e.AdjustOptionPosition(b, a.Quantity.Neg(), a.Strike, a.Style, a.Side)
	case models.BuyUnderlying:
		return e.AdjustUnderlyingPosition(b, a.Quantity, models.ActionBuy)
	case models.SellUnderlying:
		return e.AdjustUnderlyingPosition(b, a.Quantity, models.ActionSell)
	case models.SameSize:
		if err := e.applyPairChild(b, a.First); err != nil {
			return err
		}
		return e.applyPairChild(b, a.Second)
	}
	return apperrors.NewAdjustmentError(adj.String(), "unknown adjustment variant", nil)
}

func (e *Engine) applyPairChild(b *Book, adj models.DeltaAdjustment) error {
	if _, ok := adj.(models.SameSize); ok {
		e.logger.Debug().Stringer("adjustment", adj).Msg("rejecting nested pair adjustment")
		return apperrors.NewAdjustmentError(adj.String(), "nested pair adjustments are not supported", nil)
	}
	return e.applySingle(b, adj)
}

// AdjustOptionPosition adds the signed quantity to the exactly
// matching position. A match failure or a resulting negative quantity
// leaves the book unchanged.
func (e *Engine) AdjustOptionPosition(b *Book, quantity, strike decimal.Decimal, style models.OptionStyle, side models.Side) error {
	pos, err := b.Get(strike, style, side)
	if err != nil {
		return err
	}
	if err := b.Modify(quantity, strike, style, side); err != nil {
		return apperrors.NewAdjustmentError(
			pos.Option.String(),
			"adjustment would drive quantity below zero",
			err,
		)
	}
	e.logger.Debug().
		Str("position", pos.Option.String()).
		Str("delta_qty", quantity.String()).
		Msg("adjusted option position")
	return nil
}

// AdjustUnderlyingPosition forwards an underlying trade to the
// configured trader. Without one the adjustment is a logged no-op.
func (e *Engine) AdjustUnderlyingPosition(b *Book, quantity decimal.Decimal, action models.Action) error {
	if e.underlying == nil {
		e.logger.Debug().
			Str("symbol", b.UnderlyingSymbol).
			Str("quantity", quantity.String()).
			Str("action", string(action)).
			Msg("no underlying trader configured, skipping underlying adjustment")
		return nil
	}
	return e.underlying.AdjustUnderlyingPosition(b.UnderlyingSymbol, quantity, action)
}
