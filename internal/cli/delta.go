package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/logging"
	"optionlab/internal/models"
	"optionlab/internal/store"
	"optionlab/internal/strategy"
)

func newDeltaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delta",
		Short: "Analyze a stored strategy for delta neutrality",
		Long: `Analyze a stored strategy's net delta, suggest adjustments that
would bring it to neutrality, and optionally apply them. Every
suggestion is recorded in the adjustment audit trail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("%w: store unavailable", apperrors.ErrDatabaseError)
			}

			id, err := cmd.Flags().GetInt64("id")
			if err != nil {
				return err
			}
			threshold, err := decimalFlag(cmd, "threshold")
			if err != nil {
				return err
			}
			if threshold.IsZero() {
				threshold = app.Config.DeltaThreshold()
			}
			apply, err := cmd.Flags().GetBool("apply")
			if err != nil {
				return err
			}
			var action *models.Action
			if s, _ := cmd.Flags().GetString("action"); s != "" {
				a, err := models.ParseAction(s)
				if err != nil {
					return err
				}
				action = &a
			}

			ctx := context.Background()
			rec, err := app.Store.GetStrategy(ctx, id)
			if err != nil {
				return err
			}
			book := rec.Book()

			logger := logging.WithSymbol(app.Logger, rec.UnderlyingSymbol)
			engine := strategy.NewEngine(threshold, nil, logger)
			info, err := engine.DeltaNeutrality(book)
			if err != nil {
				return err
			}
			adjustments, err := engine.DeltaAdjustments(book)
			if err != nil {
				return err
			}

			if apply {
				if err := engine.ApplyDeltaAdjustments(book, action); err != nil {
					return err
				}
				updated := store.RecordFromBook(book)
				updated.ID = rec.ID
				if err := app.Store.UpdateStrategyLegs(ctx, updated); err != nil {
					return err
				}
			}
			logAdjustments(ctx, app, rec, info, adjustments, apply)

			if output.IsJSON() {
				return printDeltaJSON(output, engine, book, info, adjustments, apply)
			}
			return printDeltaText(output, engine, book, info, adjustments, apply)
		},
	}

	cmd.Flags().Int64("id", 0, "stored strategy id")
	cmd.Flags().String("threshold", "", "neutrality threshold (default from config)")
	cmd.Flags().Bool("apply", false, "apply the suggested adjustments to the stored legs")
	cmd.Flags().String("action", "", "only apply adjustments in this direction: BUY or SELL")
	cmd.MarkFlagRequired("id")

	return cmd
}

// logAdjustments records each suggestion in the audit trail; failures
// are logged but do not fail the command.
func logAdjustments(ctx context.Context, app *App, rec *store.StrategyRecord, info *models.DeltaInfo, adjustments []models.DeltaAdjustment, applied bool) {
	for _, adj := range adjustments {
		if _, ok := adj.(models.NoAdjustmentNeeded); ok {
			continue
		}
		_, err := app.Store.LogAdjustment(ctx, &store.AdjustmentRecord{
			StrategyID:  rec.ID,
			Description: adj.String(),
			NetDelta:    info.NetDelta,
			Applied:     applied,
		})
		if err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to record adjustment in audit trail")
			continue
		}
		logging.LogAdjustment(app.Logger, rec.UnderlyingSymbol, adj.String(), info.NetDelta.String(), applied)
	}
}

func printDeltaText(output *Output, engine *strategy.Engine, book *strategy.Book, info *models.DeltaInfo, adjustments []models.DeltaAdjustment, applied bool) error {
	output.Bold("%s on %s", book.Name, book.UnderlyingSymbol)
	output.Printf("%s", info.String())
	output.Printf("ATM strike: %s\n", book.ATMStrike())

	output.Bold("Suggested adjustments:")
	for _, adj := range adjustments {
		output.Printf("  - %s\n", adj)
	}

	if applied {
		after, err := engine.DeltaNeutrality(book)
		if err != nil {
			return err
		}
		if after.IsNeutral {
			output.Success("Adjustments applied, net delta now %s", fixed(after.NetDelta))
		} else {
			output.Warning("Adjustments applied, net delta still %s", fixed(after.NetDelta))
		}
	}
	return nil
}

func printDeltaJSON(output *Output, engine *strategy.Engine, book *strategy.Book, info *models.DeltaInfo, adjustments []models.DeltaAdjustment, applied bool) error {
	descriptions := make([]string, 0, len(adjustments))
	for _, adj := range adjustments {
		descriptions = append(descriptions, adj.String())
	}
	payload := map[string]interface{}{
		"strategy":    book.Name,
		"symbol":      book.UnderlyingSymbol,
		"net_delta":   info.NetDelta.String(),
		"atm_strike":  book.ATMStrike().String(),
		"is_neutral":  info.IsNeutral,
		"threshold":   info.Threshold.String(),
		"adjustments": descriptions,
	}
	if applied {
		after, err := engine.DeltaNeutrality(book)
		if err != nil {
			return err
		}
		payload["net_delta_after"] = after.NetDelta.String()
		payload["is_neutral_after"] = after.IsNeutral
	}
	return output.JSON(payload)
}
