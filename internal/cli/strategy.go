package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/greeks"
	"optionlab/internal/store"
	"optionlab/internal/strategy"
)

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Manage stored option strategies",
	}
	cmd.AddCommand(newStrategySaveCmd(app))
	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyShowCmd(app))
	return cmd
}

func newStrategySaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Build a strategy from market inputs and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("%w: store unavailable", apperrors.ErrDatabaseError)
			}

			book, err := bookFromFlags(cmd, app)
			if err != nil {
				return err
			}

			id, err := app.Store.SaveStrategy(context.Background(), store.RecordFromBook(book))
			if err != nil {
				return err
			}
			app.Logger.Info().Int64("id", id).Str("strategy", book.Name).Msg("Strategy saved")

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"id": id, "strategy": book.Name})
			}
			output.Success("Saved %s as strategy %d", book.Name, id)
			return nil
		},
	}

	cmd.Flags().String("type", "strangle", "strategy type: strangle, straddle or bull-call-spread")
	cmd.Flags().String("symbol", "", "underlying symbol")
	cmd.Flags().String("spot", "", "underlying price")
	cmd.Flags().String("days", "", "days to expiration")
	cmd.Flags().String("rate", "", "risk-free rate (default from config)")
	cmd.Flags().String("yield", "", "dividend yield (default from config)")
	cmd.Flags().String("qty", "1", "quantity per leg")
	cmd.Flags().String("call-strike", "", "call leg strike")
	cmd.Flags().String("call-vol", "", "call leg implied volatility")
	cmd.Flags().String("call-premium", "0", "call leg premium")
	cmd.Flags().String("put-strike", "", "put leg strike")
	cmd.Flags().String("put-vol", "", "put leg implied volatility")
	cmd.Flags().String("put-premium", "0", "put leg premium")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("days")

	return cmd
}

// bookFromFlags assembles a strategy book from the save command flags.
func bookFromFlags(cmd *cobra.Command, app *App) (*strategy.Book, error) {
	symbol, err := cmd.Flags().GetString("symbol")
	if err != nil {
		return nil, err
	}
	spot, err := decimalFlag(cmd, "spot")
	if err != nil {
		return nil, err
	}
	expiry, err := expiryYearsFlag(cmd, "days")
	if err != nil {
		return nil, err
	}
	rate, err := decimalFlag(cmd, "rate")
	if err != nil {
		return nil, err
	}
	if rate.IsZero() && !cmd.Flags().Changed("rate") {
		rate = app.Config.RiskFreeRate()
	}
	yield, err := decimalFlag(cmd, "yield")
	if err != nil {
		return nil, err
	}
	if yield.IsZero() && !cmd.Flags().Changed("yield") {
		yield = app.Config.DividendYield()
	}
	qty, err := decimalFlag(cmd, "qty")
	if err != nil {
		return nil, err
	}

	m := strategy.MarketParams{
		UnderlyingSymbol: symbol,
		UnderlyingPrice:  spot,
		RiskFreeRate:     rate,
		ExpiryYears:      expiry,
		DividendYield:    yield,
	}

	callLeg, err := legFromFlags(cmd, "call", qty)
	if err != nil {
		return nil, err
	}
	putLeg, err := legFromFlags(cmd, "put", qty)
	if err != nil {
		return nil, err
	}

	kind, err := cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "strangle":
		return strategy.NewShortStrangle(m, callLeg, putLeg), nil
	case "straddle":
		return strategy.NewShortStraddle(m, callLeg, putLeg), nil
	case "bull-call-spread":
		// both legs are calls; the put flags describe the short leg
		return strategy.NewBullCallSpread(m, callLeg, putLeg), nil
	}
	return nil, fmt.Errorf("%w: --type %q", apperrors.ErrInputValidation, kind)
}

func legFromFlags(cmd *cobra.Command, prefix string, qty decimal.Decimal) (strategy.Leg, error) {
	strike, err := decimalFlag(cmd, prefix+"-strike")
	if err != nil {
		return strategy.Leg{}, err
	}
	vol, err := decimalFlag(cmd, prefix+"-vol")
	if err != nil {
		return strategy.Leg{}, err
	}
	premium, err := decimalFlag(cmd, prefix+"-premium")
	if err != nil {
		return strategy.Leg{}, err
	}
	return strategy.Leg{
		Strike:            strike,
		ImpliedVolatility: vol,
		Premium:           premium,
		Quantity:          qty,
	}, nil
}

func newStrategyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("%w: store unavailable", apperrors.ErrDatabaseError)
			}

			list, err := app.Store.ListStrategies(context.Background())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(list)
			}
			if len(list) == 0 {
				output.Dim("No strategies stored yet")
				return nil
			}
			for _, rec := range list {
				output.Printf("%4d  %-20s %-8s spot %s\n", rec.ID, rec.Name, rec.UnderlyingSymbol, rec.UnderlyingPrice)
			}
			return nil
		},
	}
}

func newStrategyShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored strategy with its aggregate Greeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("%w: store unavailable", apperrors.ErrDatabaseError)
			}

			id, err := cmd.Flags().GetInt64("id")
			if err != nil {
				return err
			}
			rec, err := app.Store.GetStrategy(context.Background(), id)
			if err != nil {
				return err
			}
			book := rec.Book()
			g, err := greeks.Compute(book)
			if err != nil {
				return err
			}

			totalCost := decimal.Zero
			for _, p := range book.Positions {
				totalCost = totalCost.Add(p.TotalCost())
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"strategy":   rec,
					"greeks":     greekFields(g),
					"total_cost": totalCost.String(),
				})
			}

			output.Bold("%s on %s (spot %s)", rec.Name, rec.UnderlyingSymbol, rec.UnderlyingPrice)
			for _, p := range book.Positions {
				output.Printf("  %s (cost %s)\n", p.Option, p.TotalCost())
			}
			output.Printf("Total cost: %s\n", totalCost)
			output.Printf("%s", g.String())
			return nil
		},
	}
	cmd.Flags().Int64("id", 0, "stored strategy id")
	cmd.MarkFlagRequired("id")
	return cmd
}
