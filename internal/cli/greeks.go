package cli

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"optionlab/internal/greeks"
	"optionlab/internal/models"
)

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute Black-Scholes Greeks for a single contract",
		Long: `Compute delta, gamma, theta, vega, rho and the dividend rho for one
option contract. Rates and yields default to the configured values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			o, err := optionFromFlags(cmd, app)
			if err != nil {
				return err
			}

			g, err := greeks.Compute(o)
			if err != nil {
				output.Error("Greeks computation failed: %v", err)
				return err
			}

			app.Logger.Debug().Str("option", o.String()).Msg("computed greeks")

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"option": o.String(),
					"greeks": greekFields(g),
				})
			}

			output.Bold("%s", o.String())
			output.Printf("  Delta: %s\n", fixed(g.Delta))
			output.Printf("  Gamma: %s\n", fixed(g.Gamma))
			output.Printf("  Theta: %s\n", fixed(g.Theta))
			output.Printf("  Vega:  %s\n", fixed(g.Vega))
			output.Printf("  Rho:   %s\n", fixed(g.Rho))
			output.Printf("  RhoD:  %s\n", fixed(g.RhoD))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "underlying symbol")
	cmd.Flags().String("spot", "", "underlying price")
	cmd.Flags().String("strike", "", "strike price")
	cmd.Flags().String("rate", "", "risk-free rate (default from config)")
	cmd.Flags().String("days", "", "days to expiration")
	cmd.Flags().String("vol", "", "implied volatility")
	cmd.Flags().String("yield", "", "dividend yield (default from config)")
	cmd.Flags().String("qty", "1", "contract quantity")
	cmd.Flags().String("style", "call", "option style: call or put")
	cmd.Flags().String("side", "long", "position side: long or short")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("days")
	cmd.MarkFlagRequired("vol")

	return cmd
}

// optionFromFlags assembles a contract from the greeks command flags,
// falling back to configured pricing defaults.
func optionFromFlags(cmd *cobra.Command, app *App) (*models.Option, error) {
	symbol, err := cmd.Flags().GetString("symbol")
	if err != nil {
		return nil, err
	}
	spot, err := decimalFlag(cmd, "spot")
	if err != nil {
		return nil, err
	}
	strike, err := decimalFlag(cmd, "strike")
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
	expiry, err := expiryYearsFlag(cmd, "days")
	if err != nil {
		return nil, err
	}
	vol, err := decimalFlag(cmd, "vol")
	if err != nil {
		return nil, err
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
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	style, err := styleFlag(cmd)
	if err != nil {
		return nil, err
	}
	side, err := sideFlag(cmd)
	if err != nil {
		return nil, err
	}

	o := &models.Option{
		UnderlyingSymbol:  symbol,
		UnderlyingPrice:   spot,
		Strike:            strike,
		RiskFreeRate:      rate,
		ExpiryYears:       expiry,
		ImpliedVolatility: vol,
		DividendYield:     yield,
		Quantity:          qty,
		Style:             style,
		Side:              side,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
