package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/greeks"
)

func newLadderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Compute Greeks across a ladder of strikes",
		Long: `Price one contract template at every strike between --from and --to,
stepping by --step, and print a sensitivity row per strike.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strikes, err := ladderStrikes(cmd)
			if err != nil {
				return err
			}

			// Validate the template at the first rung.
			cmd.Flags().Set("strike", strikes[0].String())
			template, err := optionFromFlags(cmd, app)
			if err != nil {
				return err
			}

			workers, err := cmd.Flags().GetInt("workers")
			if err != nil {
				return err
			}

			rows, err := greeks.ComputeLadder(template, strikes, workers)
			if err != nil {
				return err
			}
			app.Logger.Debug().Int("strikes", len(rows)).Msg("Priced strike ladder")

			if output.IsJSON() {
				out := make([]map[string]string, 0, len(rows))
				for _, row := range rows {
					out = append(out, map[string]string{
						"strike": row.Strike.String(),
						"delta":  fixed(row.Delta),
						"gamma":  fixed(row.Gamma),
						"theta":  fixed(row.Theta),
						"vega":   fixed(row.Vega),
					})
				}
				return output.JSON(out)
			}

			output.Bold("%-10s %10s %10s %10s %10s", "Strike", "Delta", "Gamma", "Theta", "Vega")
			for _, row := range rows {
				output.Printf("%-10s %10s %10s %10s %10s\n",
					row.Strike, fixed(row.Delta), fixed(row.Gamma), fixed(row.Theta), fixed(row.Vega))
			}
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "underlying symbol")
	cmd.Flags().String("spot", "", "underlying price")
	cmd.Flags().String("strike", "", "")
	cmd.Flags().MarkHidden("strike")
	cmd.Flags().String("from", "", "lowest strike in the ladder")
	cmd.Flags().String("to", "", "highest strike in the ladder")
	cmd.Flags().String("step", "", "strike increment")
	cmd.Flags().String("rate", "", "risk-free rate (default from config)")
	cmd.Flags().String("days", "", "days to expiration")
	cmd.Flags().String("vol", "", "implied volatility")
	cmd.Flags().String("yield", "", "dividend yield (default from config)")
	cmd.Flags().String("qty", "1", "contract quantity")
	cmd.Flags().String("style", "call", "option style: call or put")
	cmd.Flags().String("side", "long", "position side: long or short")
	cmd.Flags().Int("workers", 4, "concurrent pricing workers")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("step")
	cmd.MarkFlagRequired("days")
	cmd.MarkFlagRequired("vol")

	return cmd
}

// ladderStrikes expands --from/--to/--step into the strike list.
func ladderStrikes(cmd *cobra.Command) ([]decimal.Decimal, error) {
	from, err := decimalFlag(cmd, "from")
	if err != nil {
		return nil, err
	}
	to, err := decimalFlag(cmd, "to")
	if err != nil {
		return nil, err
	}
	step, err := decimalFlag(cmd, "step")
	if err != nil {
		return nil, err
	}
	if step.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: --step must be positive", apperrors.ErrInputValidation)
	}
	if to.LessThan(from) {
		return nil, fmt.Errorf("%w: --to is below --from", apperrors.ErrInputValidation)
	}

	var strikes []decimal.Decimal
	for k := from; k.LessThanOrEqual(to); k = k.Add(step) {
		strikes = append(strikes, k)
	}
	return strikes, nil
}
