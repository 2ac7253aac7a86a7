package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

var daysPerYear = decimal.NewFromInt(365)

// decimalFlag parses a string flag into a decimal, keeping the exact
// value the user typed.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a decimal", apperrors.ErrInputValidation, name, s)
	}
	return d, nil
}

// expiryYearsFlag converts a --days flag into year fractions.
func expiryYearsFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	days, err := decimalFlag(cmd, name)
	if err != nil {
		return decimal.Zero, err
	}
	return days.Div(daysPerYear), nil
}

func styleFlag(cmd *cobra.Command) (models.OptionStyle, error) {
	s, err := cmd.Flags().GetString("style")
	if err != nil {
		return "", err
	}
	switch s {
	case "call", "CALL":
		return models.Call, nil
	case "put", "PUT":
		return models.Put, nil
	}
	return "", fmt.Errorf("%w: --style %q (want call or put)", apperrors.ErrInputValidation, s)
}

func sideFlag(cmd *cobra.Command) (models.Side, error) {
	s, err := cmd.Flags().GetString("side")
	if err != nil {
		return "", err
	}
	switch s {
	case "long", "LONG":
		return models.Long, nil
	case "short", "SHORT":
		return models.Short, nil
	}
	return "", fmt.Errorf("%w: --side %q (want long or short)", apperrors.ErrInputValidation, s)
}

// fixed renders a decimal with four fractional digits for display.
func fixed(d decimal.Decimal) string {
	return d.StringFixed(4)
}

// greekFields flattens a Greek aggregate for JSON output.
func greekFields(g models.Greek) map[string]string {
	return map[string]string{
		"delta": g.Delta.String(),
		"gamma": g.Gamma.String(),
		"theta": g.Theta.String(),
		"vega":  g.Vega.String(),
		"rho":   g.Rho.String(),
		"rho_d": g.RhoD.String(),
		"alpha": g.Alpha.String(),
	}
}
