// Package decimalmath provides conversions and safe arithmetic helpers
// between fixed-point decimals and float64.
//
// Transcendental functions (exp, ln, sqrt and the normal CDF) are
// evaluated in float64; this package is the single place where values
// cross that boundary, so an exact-decimal implementation could replace
// it without touching callers.
package decimalmath

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
)

// Common constants.
var (
	One = decimal.NewFromInt(1)
	Two = decimal.NewFromInt(2)
)

// FromFloat converts a float64 to a decimal. NaN and infinities are the
// conversion failure mode and yield ErrConversion.
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("%w: NaN", apperrors.ErrConversion)
	}
	if math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: Inf", apperrors.ErrConversion)
	}
	return decimal.NewFromFloat(f), nil
}

// ToFloat converts a decimal to float64. Precision loss is accepted;
// decimals in this codebase stay well inside the float64 range.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Exp returns e^d.
func Exp(d decimal.Decimal) (decimal.Decimal, error) {
	return FromFloat(math.Exp(ToFloat(d)))
}

// Ln returns the natural logarithm of d. d must be positive.
func Ln(d decimal.Decimal) (decimal.Decimal, error) {
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: ln of non-positive value %s", apperrors.ErrConversion, d)
	}
	return FromFloat(math.Log(ToFloat(d)))
}

// Sqrt returns the square root of d. d must be non-negative.
func Sqrt(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: sqrt of negative value %s", apperrors.ErrConversion, d)
	}
	return FromFloat(math.Sqrt(ToFloat(d)))
}

// SameSign reports whether a and b are both non-zero with equal sign.
func SameSign(a, b decimal.Decimal) bool {
	return a.Sign() != 0 && a.Sign() == b.Sign()
}
