// Package greeks implements the Black-Scholes sensitivity engine: the
// d1/d2 kernel, the per-contract Greek functions, and aggregation over
// any entity that can enumerate its option contracts.
package greeks

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "optionlab/internal/errors"
	"optionlab/pkg/decimalmath"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// validateKernelInputs enforces the bounds required before computing
// d1/d2: S>0, K>0, T>0, sigma>0.
func validateKernelInputs(s, k, t, sigma decimal.Decimal) error {
	switch {
	case s.LessThanOrEqual(decimal.Zero):
		return apperrors.Wrapf(apperrors.ErrInvalidUnderlying, "underlying price %s", s)
	case k.LessThanOrEqual(decimal.Zero):
		return apperrors.Wrapf(apperrors.ErrInvalidStrike, "strike %s", k)
	case t.LessThanOrEqual(decimal.Zero):
		return apperrors.Wrapf(apperrors.ErrInvalidExpiry, "expiry %s years", t)
	case sigma.LessThanOrEqual(decimal.Zero):
		return apperrors.Wrapf(apperrors.ErrInvalidVolatility, "volatility %s", sigma)
	}
	return nil
}

// D1 computes the d1 term of the Black-Scholes model:
//
//	d1 = (ln(S/K) + (r + sigma^2/2)*T) / (sigma*sqrt(T))
func D1(s, k, r, t, sigma decimal.Decimal) (decimal.Decimal, error) {
	if err := validateKernelInputs(s, k, t, sigma); err != nil {
		return decimal.Zero, err
	}

	logMoneyness, err := decimalmath.Ln(s.Div(k))
	if err != nil {
		return decimal.Zero, err
	}

	rf := decimalmath.ToFloat(r)
	tf := decimalmath.ToFloat(t)
	sigf := decimalmath.ToFloat(sigma)

	d1 := (decimalmath.ToFloat(logMoneyness) + (rf+sigf*sigf/2)*tf) / (sigf * math.Sqrt(tf))
	return decimalmath.FromFloat(d1)
}

// D2 computes d2 = d1 - sigma*sqrt(T). Kernel input errors from D1 are
// propagated unchanged.
func D2(s, k, r, t, sigma decimal.Decimal) (decimal.Decimal, error) {
	d1, err := D1(s, k, r, t, sigma)
	if err != nil {
		return decimal.Zero, err
	}
	sqrtT, err := decimalmath.Sqrt(t)
	if err != nil {
		return decimal.Zero, err
	}
	return d1.Sub(sigma.Mul(sqrtT)), nil
}

// N computes the standard normal probability density at x in closed
// form. The result is always finite, so no error path is needed.
func N(x decimal.Decimal) decimal.Decimal {
	xf := decimalmath.ToFloat(x)
	return decimal.NewFromFloat(math.Exp(-xf*xf/2) / math.Sqrt(2*math.Pi))
}

// BigN computes the standard normal cumulative distribution at x. The
// decimal-float round trip is the only failure mode.
func BigN(x decimal.Decimal) (decimal.Decimal, error) {
	return decimalmath.FromFloat(stdNormal.CDF(decimalmath.ToFloat(x)))
}
