package greeks

import (
	"github.com/shopspring/decimal"

	"optionlab/internal/models"
	"optionlab/pkg/decimalmath"
)

// Delta computes the position delta of a contract, scaled by quantity
// and signed by side. A zero-volatility contract degenerates to a step
// function: full delta when in the money, zero otherwise.
func Delta(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	if o.ImpliedVolatility.IsZero() {
		return zeroVolDelta(o), nil
	}

	d1, err := D1(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	nd1, err := BigN(d1)
	if err != nil {
		return decimal.Zero, err
	}
	discQ, err := dividendDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}

	var delta decimal.Decimal
	if o.Style == models.Call {
		delta = nd1.Mul(discQ)
	} else {
		delta = nd1.Sub(decimalmath.One).Mul(discQ)
	}
	return delta.Mul(o.SignFactor()).Mul(o.Quantity), nil
}

func zeroVolDelta(o *models.Option) decimal.Decimal {
	if !o.IsITM() {
		return decimal.Zero
	}
	delta := o.SignFactor()
	if o.Style == models.Put {
		delta = delta.Neg()
	}
	return delta.Mul(o.Quantity)
}

// Gamma computes the position gamma of a contract. Gamma is identical
// for calls and puts and scales with quantity alone; the long/short
// sign applies to delta only.
func Gamma(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	d1, err := D1(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	discQ, err := dividendDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}
	sqrtT, err := decimalmath.Sqrt(o.ExpiryYears)
	if err != nil {
		return decimal.Zero, err
	}

	denom := o.UnderlyingPrice.Mul(o.ImpliedVolatility).Mul(sqrtT)
	gamma := discQ.Mul(N(d1)).Div(denom)
	return gamma.Mul(o.Quantity), nil
}

// Theta computes the position theta of a contract: the shared decay
// term plus the style-dependent rate and dividend carry terms.
func Theta(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	d1, err := D1(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	d2, err := D2(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	discQ, err := dividendDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}
	discR, err := rateDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}
	sqrtT, err := decimalmath.Sqrt(o.ExpiryYears)
	if err != nil {
		return decimal.Zero, err
	}

	common := o.UnderlyingPrice.Neg().
		Mul(o.ImpliedVolatility).
		Mul(discQ).
		Mul(N(d1)).
		Div(decimalmath.Two.Mul(sqrtT))

	var theta decimal.Decimal
	if o.Style == models.Call {
		nd1, err := BigN(d1)
		if err != nil {
			return decimal.Zero, err
		}
		nd2, err := BigN(d2)
		if err != nil {
			return decimal.Zero, err
		}
		rateTerm := o.RiskFreeRate.Mul(o.Strike).Mul(discR).Mul(nd2)
		divTerm := o.DividendYield.Mul(o.UnderlyingPrice).Mul(discQ).Mul(nd1)
		theta = common.Sub(rateTerm).Add(divTerm)
	} else {
		nd1, err := BigN(d1.Neg())
		if err != nil {
			return decimal.Zero, err
		}
		nd2, err := BigN(d2.Neg())
		if err != nil {
			return decimal.Zero, err
		}
		rateTerm := o.RiskFreeRate.Mul(o.Strike).Mul(discR).Mul(nd2)
		divTerm := o.DividendYield.Mul(o.UnderlyingPrice).Mul(discQ).Mul(nd1)
		theta = common.Add(rateTerm).Sub(divTerm)
	}
	return theta.Mul(o.Quantity), nil
}

// Vega computes the position vega of a contract. Like gamma it is
// style-invariant.
func Vega(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	d1, err := D1(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	discQ, err := dividendDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}
	sqrtT, err := decimalmath.Sqrt(o.ExpiryYears)
	if err != nil {
		return decimal.Zero, err
	}

	vega := o.UnderlyingPrice.Mul(discQ).Mul(N(d1)).Mul(sqrtT)
	return vega.Mul(o.Quantity), nil
}

// Rho computes the position sensitivity to the risk-free rate.
func Rho(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	d2, err := D2(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	discR, err := rateDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}

	var rho decimal.Decimal
	if o.Style == models.Call {
		nd2, err := BigN(d2)
		if err != nil {
			return decimal.Zero, err
		}
		rho = o.Strike.Mul(o.ExpiryYears).Mul(discR).Mul(nd2)
	} else {
		nd2, err := BigN(d2.Neg())
		if err != nil {
			return decimal.Zero, err
		}
		rho = o.Strike.Mul(o.ExpiryYears).Mul(discR).Mul(nd2).Neg()
	}
	return rho.Mul(o.Quantity), nil
}

// RhoD computes the position sensitivity to the dividend yield.
func RhoD(o *models.Option) (decimal.Decimal, error) {
	if err := o.Validate(); err != nil {
		return decimal.Zero, err
	}
	d1, err := D1(o.UnderlyingPrice, o.Strike, o.RiskFreeRate, o.ExpiryYears, o.ImpliedVolatility)
	if err != nil {
		return decimal.Zero, err
	}
	discQ, err := dividendDiscount(o)
	if err != nil {
		return decimal.Zero, err
	}

	var rhoD decimal.Decimal
	if o.Style == models.Call {
		nd1, err := BigN(d1)
		if err != nil {
			return decimal.Zero, err
		}
		rhoD = o.ExpiryYears.Neg().Mul(o.UnderlyingPrice).Mul(discQ).Mul(nd1)
	} else {
		nd1, err := BigN(d1.Neg())
		if err != nil {
			return decimal.Zero, err
		}
		rhoD = o.ExpiryYears.Mul(o.UnderlyingPrice).Mul(discQ).Mul(nd1)
	}
	return rhoD.Mul(o.Quantity), nil
}

func dividendDiscount(o *models.Option) (decimal.Decimal, error) {
	return decimalmath.Exp(o.DividendYield.Neg().Mul(o.ExpiryYears))
}

func rateDiscount(o *models.Option) (decimal.Decimal, error) {
	return decimalmath.Exp(o.RiskFreeRate.Neg().Mul(o.ExpiryYears))
}
