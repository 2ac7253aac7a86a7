package greeks

import (
	"github.com/shopspring/decimal"

	"optionlab/internal/models"
)

// Provider is implemented by anything that can enumerate the option
// contracts it is exposed to: a lone contract, a position, or a whole
// strategy book.
type Provider interface {
	Options() ([]*models.Option, error)
}

// Compute sums every Greek across the provider's contracts and derives
// alpha from the aggregate gamma and theta. The first per-contract
// error aborts the computation.
func Compute(p Provider) (models.Greek, error) {
	opts, err := p.Options()
	if err != nil {
		return models.Greek{}, err
	}

	var g models.Greek
	for _, o := range opts {
		delta, err := Delta(o)
		if err != nil {
			return models.Greek{}, err
		}
		gamma, err := Gamma(o)
		if err != nil {
			return models.Greek{}, err
		}
		theta, err := Theta(o)
		if err != nil {
			return models.Greek{}, err
		}
		vega, err := Vega(o)
		if err != nil {
			return models.Greek{}, err
		}
		rho, err := Rho(o)
		if err != nil {
			return models.Greek{}, err
		}
		rhoD, err := RhoD(o)
		if err != nil {
			return models.Greek{}, err
		}

		g.Delta = g.Delta.Add(delta)
		g.Gamma = g.Gamma.Add(gamma)
		g.Theta = g.Theta.Add(theta)
		g.Vega = g.Vega.Add(vega)
		g.Rho = g.Rho.Add(rho)
		g.RhoD = g.RhoD.Add(rhoD)
	}
	g.Alpha = alphaRatio(g.Gamma, g.Theta)
	return g, nil
}

// Sum aggregates a single Greek function across the provider's
// contracts, short-circuiting on the first error.
func Sum(p Provider, greek func(*models.Option) (decimal.Decimal, error)) (decimal.Decimal, error) {
	opts, err := p.Options()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range opts {
		v, err := greek(o)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// NetDelta sums only delta across the provider's contracts.
func NetDelta(p Provider) (decimal.Decimal, error) {
	return Sum(p, Delta)
}

// alphaRatio is gamma over theta, defined as zero when theta vanishes.
func alphaRatio(gamma, theta decimal.Decimal) decimal.Decimal {
	if theta.IsZero() {
		return decimal.Zero
	}
	return gamma.Div(theta)
}
