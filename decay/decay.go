// Package decay evaluates survival probabilities of particles decaying in flight.
//
// For a particle of mass m, mean decay length cTau and momentum p the probability
// to fly further than L0 is exp(-m*L0/(cTau*p)). For a cascade mother -> Lambda the
// Lambda is beyond L0 when the mother decayed at some Lx in [0, L0] and the Lambda
// then survived the remaining L0-Lx; that convolution is integrated numerically.
package decay

import (
	"errors"
	"fmt"
	"math"

	"survival/particle"
)

var (
	// ErrUnknownSpecies aliases particle.ErrUnknownSpecies so callers need one import.
	ErrUnknownSpecies = particle.ErrUnknownSpecies

	// ErrInvalidMomentum is returned for a momentum that is not positive and finite.
	ErrInvalidMomentum = errors.New("momentum must be positive and finite")

	// ErrInvalidDistance is returned for a flight distance that is negative or not finite.
	ErrInvalidDistance = errors.New("flight distance must be non-negative and finite")
)

// Model evaluates survival probabilities with a given quadrature tolerance.
type Model struct {
	// RelTol is the relative tolerance accepted per integration panel.
	RelTol float64

	// AbsTol is the absolute floor below which panels are not refined.
	AbsTol float64

	// MaxDepth bounds the number of bisections of the integration range.
	MaxDepth int
}

// Default is the model used by the package level functions.
var Default = Model{RelTol: 1e-6, AbsTol: 1e-12, MaxDepth: 30}

// SurvivalProbability is Default.SurvivalProbability.
func SurvivalProbability(s particle.Species, l0, p float64) (float64, error) {
	return Default.SurvivalProbability(s, l0, p)
}

// Integrand is Default.Integrand.
func Integrand(s particle.Species, l0, lx, p float64) (float64, error) {
	return Default.Integrand(s, l0, lx, p)
}

// SurvivalProbability returns P(L > l0 | p) for species s, l0 in metres and p in GeV/c.
// For cascades p is the mother momentum and the result is the integral of
// Integrand over [0, l0].
func (m Model) SurvivalProbability(s particle.Species, l0, p float64) (float64, error) {
	if err := check(l0, p); err != nil {
		return 0, err
	}

	if chain, ok := particle.Cascade(s); ok {
		f, err := cascadeDensity(chain, l0, p)
		if err != nil {
			return 0, err
		}
		return m.integrate(f, 0, l0), nil
	}

	c, err := particle.Constants(s)
	if err != nil {
		return 0, err
	}
	return survival(c, l0, p), nil
}

// Integrand returns the density in the mother decay point lx of the cascade
// integral for a total distance l0. For primary species it returns the survival
// law evaluated at lx, and l0 is ignored.
func (m Model) Integrand(s particle.Species, l0, lx, p float64) (float64, error) {
	if err := check(l0, p); err != nil {
		return 0, err
	}

	if chain, ok := particle.Cascade(s); ok {
		f, err := cascadeDensity(chain, l0, p)
		if err != nil {
			return 0, err
		}
		return f(lx), nil
	}

	c, err := particle.Constants(s)
	if err != nil {
		return 0, err
	}
	return survival(c, lx, p), nil
}

func check(l0, p float64) error {
	if !(p > 0) || math.IsInf(p, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidMomentum, p)
	}
	if !(l0 >= 0) || math.IsInf(l0, 1) {
		return fmt.Errorf("%w: %g", ErrInvalidDistance, l0)
	}
	return nil
}

func survival(c particle.Constant, l, p float64) float64 {
	return math.Exp(-c.Mass * l / (c.CTau * p))
}

// cascadeDensity builds the integrand of the chain for a fixed l0 and mother momentum.
func cascadeDensity(chain particle.Chain, l0, p float64) (func(float64) float64, error) {
	mother, err := particle.Constants(chain.Mother)
	if err != nil {
		return nil, err
	}
	daughter, err := particle.Constants(chain.Daughter)
	if err != nil {
		return nil, err
	}

	// decay rates per metre of mother and daughter
	a := mother.Mass / (mother.CTau * p)
	b := daughter.Mass / (daughter.CTau * chain.Sharing * p)

	return func(lx float64) float64 {
		return math.Exp(-a*lx) * a * math.Exp(-b*(l0-lx))
	}, nil
}
