// Package toymc cross-checks survival curves with a toy Monte Carlo of decays in flight.
package toymc

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mroth/weightedrand"
	"gonum.org/v1/gonum/floats"

	"survival/decay"
	"survival/particle"
)

// Generator produces toy decays of a species. The momentum hypothesis of every
// toy is drawn according to Weights.
type Generator struct {
	Events  int
	Weights [particle.NumHypotheses]uint

	// Model evaluates the analytic expectation.
	Model decay.Model

	rng *rand.Rand
}

// New returns a generator with equal hypothesis weights.
func New(events int, seed int64) *Generator {
	return &Generator{
		Events:  events,
		Weights: [particle.NumHypotheses]uint{1, 1, 1},
		Model:   decay.Default,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// window is the range of L0 for which a toy counts as surviving: lo < L0 < hi.
type window struct {
	lo, hi float64
}

// Estimate returns, for every distance in metres, the fraction of toys of s still
// alive beyond it. For cascades a toy is alive when the mother decayed before the
// distance and the daughter after it.
func (g *Generator) Estimate(s particle.Species, distances []float64) ([]float64, error) {
	toys, err := g.generate(s)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(distances))
	for i, l := range distances {
		n := 0
		for _, w := range toys {
			if w.lo < l && l < w.hi {
				n++
			}
		}
		out[i] = float64(n) / float64(len(toys))
	}
	return out, nil
}

func (g *Generator) generate(s particle.Species) ([]window, error) {
	if g.Events < 1 {
		return nil, fmt.Errorf("toymc: need at least one event, got %d", g.Events)
	}
	kin, err := particle.KinematicsOf(s)
	if err != nil {
		return nil, err
	}
	chooser, err := g.chooser()
	if err != nil {
		return nil, err
	}

	// flight length = exponential deviate * cTau * p / m
	var scale func(p float64) (float64, float64)
	chain, cascade := particle.Cascade(s)
	if cascade {
		mother, err := particle.Constants(chain.Mother)
		if err != nil {
			return nil, err
		}
		daughter, err := particle.Constants(chain.Daughter)
		if err != nil {
			return nil, err
		}
		scale = func(p float64) (float64, float64) {
			return mother.CTau * p / mother.Mass, daughter.CTau * chain.Sharing * p / daughter.Mass
		}
	} else {
		c, err := particle.Constants(s)
		if err != nil {
			return nil, err
		}
		scale = func(p float64) (float64, float64) {
			return 0, c.CTau * p / c.Mass
		}
	}

	toys := make([]window, g.Events)
	for i := range toys {
		p := kin.Momenta[chooser.PickSource(g.rng).(int)]
		first, second := scale(p)
		if !cascade {
			toys[i] = window{lo: math.Inf(-1), hi: g.rng.ExpFloat64() * second}
			continue
		}
		lo := g.rng.ExpFloat64() * first
		toys[i] = window{lo: lo, hi: lo + g.rng.ExpFloat64()*second}
	}
	return toys, nil
}

func (g *Generator) chooser() (*weightedrand.Chooser, error) {
	choices := make([]weightedrand.Choice, 0, particle.NumHypotheses)
	for i, w := range g.Weights {
		choices = append(choices, weightedrand.NewChoice(i, w))
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, fmt.Errorf("toymc: momentum weights %v: %w", g.Weights, err)
	}
	return chooser, nil
}

// Expected returns the weight averaged analytic survival probability of s at
// every distance in metres.
func (g *Generator) Expected(s particle.Species, distances []float64) ([]float64, error) {
	kin, err := particle.KinematicsOf(s)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, w := range g.Weights {
		total += float64(w)
	}
	if total == 0 {
		return nil, fmt.Errorf("toymc: all momentum weights are zero")
	}

	out := make([]float64, len(distances))
	for i, l := range distances {
		for h, w := range g.Weights {
			if w == 0 {
				continue
			}
			prob, err := g.Model.SurvivalProbability(s, l, kin.Momenta[h])
			if err != nil {
				return nil, err
			}
			out[i] += float64(w) / total * prob
		}
	}
	return out, nil
}

// MaxDeviation returns the largest absolute difference between the toy
// estimate and the analytic expectation of s over distances.
func (g *Generator) MaxDeviation(s particle.Species, distances []float64) (float64, error) {
	est, err := g.Estimate(s, distances)
	if err != nil {
		return 0, err
	}
	exp, err := g.Expected(s, distances)
	if err != nil {
		return 0, err
	}
	return floats.Distance(est, exp, math.Inf(1)), nil
}
