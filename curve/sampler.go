package curve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"survival/decay"
	"survival/particle"
)

// ErrInvalidGrid is returned for a non-positive sample count or grid range.
var ErrInvalidGrid = errors.New("invalid sampling grid")

// Grid is a probability-vs-distance curve sampled at discrete flight distances.
type Grid struct {
	Distance    []float64 `json:"distance"`
	Probability []float64 `json:"probability"`
}

// Len returns the number of sample points.
func (g Grid) Len() int {
	return len(g.Distance)
}

// Progress is reported by the sampler while it walks the grid.
type Progress struct {
	Species     particle.Species
	Momentum    float64
	Index       int
	Distance    float64
	Probability float64
}

// Sampler evaluates a decay.Model over a uniform grid.
type Sampler struct {
	Model decay.Model

	// Progress, if set, is called for every Every-th point.
	Progress func(Progress)
	Every    int
}

// NewSampler returns a sampler using the default model, reporting every 40 points.
func NewSampler(progress func(Progress)) *Sampler {
	return &Sampler{Model: decay.Default, Progress: progress, Every: 40}
}

// Sample evaluates the survival probability of s at momentum p on n points
// i*maxDistance/n, i = 0..n-1. maxDistance itself is not part of the grid.
// Distances are in metres.
func (sp *Sampler) Sample(s particle.Species, p, maxDistance float64, n int) (Grid, error) {
	if n < 1 || !(maxDistance > 0) || math.IsInf(maxDistance, 1) {
		return Grid{}, fmt.Errorf("%w: n=%d max=%g", ErrInvalidGrid, n, maxDistance)
	}

	// n+1 points span [0, maxDistance] with step maxDistance/n; drop the last one
	dist := floats.Span(make([]float64, n+1), 0, maxDistance)[:n:n]
	g := Grid{
		Distance:    dist,
		Probability: make([]float64, n),
	}

	for i, l := range g.Distance {
		prob, err := sp.Model.SurvivalProbability(s, l, p)
		if err != nil {
			return Grid{}, fmt.Errorf("sampling %v at p=%.2f GeV/c, point %d: %w", s, p, i, err)
		}
		g.Probability[i] = prob

		if sp.Progress != nil && sp.Every > 0 && i%sp.Every == 0 {
			sp.Progress(Progress{Species: s, Momentum: p, Index: i, Distance: l, Probability: prob})
		}
	}
	return g, nil
}
