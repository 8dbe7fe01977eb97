package toymc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survival/decay"
	"survival/particle"
)

func TestAgreement(t *testing.T) {
	for _, tc := range []struct {
		species   particle.Species
		distances []float64
	}{
		{particle.Lambda, []float64{0, 0.1, 0.3, 0.6, 1.0, 2.0}},
		{particle.K0s, []float64{0, 0.05, 0.2, 0.5}},
		{particle.D0, []float64{0, 0.0002, 0.0005, 0.001, 0.002}},
		{particle.LambdaFromXi, []float64{0, 0.05, 0.15, 0.4, 1.0}},
		{particle.LambdaFromOmega, []float64{0, 0.02, 0.1, 0.3, 0.8}},
	} {
		g := New(200000, 7)
		dev, err := g.MaxDeviation(tc.species, tc.distances)
		require.NoError(t, err)
		assert.Less(t, dev, 0.01, tc.species.Name())
	}
}

func TestEstimateEdges(t *testing.T) {
	g := New(10000, 1)

	est, err := g.Estimate(particle.Omega, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, est[0])

	est, err = g.Estimate(particle.LambdaFromXi, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, est[0])
}

func TestWeights(t *testing.T) {
	g := New(1000, 3)
	g.Weights = [particle.NumHypotheses]uint{0, 1, 0}

	exp, err := g.Expected(particle.Xi, []float64{0.1})
	require.NoError(t, err)
	want, _ := decay.SurvivalProbability(particle.Xi, 0.1, 0.8)
	assert.InDelta(t, want, exp[0], 1e-15)

	g.Weights = [particle.NumHypotheses]uint{}
	_, err = g.Estimate(particle.Xi, []float64{0.1})
	assert.Error(t, err)
	_, err = g.Expected(particle.Xi, []float64{0.1})
	assert.Error(t, err)
}

func TestExpectedUsesModel(t *testing.T) {
	// a single bisection cannot resolve the steep Xi decay over two metres
	coarse := decay.Model{RelTol: 1e-2, AbsTol: 1e-3, MaxDepth: 0}
	distances := []float64{0.5, 2.0}

	g := New(1000, 2)
	g.Weights = [particle.NumHypotheses]uint{1, 0, 0}
	assert.Equal(t, decay.Default, g.Model)

	fine, err := g.Expected(particle.LambdaFromXi, distances)
	require.NoError(t, err)

	g.Model = coarse
	got, err := g.Expected(particle.LambdaFromXi, distances)
	require.NoError(t, err)

	for i, l := range distances {
		want, _ := coarse.SurvivalProbability(particle.LambdaFromXi, l, 1.0)
		assert.Equal(t, want, got[i])

		ref, _ := decay.SurvivalProbability(particle.LambdaFromXi, l, 1.0)
		assert.Equal(t, ref, fine[i])
	}
	assert.Greater(t, math.Abs(got[1]-fine[1]), 1e-9)
}

func TestErrors(t *testing.T) {
	g := New(100, 1)
	_, err := g.Estimate(particle.Species(99), []float64{0.1})
	assert.True(t, errors.Is(err, particle.ErrUnknownSpecies))

	_, err = g.MaxDeviation(particle.Species(99), []float64{0.1})
	assert.True(t, errors.Is(err, particle.ErrUnknownSpecies))

	g.Events = 0
	_, err = g.Estimate(particle.Lambda, []float64{0.1})
	assert.Error(t, err)
}
