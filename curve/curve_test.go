package curve

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"survival/decay"
	"survival/particle"
)

func TestSampleGrid(t *testing.T) {
	sp := NewSampler(nil)
	for _, tc := range []struct {
		species particle.Species
		max     float64
		n       int
	}{
		{particle.Lambda, 2.5, 500},
		{particle.LambdaFromOmega, 2.5, 50},
		{particle.D0, 0.003, 500},
		{particle.K0s, 2.0, 1},
	} {
		g, err := sp.Sample(tc.species, 3, tc.max, tc.n)
		require.NoError(t, err)
		require.Equal(t, tc.n, g.Len())
		require.Len(t, g.Probability, tc.n)

		assert.Equal(t, 0.0, g.Distance[0])
		for i, l := range g.Distance {
			assert.InDelta(t, float64(i)*tc.max/float64(tc.n), l, 1e-12)
			if i > 0 {
				assert.Greater(t, l, g.Distance[i-1])
			}
		}
		assert.Less(t, g.Distance[tc.n-1], tc.max)
	}
}

func TestSampleProbabilities(t *testing.T) {
	sp := NewSampler(nil)

	g, err := sp.Sample(particle.Xi, 0.8, 2.0, 100)
	require.NoError(t, err)
	for i, l := range g.Distance {
		want, _ := decay.SurvivalProbability(particle.Xi, l, 0.8)
		assert.Equal(t, want, g.Probability[i])
	}

	g, err = sp.Sample(particle.LambdaFromXi, 8, 2.5, 500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Probability[0])
	for _, v := range g.Probability {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSampleProgress(t *testing.T) {
	var seen []Progress
	sp := NewSampler(func(p Progress) { seen = append(seen, p) })

	g, err := sp.Sample(particle.Omega, 5, 2.0, 500)
	require.NoError(t, err)
	require.Len(t, seen, 13)
	for n, p := range seen {
		assert.Equal(t, 40*n, p.Index)
		assert.Equal(t, particle.Omega, p.Species)
		assert.Equal(t, 5.0, p.Momentum)
		assert.Equal(t, g.Distance[p.Index], p.Distance)
		assert.Equal(t, g.Probability[p.Index], p.Probability)
	}
}

func TestSampleErrors(t *testing.T) {
	sp := NewSampler(nil)

	_, err := sp.Sample(particle.Lambda, 1, 2.5, 0)
	assert.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = sp.Sample(particle.Lambda, 1, 0, 10)
	assert.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = sp.Sample(particle.LambdaFromXi, 1, math.Inf(1), 10)
	assert.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = sp.Sample(particle.Species(77), 1, 2.5, 10)
	assert.True(t, errors.Is(err, decay.ErrUnknownSpecies))
}

func runAll(t *testing.T, workers int) Collection {
	d := NewDriver(zap.NewNop().Sugar())
	d.Workers = workers
	c, err := d.RunAll(context.Background())
	require.NoError(t, err)
	return c
}

func TestRunAll(t *testing.T) {
	c := runAll(t, 4)
	require.Len(t, c, particle.NumSpecies)

	for _, s := range particle.All() {
		kin, _ := particle.KinematicsOf(s)
		for i := 0; i < particle.NumHypotheses; i++ {
			cv, ok := c.Curve(s, i)
			require.True(t, ok)
			assert.Equal(t, s, cv.Species)
			assert.Equal(t, i, cv.Index)
			assert.Equal(t, kin.Momenta[i], cv.Momentum)
			assert.Equal(t, kin.Unit, cv.Unit)
			assert.Equal(t, DefaultPoints, cv.Len())
		}
	}

	_, ok := c.Curve(particle.Lambda, 3)
	assert.False(t, ok)
}

func TestRunAllLambda(t *testing.T) {
	c := runAll(t, 2)
	cv, ok := c.Curve(particle.Lambda, 1)
	require.True(t, ok)

	assert.Equal(t, 1.0, cv.Probability[0])
	assert.InDelta(t, 2.495, cv.Distance[499], 1e-12)

	want := math.Exp(-1.115683 * cv.Distance[499] / (0.0789 * 3.0))
	assert.InDelta(t, want, cv.Probability[499], 1e-18)
	assert.InEpsilon(t, 7.8e-6, cv.Probability[499], 0.02)
}

func TestRunAllUnitConversion(t *testing.T) {
	c := runAll(t, 3)
	sp := NewSampler(nil)

	for _, s := range []particle.Species{particle.D0, particle.Dplus, particle.DSplus, particle.LambdaCplus} {
		kin, _ := particle.KinematicsOf(s)
		for i, p := range kin.Momenta {
			cv, _ := c.Curve(s, i)
			assert.Equal(t, "mm", cv.Unit)
			assert.InDelta(t, float64(DefaultPoints-1)/DefaultPoints*kin.LoMax*1000, cv.Distance[DefaultPoints-1], 1e-9)

			metres, err := sp.Sample(s, p, kin.LoMax, DefaultPoints)
			require.NoError(t, err)
			assert.Equal(t, metres.Probability, cv.Probability)
			for k := range metres.Distance {
				assert.InDelta(t, metres.Distance[k]*1000, cv.Distance[k], 1e-12)
			}
		}
	}

	// metre scale species keep their axis
	cv, _ := c.Curve(particle.K0s, 0)
	assert.InDelta(t, 1.996, cv.Distance[DefaultPoints-1], 1e-12)
}

func TestRunAllDeterministic(t *testing.T) {
	serial := runAll(t, 1)
	parallel := runAll(t, 8)
	assert.Equal(t, serial, parallel)
}

func TestRunAllFailure(t *testing.T) {
	d := NewDriver(nil)
	d.Points = 0
	c, err := d.RunAll(context.Background())
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

func TestSaveJson(t *testing.T) {
	d := NewDriver(nil)
	d.Points = 20
	c, err := d.RunAll(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "curves.json")
	require.NoError(t, c.SaveJson(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string][]Curve
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, particle.NumSpecies)
	require.Len(t, got["kD0"], particle.NumHypotheses)
	assert.Equal(t, "mm", got["kD0"][2].Unit)
	assert.Equal(t, 10.0, got["kD0"][2].Momentum)
	assert.Len(t, got["kLambda"][0].Probability, 20)
}
