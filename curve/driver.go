package curve

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"survival/particle"
)

// DefaultPoints is the number of grid points per curve.
const DefaultPoints = 500

// Curve is the sampled survival probability of one species at one momentum hypothesis.
// Distances are expressed in Unit.
type Curve struct {
	Species  particle.Species `json:"-"`
	Index    int              `json:"index"`
	Momentum float64          `json:"momentum"`
	Unit     string           `json:"unit"`
	Grid
}

// Collection holds the three curves of every species.
type Collection map[particle.Species][particle.NumHypotheses]Curve

// Curve returns the curve of species s for momentum hypothesis i.
func (c Collection) Curve(s particle.Species, i int) (Curve, bool) {
	curves, ok := c[s]
	if !ok || i < 0 || i >= particle.NumHypotheses {
		return Curve{}, false
	}
	return curves[i], true
}

// Driver samples every species at every momentum hypothesis.
type Driver struct {
	Sampler *Sampler
	Points  int
	Workers int
	Logger  *zap.SugaredLogger
}

// NewDriver returns a driver sampling DefaultPoints per curve on all CPUs.
// Sampler progress is logged at debug level.
func NewDriver(logger *zap.SugaredLogger) *Driver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	d := &Driver{
		Points:  DefaultPoints,
		Workers: runtime.NumCPU(),
		Logger:  logger,
	}
	d.Sampler = NewSampler(d.logProgress)
	return d
}

func (d *Driver) logProgress(p Progress) {
	d.Logger.Debugw("sampling",
		"species", p.Species.Name(),
		"momentum", p.Momentum,
		"point", p.Index,
		"lo", p.Distance,
		"proba", p.Probability,
	)
}

type job struct {
	species particle.Species
	index   int
	kin     particle.Kinematics
}

// RunAll samples all species and momentum hypotheses. Any failure aborts the
// whole run and is returned.
func (d *Driver) RunAll(ctx context.Context) (Collection, error) {
	var jobs []job
	for _, s := range particle.All() {
		kin, err := particle.KinematicsOf(s)
		if err != nil {
			return nil, err
		}
		for i := 0; i < particle.NumHypotheses; i++ {
			jobs = append(jobs, job{species: s, index: i, kin: kin})
		}
	}

	results := make([]Curve, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}
	for n, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := d.run(j)
			if err != nil {
				return err
			}
			results[n] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(Collection, particle.NumSpecies)
	for _, c := range results {
		curves := out[c.Species]
		curves[c.Index] = c
		out[c.Species] = curves
	}
	return out, nil
}

func (d *Driver) run(j job) (Curve, error) {
	p := j.kin.Momenta[j.index]
	d.Logger.Debugw("particle", "species", j.species.Name(), "case", j.index, "momentum", p)

	grid, err := d.Sampler.Sample(j.species, p, j.kin.LoMax, d.Points)
	if err != nil {
		return Curve{}, err
	}

	// probabilities are computed in metres; only the axis moves to display units
	if j.kin.Factor != 1 {
		floats.Scale(j.kin.Factor, grid.Distance)
	}

	return Curve{
		Species:  j.species,
		Index:    j.index,
		Momentum: p,
		Unit:     j.kin.Unit,
		Grid:     grid,
	}, nil
}

// SaveJson writes the collection to path, keyed by species tag.
func (c Collection) SaveJson(path string) error {
	out := make(map[string][]Curve, len(c))
	for s, curves := range c {
		out[s.Tag()] = curves[:]
	}
	data, err := json.MarshalIndent(out, "", " ")
	if err != nil {
		return fmt.Errorf("encoding curves: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
