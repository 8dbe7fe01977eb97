// Package app runs a complete survival probability computation and renders one chart.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"survival/config"
	"survival/curve"
	"survival/decay"
	"survival/particle"
	"survival/plot"
	"survival/toymc"
)

// Status codes returned by Run.
const (
	StatusOK             = 1
	StatusInvalidTag     = -3
	StatusInvalidMode    = -4
	StatusSampling       = -10
	StatusUnknownSpecies = -11
	StatusOutput         = -12
)

// Options of a run. Species2 may be empty.
type Options struct {
	Species1 string
	Species2 string
	Mode     plot.Format
	Config   config.Config
	Logger   *zap.SugaredLogger
}

// Run validates the species tags, computes every curve and renders the
// requested species. Nothing is computed when validation fails.
func Run(ctx context.Context, opts Options) int {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cfg := opts.Config

	species, err := selection(opts.Species1, opts.Species2)
	if err != nil {
		log.Errorw("invalid display choice", "error", err)
		return StatusInvalidTag
	}
	if opts.Mode < plot.Display || opts.Mode > plot.Raster {
		log.Errorw("invalid output mode", "mode", int(opts.Mode))
		return StatusInvalidMode
	}
	log.Infow("display choice valid", "part1", opts.Species1, "part2", opts.Species2)

	driver := curve.NewDriver(log)
	driver.Points = cfg.Sampling.Points
	driver.Workers = cfg.Sampling.Workers
	driver.Sampler.Every = cfg.Sampling.ProgressEvery
	driver.Sampler.Model.RelTol = cfg.Sampling.Tolerance

	curves, err := driver.RunAll(ctx)
	if err != nil {
		log.Errorw("computing probabilities failed", "error", err)
		return StatusSampling
	}
	log.Infow("probabilities computed", "species", len(curves), "points", driver.Points)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Errorw("creating output directory", "dir", cfg.Output.Dir, "error", err)
		return StatusOutput
	}

	if cfg.Output.Json {
		path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("SurvivalProba-%s-%s.json", opts.Species1, opts.Species2))
		if err := curves.SaveJson(path); err != nil {
			log.Errorw("saving curves", "path", path, "error", err)
			return StatusOutput
		}
		log.Infow("curves saved", "path", path)
	}

	if cfg.ToyMC.Events > 0 {
		if err := crossCheck(log, cfg.ToyMC, driver.Sampler.Model, species, curves); err != nil {
			log.Errorw("toy cross-check failed", "error", err)
			return StatusSampling
		}
	}

	req := plot.Request{
		Species: species,
		Curves:  curves,
		Width:   cfg.Output.Width,
		Height:  cfg.Output.Height,
	}

	if opts.Mode == plot.Display {
		var buf bytes.Buffer
		err = plot.Render(&buf, plot.Raster, req)
		if err == nil {
			log.Infow("chart rendered", "bytes", buf.Len())
		}
	} else {
		var path string
		path, err = plot.Save(cfg.Output.Dir, opts.Species1, opts.Species2, opts.Mode, req)
		if err == nil {
			log.Infow("chart saved", "path", path)
		}
	}
	if err != nil {
		log.Errorw("drawing failed", "error", err)
		if errors.Is(err, particle.ErrUnknownSpecies) {
			return StatusUnknownSpecies
		}
		return StatusOutput
	}
	return StatusOK
}

// selection parses the requested tags; tag2 may be empty.
func selection(tag1, tag2 string) ([]particle.Species, error) {
	first, err := particle.Parse(tag1)
	if err != nil {
		return nil, fmt.Errorf("1st species: %w", err)
	}
	if tag2 == "" {
		return []particle.Species{first}, nil
	}
	second, err := particle.Parse(tag2)
	if err != nil {
		return nil, fmt.Errorf("2nd species: %w", err)
	}
	return []particle.Species{first, second}, nil
}

// crossCheck compares toy decays with the weighted analytic curves of every
// displayed species on the grid of its first curve.
func crossCheck(log *zap.SugaredLogger, cfg config.ToyMC, model decay.Model, species []particle.Species, curves curve.Collection) error {
	for _, s := range species {
		c, ok := curves.Curve(s, 0)
		if !ok {
			return fmt.Errorf("no curve for %v", s)
		}
		kin, err := particle.KinematicsOf(s)
		if err != nil {
			return err
		}

		metres := make([]float64, c.Len())
		for i, l := range c.Distance {
			metres[i] = l / kin.Factor
		}

		g := toymc.New(cfg.Events, cfg.Seed)
		g.Weights = cfg.Weights()
		g.Model = model
		dev, err := g.MaxDeviation(s, metres)
		if err != nil {
			return err
		}
		log.Infow("toy cross-check", "species", s.Name(), "events", cfg.Events, "max_deviation", dev)
	}
	return nil
}
