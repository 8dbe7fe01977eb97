// Package config reads run settings from an INI style file.
//
//	[sampling]
//	points = 500
//	tolerance = 1e-6
//	workers = 8
//	progressevery = 40
//
//	[output]
//	dir = plots
//	width = 1024
//	height = 768
//	json = true
//
//	[toymc]
//	events = 100000
//	seed = 1
//	weight = 1
//	weight = 2
//	weight = 1
package config

import (
	"fmt"
	"runtime"

	"gopkg.in/gcfg.v1"

	"survival/particle"
)

type Sampling struct {
	Points        int
	Tolerance     float64
	Workers       int
	ProgressEvery int
}

type Output struct {
	Dir    string
	Width  int
	Height int
	Json   bool
}

// ToyMC enables the Monte Carlo cross-check when Events > 0.
type ToyMC struct {
	Events int
	Seed   int64
	Weight []int
}

// Config holds all settings of a run.
type Config struct {
	Sampling Sampling
	Output   Output
	ToyMC    ToyMC
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		Sampling: Sampling{
			Points:        500,
			Tolerance:     1e-6,
			Workers:       runtime.NumCPU(),
			ProgressEvery: 40,
		},
		Output: Output{
			Dir:    ".",
			Width:  1024,
			Height: 768,
		},
		ToyMC: ToyMC{Seed: 1},
	}
}

// Read loads path over the defaults and validates the result.
func Read(path string) (Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(&c, path); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return c, c.Validate()
}

// ReadString is Read for in-memory content.
func ReadString(content string) (Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(&c, content); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks that all values are usable.
func (c Config) Validate() error {
	if c.Sampling.Points < 1 {
		return fmt.Errorf("sampling points must be positive, got %d", c.Sampling.Points)
	}
	if !(c.Sampling.Tolerance > 0) {
		return fmt.Errorf("sampling tolerance must be positive, got %g", c.Sampling.Tolerance)
	}
	if c.Sampling.Workers < 1 {
		return fmt.Errorf("sampling workers must be positive, got %d", c.Sampling.Workers)
	}
	if c.Sampling.ProgressEvery < 0 {
		return fmt.Errorf("progress interval must not be negative, got %d", c.Sampling.ProgressEvery)
	}
	if c.Output.Width < 1 || c.Output.Height < 1 {
		return fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.ToyMC.Events < 0 {
		return fmt.Errorf("toymc events must not be negative, got %d", c.ToyMC.Events)
	}
	if n := len(c.ToyMC.Weight); n != 0 && n != particle.NumHypotheses {
		return fmt.Errorf("toymc needs %d weights, got %d", particle.NumHypotheses, n)
	}
	var total int
	for _, w := range c.ToyMC.Weight {
		if w < 0 {
			return fmt.Errorf("toymc weights must not be negative, got %v", c.ToyMC.Weight)
		}
		total += w
	}
	if len(c.ToyMC.Weight) > 0 && total == 0 {
		return fmt.Errorf("toymc weights are all zero")
	}
	return nil
}

// Weights returns the toy momentum weights, equal when none are configured.
func (t ToyMC) Weights() [particle.NumHypotheses]uint {
	out := [particle.NumHypotheses]uint{1, 1, 1}
	if len(t.Weight) == particle.NumHypotheses {
		for i, w := range t.Weight {
			out[i] = uint(w)
		}
	}
	return out
}
