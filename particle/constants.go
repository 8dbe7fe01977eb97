package particle

import "fmt"

// Constant is a measured property pair of an elementary species.
type Constant struct {
	// Rest mass in GeV/c^2.
	Mass float64 `json:"mass"`

	// Mean decay length c*tau in metres.
	CTau float64 `json:"ctau"`
}

// Chain describes a cascade: Mother decays into Daughter, which carries
// Sharing times the mother momentum.
type Chain struct {
	Mother   Species `json:"mother"`
	Daughter Species `json:"daughter"`
	Sharing  float64 `json:"sharing"`
}

// Kinematics of a single species.
type Kinematics struct {
	// Momenta are the tested momentum hypotheses in GeV/c.
	// For cascades they refer to the mother.
	Momenta [NumHypotheses]float64

	// LoMax is the upper end of the flight distance grid in metres.
	LoMax float64

	// Factor converts metres to the display unit.
	Factor float64
	Unit   string
}

var constants = map[Species]Constant{
	Omega:       {Mass: 1.67245, CTau: 0.02461},
	Xi:          {Mass: 1.32171, CTau: 0.0491},
	Lambda:      {Mass: 1.115683, CTau: 0.0789},
	K0s:         {Mass: 0.497614, CTau: 0.026844},
	D0:          {Mass: 1.86486, CTau: 122.9e-6},
	Dplus:       {Mass: 1.86962, CTau: 311.8e-6},
	DSplus:      {Mass: 1.96849, CTau: 149.9e-6},
	LambdaCplus: {Mass: 2.28646, CTau: 59.9e-6},
}

// Sharing factors are calibrated values and are kept as they are.
var chains = map[Species]Chain{
	LambdaFromXi:    {Mother: Xi, Daughter: Lambda, Sharing: 0.85},
	LambdaFromOmega: {Mother: Omega, Daughter: Lambda, Sharing: 0.66},
}

var kinematics = [NumSpecies]Kinematics{
	LambdaFromXi:    {Momenta: [3]float64{1.0, 3.0, 8.0}, LoMax: 2.5, Factor: 1, Unit: "m"},
	LambdaFromOmega: {Momenta: [3]float64{1.0, 3.0, 8.0}, LoMax: 2.5, Factor: 1, Unit: "m"},
	Lambda:          {Momenta: [3]float64{0.5, 3.0, 5.0}, LoMax: 2.5, Factor: 1, Unit: "m"},
	K0s:             {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 2.0, Factor: 1, Unit: "m"},
	Xi:              {Momenta: [3]float64{0.5, 0.8, 1.0}, LoMax: 2.0, Factor: 1, Unit: "m"},
	Omega:           {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 2.0, Factor: 1, Unit: "m"},
	D0:              {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 0.003, Factor: 1000, Unit: "mm"},
	Dplus:           {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 0.006, Factor: 1000, Unit: "mm"},
	DSplus:          {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 0.003, Factor: 1000, Unit: "mm"},
	LambdaCplus:     {Momenta: [3]float64{2.0, 5.0, 10.0}, LoMax: 0.0012, Factor: 1000, Unit: "mm"},
}

// Constants returns mass and decay length of an elementary species.
// Cascades have no constants of their own, see Cascade.
func Constants(s Species) (Constant, error) {
	c, ok := constants[s]
	if !ok {
		return Constant{}, fmt.Errorf("no constants for %v: %w", s, ErrUnknownSpecies)
	}
	return c, nil
}

// Cascade returns the decay chain of s, if s is a cascade.
func Cascade(s Species) (Chain, bool) {
	c, ok := chains[s]
	return c, ok
}

// KinematicsOf returns momentum hypotheses, grid range and display unit of s.
func KinematicsOf(s Species) (Kinematics, error) {
	if !s.Valid() {
		return Kinematics{}, fmt.Errorf("no kinematics for %v: %w", s, ErrUnknownSpecies)
	}
	return kinematics[s], nil
}
