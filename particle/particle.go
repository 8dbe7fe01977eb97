package particle

import (
	"errors"
	"fmt"
	"strings"
)

// Species is a decaying particle (or decay chain) whose survival probability is computed.
type Species int

const (
	// Lambda coming from a Xi- decay. Momentum refers to the Xi.
	LambdaFromXi Species = iota
	// Lambda coming from an Omega- decay. Momentum refers to the Omega.
	LambdaFromOmega
	Lambda
	K0s
	Xi
	Omega
	D0
	Dplus
	DSplus
	LambdaCplus

	// NumSpecies is the size of the enumeration.
	NumSpecies = int(LambdaCplus) + 1
)

// NumHypotheses is the number of momentum hypotheses tested per species.
const NumHypotheses = 3

var (
	// ErrInvalidTag is returned when a user supplied tag matches no species.
	ErrInvalidTag = errors.New("invalid species tag")

	// ErrUnknownSpecies is returned when a Species value is outside the enumeration.
	ErrUnknownSpecies = errors.New("unknown species")
)

var names = [NumSpecies]string{
	"LambdaFromXi",
	"LambdaFromOmega",
	"Lambda",
	"K0s",
	"Xi",
	"Omega",
	"D0",
	"Dplus",
	"DSplus",
	"LambdaCplus",
}

// All returns every species in enumeration order.
func All() []Species {
	all := make([]Species, NumSpecies)
	for i := range all {
		all[i] = Species(i)
	}
	return all
}

// Valid reports whether s belongs to the enumeration.
func (s Species) Valid() bool {
	return s >= 0 && int(s) < NumSpecies
}

// Name is the species name without the tag prefix, e.g. "LambdaFromXi".
func (s Species) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("Species(%d)", int(s))
	}
	return names[s]
}

// Tag is the user facing identifier, e.g. "kLambdaFromXi".
func (s Species) Tag() string {
	return "k" + s.Name()
}

func (s Species) String() string {
	return s.Name()
}

// Parse returns the species matching tag exactly (case-sensitive).
func Parse(tag string) (Species, error) {
	if strings.HasPrefix(tag, "k") {
		for i, name := range names {
			if tag[1:] == name {
				return Species(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
}

// IsCascade reports whether s is a two-step decay chain.
func (s Species) IsCascade() bool {
	return s == LambdaFromXi || s == LambdaFromOmega
}
