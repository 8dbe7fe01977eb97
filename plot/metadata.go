package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"survival/particle"
)

// Metadata holds how a species is drawn.
type Metadata struct {
	Color drawing.Color

	// Axis range in display units.
	XMin, XMax float64
	YMax       float64

	XTitle string
	YTitle string

	// Symbol is used in legend entries, Info in the chart title.
	Symbol string
	Info   string

	// Factor converts metres to display units.
	Factor float64
}

var (
	red    = drawing.Color{R: 204, G: 0, B: 0, A: 255}
	orange = drawing.Color{R: 255, G: 153, B: 0, A: 255}
	yellow = drawing.Color{R: 153, G: 153, B: 0, A: 255}
	green  = drawing.Color{R: 0, G: 102, B: 0, A: 255}
	azure  = drawing.Color{R: 0, G: 102, B: 204, A: 255}
	blue   = drawing.Color{R: 0, G: 0, B: 204, A: 255}
	violet = drawing.Color{R: 153, G: 51, B: 204, A: 255}
	gray   = drawing.Color{R: 136, G: 136, B: 136, A: 255}
)

const (
	metreTitle = "L0 (m) at y = 0"
	mmTitle    = "L0 (mm)"
)

var metadata = [particle.NumSpecies]Metadata{
	particle.LambdaFromXi: {
		Color: red, XMin: -0.1, XMax: 2.5, YMax: 0.8, XTitle: metreTitle,
		YTitle: "P_Λ [L > L0, pT(Ξ)]", Symbol: "Ξ-", Info: "Λ from Ξ-", Factor: 1,
	},
	particle.LambdaFromOmega: {
		Color: azure, XMin: -0.1, XMax: 2.5, YMax: 0.8, XTitle: metreTitle,
		YTitle: "P_Λ [L > L0, pT(Ω)]", Symbol: "Ω-", Info: "Λ from Ω-", Factor: 1,
	},
	particle.Lambda: {
		Color: orange, XMin: -0.1, XMax: 2.5, YMax: 1.0, XTitle: metreTitle,
		YTitle: "P_Λ [L > L0, pT(Λ)]", Symbol: "Λ", Info: "primary Λ", Factor: 1,
	},
	particle.K0s: {
		Color: yellow, XMin: -0.1, XMax: 2.0, YMax: 1.0, XTitle: metreTitle,
		YTitle: "P_K0s [L > L0, pT(K0s)]", Symbol: "K0s", Info: "primary K0s", Factor: 1,
	},
	particle.Xi: {
		Color: blue, XMin: -0.1, XMax: 2.0, YMax: 1.0, XTitle: metreTitle,
		YTitle: "P_Ξ [L > L0, pT(Ξ)]", Symbol: "Ξ-", Info: "primary Ξ-", Factor: 1,
	},
	particle.Omega: {
		Color: violet, XMin: -0.1, XMax: 2.0, YMax: 1.0, XTitle: metreTitle,
		YTitle: "P_Ω [L > L0, pT(Ω)]", Symbol: "Ω-", Info: "primary Ω-", Factor: 1,
	},
	particle.D0: {
		Color: blue, XMin: -0.1, XMax: 3, YMax: 1.0, XTitle: mmTitle,
		YTitle: "P_D0 [L > L0, pT(D0)]", Symbol: "D0", Info: "primary D0", Factor: 1000,
	},
	particle.Dplus: {
		Color: violet, XMin: -0.2, XMax: 6, YMax: 1.0, XTitle: mmTitle,
		YTitle: "P_D+ [L > L0, pT(D+)]", Symbol: "D+", Info: "primary D+", Factor: 1000,
	},
	particle.DSplus: {
		Color: orange, XMin: -0.1, XMax: 3, YMax: 1.0, XTitle: mmTitle,
		YTitle: "P_Ds+ [L > L0, pT(Ds+)]", Symbol: "Ds+", Info: "primary Ds+", Factor: 1000,
	},
	particle.LambdaCplus: {
		Color: green, XMin: -0.1, XMax: 1.2, YMax: 1.0, XTitle: mmTitle,
		YTitle: "P_Λc+ [L > L0, pT(Λc+)]", Symbol: "Λc+", Info: "primary Λc+", Factor: 1000,
	},
}

// MetadataOf returns the display metadata of s.
func MetadataOf(s particle.Species) (Metadata, error) {
	if !s.Valid() {
		return Metadata{}, fmt.Errorf("no display metadata for %v: %w", s, particle.ErrUnknownSpecies)
	}
	return metadata[s], nil
}

// dash patterns of the three momentum hypotheses, lowest momentum first
var dashes = [particle.NumHypotheses][]float64{
	{12, 6},
	{6, 4},
	nil,
}

// Marker is a detector boundary drawn as a vertical segment, positions in metres.
type Marker struct {
	X    float64
	YTop float64
}

// Label annotates the detector geometry, positions in metres.
type Label struct {
	X, Y float64
	Text string
}

// Geometry of the inner tracking system and TPC.
var (
	Markers = []Marker{
		{0.029, 0.60},
		{0.039, 0.65}, {0.076, 0.65},
		{0.150, 0.62}, {0.239, 0.62},
		{0.38, 0.63}, {0.43, 0.63},
		{0.848, 0.41},
	}
	Labels = []Label{
		{0.01, 0.52, "Beam pipe"},
		{0.09, 0.66, "SPD 1+2"},
		{0.22, 0.63, "SDD 1+2"},
		{0.43, 0.64, "SSD 1+2"},
		{0.91, 0.35, "TPC"},
	}
)

// markerBottom is where geometry segments start on the y axis.
const markerBottom = 0.02
