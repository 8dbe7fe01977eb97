// Package plot draws survival probability curves with detector geometry markers.
package plot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"survival/curve"
	"survival/particle"
)

// Format selects what happens with the rendered chart.
type Format int

const (
	// Display renders in memory only.
	Display Format = iota
	// Vector exports an SVG file.
	Vector
	// Raster exports a PNG file.
	Raster
)

// ErrNoCurves is returned when a requested species is missing from the collection.
var ErrNoCurves = errors.New("no curves for species")

// Ext is the file extension of f, empty for Display.
func (f Format) Ext() string {
	switch f {
	case Vector:
		return "svg"
	case Raster:
		return "png"
	}
	return ""
}

func (f Format) provider() chart.RendererProvider {
	if f == Vector {
		return chart.SVG
	}
	return chart.PNG
}

// FileName returns SurvivalProba-<tag1>-<tag2>.<ext>. tag2 may be empty.
func FileName(tag1, tag2 string, f Format) string {
	return fmt.Sprintf("SurvivalProba-%s-%s.%s", tag1, tag2, f.Ext())
}

// Request describes one chart: the first species sets axes and geometry
// scale, an optional second one is overlaid.
type Request struct {
	Species []particle.Species
	Curves  curve.Collection
	Width   int
	Height  int
}

// Build assembles the chart for req.
func Build(req Request) (chart.Chart, error) {
	if len(req.Species) == 0 || len(req.Species) > 2 {
		return chart.Chart{}, fmt.Errorf("plot needs one or two species, got %d", len(req.Species))
	}

	first, err := MetadataOf(req.Species[0])
	if err != nil {
		return chart.Chart{}, err
	}

	title := "Survival probability of " + first.Info
	yTitle := first.YTitle

	var series []chart.Series
	for n, s := range req.Species {
		meta, err := MetadataOf(s)
		if err != nil {
			return chart.Chart{}, err
		}
		curves, ok := req.Curves[s]
		if !ok {
			return chart.Chart{}, fmt.Errorf("%w %v", ErrNoCurves, s)
		}
		if n == 1 {
			title += " and " + meta.Info
			yTitle = meta.YTitle + " or " + yTitle
		}
		for i, c := range curves {
			series = append(series, chart.ContinuousSeries{
				Name:    fmt.Sprintf("pT(%s) = %.1f GeV/c", meta.Symbol, c.Momentum),
				XValues: c.Distance,
				YValues: c.Probability,
				Style: chart.Style{
					StrokeColor:     meta.Color,
					StrokeWidth:     2,
					StrokeDashArray: dashes[i],
				},
			})
		}
	}

	// the legend only lists the momentum curves
	legend := chart.Chart{Series: series}

	series = append(series, geometry(first)...)

	c := chart.Chart{
		Title:  title,
		Width:  req.Width,
		Height: req.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  first.XTitle,
			Range: &chart.ContinuousRange{Min: first.XMin, Max: first.XMax},
		},
		YAxis: chart.YAxis{
			Name:  yTitle,
			Range: &chart.ContinuousRange{Min: 0, Max: first.YMax},
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&legend)}
	return c, nil
}

// geometry returns the detector markers and labels inside the x range of meta.
func geometry(meta Metadata) []chart.Series {
	style := chart.Style{StrokeColor: gray, StrokeWidth: 1}

	var series []chart.Series
	for _, m := range Markers {
		x := m.X * meta.Factor
		if x < meta.XMin || x > meta.XMax {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{x, x},
			YValues: []float64{markerBottom, m.YTop},
			Style:   style,
		})
	}

	var notes []chart.Value2
	for _, l := range Labels {
		x := l.X * meta.Factor
		if x < meta.XMin || x > meta.XMax {
			continue
		}
		notes = append(notes, chart.Value2{XValue: x, YValue: l.Y, Label: l.Text})
	}
	if len(notes) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: notes})
	}
	return series
}

// Render draws req into w.
func Render(w io.Writer, f Format, req Request) error {
	c, err := Build(req)
	if err != nil {
		return err
	}
	if err := c.Render(f.provider(), w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// Save renders req into dir under FileName and returns the written path.
func Save(dir, tag1, tag2 string, f Format, req Request) (string, error) {
	if f == Display {
		return "", fmt.Errorf("display format has no file")
	}
	path := filepath.Join(dir, FileName(tag1, tag2, f))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = Render(file, f, req)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
