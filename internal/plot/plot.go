// Package plot renders the per-timeslice volume profile as an XY line
// chart, encoded as PNG or SVG into an arbitrary sink.
package plot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/cdtplus/volprof/internal/profile"
)

// Format selects the image encoding for a rendered chart.
type Format int

const (
	PNG Format = iota
	SVG
)

// Chart defaults. Axis labels and title follow the simulation's
// conventions for volume profiles.
const (
	DefaultTitle  = "Volume Profile"
	DefaultWidth  = 1024
	DefaultHeight = 512

	xAxisName = "Timeslice"
	yAxisName = "Volume (spacelike faces)"
)

// Options control chart geometry and labeling. Zero values fall back to
// the package defaults.
type Options struct {
	Title  string
	Width  int
	Height int
	Format Format
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// FormatForPath picks the encoding from a filename extension. Anything
// other than .svg renders as PNG.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return SVG
	}
	return PNG
}

// Render draws the series as a line chart with grid lines on both axes
// and encodes it into w. Empty and single-point series still render: the
// series is padded to the two X values go-chart requires, with the pad
// invisible for the empty case so the chart shows bare axes.
func Render(w io.Writer, s profile.Series, opts Options) error {
	opts = opts.withDefaults()

	xs, ys := points(s)
	style := chart.Style{}
	if s.Len() == 0 {
		style.StrokeColor = drawing.ColorTransparent
		style.DotColor = drawing.ColorTransparent
	}

	grid := chart.Style{
		StrokeColor: chart.ColorAlternateGray,
		StrokeWidth: 1.0,
	}
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           xAxisName,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           yAxisName,
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Volume",
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}

	encoding := chart.PNG
	if opts.Format == SVG {
		encoding = chart.SVG
	}
	if err := graph.Render(encoding, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// points converts the integer series to float coordinates, padding to at
// least two values.
func points(s profile.Series) ([]float64, []float64) {
	xs := make([]float64, 0, len(s.Timevalues))
	ys := make([]float64, 0, len(s.Volume))
	for i := range s.Timevalues {
		xs = append(xs, float64(s.Timevalues[i]))
		ys = append(ys, float64(s.Volume[i]))
	}
	switch len(xs) {
	case 0:
		return []float64{0, 1}, []float64{0, 0}
	case 1:
		return []float64{xs[0], xs[0] + 1}, []float64{ys[0], ys[0]}
	}
	return xs, ys
}
