package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"epi-ca/internal/sims/epidemic"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughSamples is returned when fewer than two ticks were recorded.
var ErrNotEnoughSamples = errors.New("report: need at least two samples to draw a curve")

// ChartOptions sizes the rendered image.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// DefaultChartOptions returns a landscape layout.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Title: "Epidemic curve", Width: 960, Height: 480}
}

// RenderChart draws one line per health state as a PNG.
func RenderChart(w io.Writer, h *History, opts ChartOptions) error {
	if h.Len() < 2 {
		return ErrNotEnoughSamples
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultChartOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	ticks, counts := h.Series()
	series := make([]chart.Series, 0, len(epidemic.States))
	for _, s := range epidemic.States {
		c := s.Color()
		series = append(series, chart.ContinuousSeries{
			Name:    s.String(),
			XValues: ticks,
			YValues: counts[s],
			Style: chart.Style{
				StrokeColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A},
				StrokeWidth: 2.5,
			},
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "tick",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "cells",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// WriteChart renders the chart into the file at path.
func WriteChart(path string, h *History, opts ChartOptions) error {
	if h.Len() < 2 {
		return ErrNotEnoughSamples
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := RenderChart(f, h, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
