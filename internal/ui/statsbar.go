// Package ui draws the side panel and overlays of the windowed front end.
package ui

import (
	"fmt"

	"epi-ca/internal/sims/epidemic"
)

// Segment is one coloured run of the population bar.
type Segment struct {
	State epidemic.HealthState
	X     int
	Width int
}

// Segments splits a bar of the given pixel width between the health states in
// proportion to their counts. Widths always add up to width and empty states
// are omitted.
func Segments(stats epidemic.Statistics, width int) []Segment {
	total := stats.Total()
	if total == 0 || width <= 0 {
		return nil
	}
	var out []Segment
	cum := 0
	x := 0
	for _, s := range epidemic.States {
		cum += stats.Count(s)
		end := (cum*width + total/2) / total
		if end > x {
			out = append(out, Segment{State: s, X: x, Width: end - x})
		}
		x = end
	}
	return out
}

// StatusLines renders the population breakdown as one line per state.
func StatusLines(tick int, stats epidemic.Statistics) []string {
	lines := make([]string, 0, len(epidemic.States)+1)
	lines = append(lines, fmt.Sprintf("tick %d", tick))
	for _, s := range epidemic.States {
		lines = append(lines, fmt.Sprintf("%-8s %6d %5.1f%%", s, stats.Count(s), 100*stats.Fraction(s)))
	}
	return lines
}
