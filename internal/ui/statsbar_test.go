package ui

import (
	"testing"

	"epi-ca/internal/sims/epidemic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsCoverWidth(t *testing.T) {
	stats := epidemic.Statistics{Healthy: 1, Sick: 1, Immune: 1, Dead: 0}
	segs := Segments(stats, 100)
	require.Len(t, segs, 3)

	x := 0
	for _, seg := range segs {
		assert.Equal(t, x, seg.X)
		x += seg.Width
	}
	assert.Equal(t, 100, x)
	assert.Equal(t, epidemic.Immune, segs[2].State)
}

func TestSegmentsSkipEmptyStates(t *testing.T) {
	segs := Segments(epidemic.Statistics{Dead: 10}, 40)
	assert.Equal(t, []Segment{{State: epidemic.Dead, X: 0, Width: 40}}, segs)
}

func TestSegmentsEmpty(t *testing.T) {
	assert.Nil(t, Segments(epidemic.Statistics{}, 40))
	assert.Nil(t, Segments(epidemic.Statistics{Healthy: 3}, 0))
}

func TestStatusLines(t *testing.T) {
	lines := StatusLines(7, epidemic.Statistics{Healthy: 3, Sick: 1})
	require.Len(t, lines, 5)
	assert.Equal(t, "tick 7", lines[0])
	assert.Contains(t, lines[2], "25.0%")
}
