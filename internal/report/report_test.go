package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"epi-ca/internal/sims/epidemic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory() *History {
	h := NewHistory()
	h.Observe(0, nil, epidemic.Statistics{Healthy: 99, Sick: 1}, 0)
	h.Observe(1, nil, epidemic.Statistics{Healthy: 91, Sick: 8, Immune: 1}, 0)
	h.Observe(2, nil, epidemic.Statistics{Healthy: 70, Sick: 20, Immune: 9, Dead: 1}, 0)
	h.Observe(3, nil, epidemic.Statistics{Healthy: 60, Sick: 10, Immune: 28, Dead: 2}, 0)
	return h
}

func TestHistorySeries(t *testing.T) {
	h := sampleHistory()
	require.Equal(t, 4, h.Len())

	ticks, counts := h.Series()
	assert.Equal(t, []float64{0, 1, 2, 3}, ticks)
	assert.Equal(t, []float64{1, 8, 20, 10}, counts[epidemic.Sick])
	assert.Equal(t, []float64{0, 0, 1, 2}, counts[epidemic.Dead])
	assert.Len(t, counts, 4)
	assert.Equal(t, 2, h.Samples()[2].Tick)
}

func TestRenderChartProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := ChartOptions{Title: "test", Width: 320, Height: 200}
	require.NoError(t, RenderChart(&buf, sampleHistory(), opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderChartNeedsTwoSamples(t *testing.T) {
	h := NewHistory()
	h.Observe(0, nil, epidemic.Statistics{Healthy: 4}, 0)
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderChart(&buf, h, DefaultChartOptions()), ErrNotEnoughSamples)
	assert.Zero(t, buf.Len())
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, WriteChart(path, sampleHistory(), ChartOptions{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, DefaultChartOptions().Width, cfg.Width)
}

func TestWriteChartNeedsTwoSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	h := NewHistory()
	h.Observe(0, nil, epidemic.Statistics{Healthy: 4}, 0)

	assert.ErrorIs(t, WriteChart(path, h, DefaultChartOptions()), ErrNotEnoughSamples)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file is created for a curve that cannot be drawn")
}
