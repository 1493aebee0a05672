package finance

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestLogScaleTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   []float64
	}{
		{"flat at one", 1, 1, []float64{0.5, 1, 2}},
		{"around one", 0.8, 1.3, []float64{0.5, 1, 2}},
		{"doubling", 1, 2, []float64{1, 2}},
		{"wide", 0.3, 7, []float64{0.2, 0.5, 1, 2, 5, 10}},
		{"invalid", 0, 2, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logScaleTicks(tt.lo, tt.hi))
		})
	}
}

func TestMakeComparisonChart(t *testing.T) {
	stock := NewTimeSeries("aapl", pointsFrom(day(2024, 1, 2), 100, 104, 99, 110, 118))
	bench := NewTimeSeries("spy", pointsFrom(day(2024, 1, 2), 400, 402, 398, 405, 409))

	img, err := MakeComparisonChart(stock, bench, ChartSize{Width: 600, Height: 300})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = MakeComparisonChart(NewTimeSeries("A", pointsFrom(day(2024, 1, 2), 1)), bench, DefaultChartSize)
	assert.Error(t, err)
}

func TestMakeDrawdownChart(t *testing.T) {
	stock := NewTimeSeries("AAPL", pointsFrom(day(2024, 1, 2), 100, 90, 95, 80, 120))
	bench := NewTimeSeries("SPY", pointsFrom(day(2024, 1, 2), 400, 396, 404, 401, 410))

	img, err := MakeDrawdownChart(stock, bench)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = MakeDrawdownChart(stock, NewTimeSeries("SPY", pointsFrom(day(2024, 1, 2), 400, 396)))
	assert.Error(t, err)
}

func TestDrawdownSeries(t *testing.T) {
	s := NewTimeSeries("X", pointsFrom(day(2024, 1, 2), 100, 120, 90, 130))
	dd := DrawdownSeries(s)
	require.Equal(t, s.Dates(), dd.Dates())
	v := dd.Values()
	assert.Equal(t, 0.0, v[0])
	assert.Equal(t, 0.0, v[1])
	assert.InDelta(t, -0.25, v[2], 1e-12)
	assert.Equal(t, 0.0, v[3])
}
