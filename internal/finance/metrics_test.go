package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeta_IdenticalSeries(t *testing.T) {
	r := []float64{0.01, -0.02, 0.015, 0.003, -0.007}
	assert.Equal(t, 1.0, Beta(r, r))
}

func TestBeta_ScaledStock(t *testing.T) {
	bench := []float64{0.01, -0.02, 0.015, 0.003, -0.007}
	stock := make([]float64, len(bench))
	for i, b := range bench {
		stock[i] = 2 * b
	}
	assert.InDelta(t, 2.0, Beta(stock, bench), 1e-12)
}

func TestBeta_Degenerate(t *testing.T) {
	tests := []struct {
		name         string
		stock, bench []float64
	}{
		{"empty", nil, nil},
		{"single point", []float64{0.1}, []float64{0.2}},
		{"stock short", []float64{0.1}, []float64{0.2, 0.1}},
		{"length mismatch", []float64{0.1, 0.2, 0.3}, []float64{0.2, 0.1}},
		{"flat benchmark", []float64{0.1, 0.2, 0.3}, []float64{0.01, 0.01, 0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Beta(tt.stock, tt.bench))
		})
	}
}

func TestAlpha(t *testing.T) {
	r := []float64{0.01, -0.02, 0.015, 0.003, -0.007}
	assert.Equal(t, 0.0, Alpha(r, r, 0))
	assert.InDelta(t, 0.0, Alpha(r, r, 0.03), 1e-12)

	bench := []float64{0.01, -0.01, 0.02, 0.0}
	stock := []float64{0.011, -0.009, 0.021, 0.001} // bench + 0.001 every day, beta 1
	assert.InDelta(t, 0.001*TradingDaysPerYear, Alpha(stock, bench, 0.02), 1e-9)

	assert.Equal(t, 0.0, Alpha([]float64{0.1}, []float64{0.1}, 0.02))
	assert.Equal(t, 0.0, Alpha(nil, bench, 0.02))
}

func TestValueAtRisk(t *testing.T) {
	returns := []float64{0.05, -0.03, 0.01, -0.10, 0.02, 0.00, -0.01, 0.04, -0.05, 0.03}
	// sorted: -0.10 -0.05 -0.03 -0.01 0 0.01 0.02 0.03 0.04 0.05
	// 5th percentile: pos 0.45 -> -0.10 + 0.45*0.05
	assert.InDelta(t, -0.0775, ValueAtRisk(returns, 5), 1e-12)
	// 1st percentile: pos 0.09 -> -0.10 + 0.09*0.05
	assert.InDelta(t, -0.0955, ValueAtRisk(returns, 1), 1e-12)
	assert.GreaterOrEqual(t, ValueAtRisk(returns, 5), ValueAtRisk(returns, 1))
	assert.InDelta(t, 0.005, ValueAtRisk(returns, 50), 1e-12)

	assert.Equal(t, 0.0, ValueAtRisk(nil, 5))
	assert.Equal(t, 0.07, ValueAtRisk([]float64{0.07}, 5))
}

func TestValueAtRisk_DoesNotReorderInput(t *testing.T) {
	returns := []float64{0.03, -0.01, 0.02}
	ValueAtRisk(returns, 5)
	assert.Equal(t, []float64{0.03, -0.01, 0.02}, returns)
}

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, 0.03}
	// mean 0.02, population stddev 0.01
	assert.InDelta(t, 2.0, SharpeRatio(returns, 0), 1e-12)

	rf := 0.0252 // 0.0001 per day
	assert.InDelta(t, (0.02-0.0001)/0.01, SharpeRatio(returns, rf), 1e-9)

	assert.Equal(t, 0.0, SharpeRatio(nil, 0))
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.05}, 0))
}

func TestConstantGrowthScenario(t *testing.T) {
	prices := NewTimeSeries("X", pointsFrom(day(2024, 1, 2), 100, 110, 121))
	returns := DailyReturns(prices).Values()

	assert.Equal(t, []float64{0.10, 0.10}, returns)
	assert.Equal(t, 0.0, Volatility(returns))

	sharpe := SharpeRatio(returns, 0)
	assert.True(t, math.IsInf(sharpe, 1), "zero-variance returns should give +Inf, got %v", sharpe)
}

func TestVolatility(t *testing.T) {
	assert.InDelta(t, 0.01, Volatility([]float64{0.01, 0.03}), 1e-12)
	assert.InDelta(t, 2.0, Volatility([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.Equal(t, 0.0, Volatility([]float64{0.4}))
	assert.Equal(t, 0.0, Volatility(nil))
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"halving", []float64{100, 50}, -0.5},
		{"monotone decline", []float64{100, 90, 80, 70, 60, 50}, -0.5},
		{"rising", []float64{100, 101, 105, 120}, 0},
		{"peak then trough", []float64{100, 120, 90, 130, 117}, -0.25},
		{"single price", []float64{100}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.prices), 1e-12)
		})
	}
	assert.Equal(t, -0.5, MaxDrawdown([]float64{100, 50}))
}

func TestMaxDrawdown_Bounds(t *testing.T) {
	series := [][]float64{
		{10, 9.5, 11, 3, 4, 12, 0.5},
		{1, 2, 3, 4},
		{50, 49.9, 49.8},
		{0.01, 1000, 0.02},
	}
	for _, prices := range series {
		dd := MaxDrawdown(prices)
		assert.LessOrEqual(t, dd, 0.0)
		assert.Greater(t, dd, -1.0)
	}
}

func TestComputeMetrics_Insufficient(t *testing.T) {
	m := ComputeMetrics(nil, nil, nil, 0.02)
	assert.Equal(t, MetricsReport{}, m)
	assert.False(t, m.Sufficient())

	m = ComputeMetrics([]float64{100, 101}, []float64{0.01}, []float64{0.02}, 0.02)
	assert.Equal(t, 0.0, m.Beta)
	assert.Equal(t, 0.0, m.Alpha)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Equal(t, 0.0, m.Volatility)
	assert.Equal(t, 0.01, m.VaR95)
	assert.Equal(t, 1, m.Observations)
}
