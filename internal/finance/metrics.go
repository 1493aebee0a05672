package finance

import (
	"math"
	"sort"
)

// TradingDaysPerYear is the annualization convention for daily returns.
const TradingDaysPerYear = 252.0

// MetricsReport holds the risk/return figures of one run. A value of 0 stands in for
// "undefined" when fewer than two observations were available (see Observations).
type MetricsReport struct {
	Beta         float64
	Alpha        float64
	VaR95        float64
	VaR99        float64
	SharpeRatio  float64
	Volatility   float64
	MaxDrawdown  float64
	Observations int // aligned return points the figures were computed from
}

// Sufficient reports whether the figures were computed from at least two observations.
func (m MetricsReport) Sufficient() bool { return m.Observations >= 2 }

// ComputeMetrics derives every figure of the report from aligned stock prices and the aligned
// stock and benchmark returns.
func ComputeMetrics(stockPrices, stockReturns, benchReturns []float64, riskFree float64) MetricsReport {
	return MetricsReport{
		Beta:         Beta(stockReturns, benchReturns),
		Alpha:        Alpha(stockReturns, benchReturns, riskFree),
		VaR95:        ValueAtRisk(stockReturns, 5),
		VaR99:        ValueAtRisk(stockReturns, 1),
		SharpeRatio:  SharpeRatio(stockReturns, riskFree),
		Volatility:   Volatility(stockReturns),
		MaxDrawdown:  MaxDrawdown(stockPrices),
		Observations: len(stockReturns),
	}
}

// Beta is the sample covariance of stock and benchmark returns over the sample variance of the
// benchmark. Returns 0 with fewer than two points, mismatched lengths or a flat benchmark.
func Beta(stock, bench []float64) float64 {
	if len(stock) < 2 || len(bench) < 2 || len(stock) != len(bench) {
		return 0
	}
	variance := covariance(bench, bench)
	if variance == 0 {
		return 0
	}
	return covariance(stock, bench) / variance
}

// Alpha is the CAPM residual of annualized mean returns:
// stockAnn - (rf + beta*(benchAnn - rf)).
func Alpha(stock, bench []float64, riskFree float64) float64 {
	if len(stock) < 2 || len(bench) < 2 {
		return 0
	}
	stockAnn := mean(stock) * TradingDaysPerYear
	benchAnn := mean(bench) * TradingDaysPerYear
	return stockAnn - (riskFree + Beta(stock, bench)*(benchAnn-riskFree))
}

// ValueAtRisk returns the pct-th percentile (0..100) of the return distribution, e.g. 5 for
// 95% VaR. Returns 0 on empty input.
func ValueAtRisk(returns []float64, pct float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	vals := make([]float64, len(returns))
	copy(vals, returns)
	sort.Float64s(vals)
	return percentile(vals, pct/100)
}

// SharpeRatio is the mean daily excess return over its population standard deviation, with the
// annual risk-free rate spread over 252 days. Constant returns divide by zero and give ±Inf or
// NaN, which is passed through.
func SharpeRatio(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	daily := riskFree / TradingDaysPerYear
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - daily
	}
	return mean(excess) / popStdDev(excess)
}

// Volatility is the population standard deviation of returns.
func Volatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return popStdDev(returns)
}

// MaxDrawdown compounds the period returns of prices into a growth factor starting at 1 and
// returns the deepest fall below its running peak, in (-1, 0].
func MaxDrawdown(prices []float64) float64 {
	curve := drawdownCurve(prices)
	worst := 0.0
	for _, dd := range curve {
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// drawdownCurve returns (growth - peak)/peak for each price, the first entry being 0.
func drawdownCurve(prices []float64) []float64 {
	if len(prices) < 2 {
		return make([]float64, len(prices))
	}
	out := make([]float64, 0, len(prices))
	growth, peak := 1.0, 1.0
	out = append(out, 0)
	for _, r := range returnsOf(prices) {
		growth *= 1 + r
		if growth > peak {
			peak = growth
		}
		out = append(out, (growth-peak)/peak)
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// popStdDev uses the N divisor.
func popStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// covariance is the sample covariance (N-1 divisor); covariance(x, x) is the sample variance.
func covariance(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(n-1)
}
