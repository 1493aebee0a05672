// Package report renders an Analysis as the plain-text risk report.
package report

import (
	"fmt"
	"io"
	"strings"

	"stockRisk/internal/finance"
)

const insufficient = "  (insufficient data)"

type line struct {
	label string
	value float64
	// minimum aligned return observations for the figure to be measured
	need int
}

func lines(m finance.MetricsReport) []line {
	return []line{
		{"Beta", m.Beta, 2},
		{"Alpha", m.Alpha, 2},
		{"VaR 95%", m.VaR95, 1},
		{"VaR 99%", m.VaR99, 1},
		{"Sharpe Ratio", m.SharpeRatio, 2},
		{"Volatility", m.Volatility, 2},
		{"Maximum Drawdown", m.MaxDrawdown, 1},
	}
}

// Metrics formats the seven figures in their fixed order, four decimals each.
func Metrics(m finance.MetricsReport) string {
	var b strings.Builder
	for _, l := range lines(m) {
		fmt.Fprintf(&b, "%-18s %.4f", l.label+":", l.value)
		if m.Observations < l.need {
			b.WriteString(insufficient)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary describes the aligned sample the metrics were computed from.
func Summary(a *finance.Analysis) string {
	first, ok := a.Stock.First()
	if !ok {
		return fmt.Sprintf("%s vs %s: no common trading days", a.Request.Stock, a.Request.Benchmark)
	}
	last, _ := a.Stock.Last()
	return fmt.Sprintf("%s vs %s: %d aligned trading days, %s to %s, risk-free rate %.4f",
		a.Stock.Symbol, a.Benchmark.Symbol, a.Stock.Len(),
		first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"), a.Request.RiskFreeRate)
}

// Text is the full report: summary line followed by the metrics block.
func Text(a *finance.Analysis) string {
	return Summary(a) + "\n" + Metrics(a.Metrics)
}

func Write(w io.Writer, a *finance.Analysis) error {
	_, err := io.WriteString(w, Text(a))
	return err
}
