package finance

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
)

// ChartSize is the rendered image size in pixels.
type ChartSize struct {
	Width  int
	Height int
}

var DefaultChartSize = ChartSize{Width: 1200, Height: 600}

// MakeComparisonChart renders both price series normalized to 1.0 on a logarithmic y-axis.
// The axis is drawn in log10 space with ticks labelled in growth-of-1 units.
func MakeComparisonChart(stock, bench TimeSeries, size ChartSize) ([]byte, error) {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultChartSize
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	var series []chart.Series
	for _, s := range []TimeSeries{Normalize(stock), Normalize(bench)} {
		ts := chart.TimeSeries{Name: strings.ToUpper(s.Symbol)}
		for _, p := range s.points {
			if p.Value <= 0 || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
				continue
			}
			ts.XValues = append(ts.XValues, p.Date)
			ts.YValues = append(ts.YValues, math.Log10(p.Value))
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
		if len(ts.XValues) < 2 {
			return nil, errors.Errorf("%s: not enough data points", s.Symbol)
		}
		series = append(series, ts)
	}

	tickValues := logScaleTicks(lo, hi)
	ticks := make([]chart.Tick, len(tickValues))
	for i, v := range tickValues {
		ticks[i] = chart.Tick{Value: math.Log10(v), Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}

	graph := chart.Chart{
		Title:  strings.ToUpper(stock.Symbol) + " vs " + strings.ToUpper(bench.Symbol) + " • normalized",
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(dateLayout),
		},
		YAxis: chart.YAxis{
			Name:  "growth of 1 (log scale)",
			Range: &chart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value},
			Ticks: ticks,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render comparison chart")
	}
	return buf.Bytes(), nil
}

// logScaleTicks returns 1-2-5 tick values that bracket [lo, hi], both positive.
func logScaleTicks(lo, hi float64) []float64 {
	if !(lo > 0) || math.IsInf(hi, 0) || hi < lo {
		return []float64{1}
	}
	mantissas := []float64{1, 2, 5}
	var out []float64
	for exp := int(math.Floor(math.Log10(lo))) - 1; exp <= int(math.Ceil(math.Log10(hi))); exp++ {
		scale := math.Pow(10, float64(exp))
		for _, m := range mantissas {
			// round away float noise such as 0.30000000000000004
			v, _ := strconv.ParseFloat(strconv.FormatFloat(m*scale, 'g', 12, 64), 64)
			out = append(out, v)
		}
	}
	first, last := 0, len(out)-1
	for i, v := range out {
		if v <= lo {
			first = i
		}
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] >= hi {
			last = i
		}
	}
	if last <= first {
		// flat series; keep one step either side so the axis has a span
		if first > 0 {
			first--
		}
		last = first + 2
		if last > len(out)-1 {
			last = len(out) - 1
		}
	}
	return out[first : last+1]
}
