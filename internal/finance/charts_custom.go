package finance

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vicanso/go-charts/v2"
)

// DrawdownSeries returns the running drawdown of a price series, dated like its input,
// as fractions in (-1, 0].
func DrawdownSeries(s TimeSeries) TimeSeries {
	curve := drawdownCurve(s.Values())
	out := make([]Point, len(curve))
	for i, v := range curve {
		out[i] = Point{Date: s.points[i].Date, Value: v}
	}
	return TimeSeries{Symbol: s.Symbol, points: out}
}

// MakeDrawdownChart renders the underwater curve of both aligned series in percent.
func MakeDrawdownChart(stock, bench TimeSeries) ([]byte, error) {
	if stock.Len() < 2 || bench.Len() < 2 {
		return nil, errors.New("not enough data points")
	}
	if stock.Len() != bench.Len() {
		return nil, errors.Errorf("series not aligned: %d vs %d points", stock.Len(), bench.Len())
	}

	xLabels := make([]string, stock.Len())
	format := "Jan 02"
	if stock.Len() > 60 {
		format = "Jan '06"
	}
	for i, p := range stock.points {
		xLabels[i] = p.Date.Format(format)
	}

	values := make([][]float64, 0, 2)
	names := make([]string, 0, 2)
	gmin := 0.0
	for _, s := range []TimeSeries{stock, bench} {
		curve := drawdownCurve(s.Values())
		pct := make([]float64, len(curve))
		for i, v := range curve {
			pct[i] = v * 100
			if pct[i] < gmin {
				gmin = pct[i]
			}
		}
		values = append(values, pct)
		names = append(names, strings.ToUpper(s.Symbol))
	}
	pad := -gmin * 0.05
	if pad == 0 {
		pad = 1
	}
	yMin := gmin - pad
	yMax := 0.0

	split := 12
	if len(xLabels) <= 30 {
		split = len(xLabels) / 3
		if split < 2 {
			split = 2
		}
	}
	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		seriesList[i].AxisIndex = 0
	}
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Drawdown • "+strings.Join(names, " vs "), "% below running peak"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, errors.Wrap(err, "render drawdown chart")
	}
	return painter.Bytes()
}
