package finance

import (
	"sort"
	"strings"
	"time"
)

// Point is a single dated observation. Date is the trading date at UTC midnight.
type Point struct {
	Date  time.Time
	Value float64
}

// TimeSeries is an ordered, duplicate-free sequence of dated values.
// It holds either prices or returns and is never mutated once built.
type TimeSeries struct {
	Symbol string
	points []Point
}

// NewTimeSeries sorts points by date and drops duplicate dates, keeping the last value seen.
func NewTimeSeries(symbol string, points []Point) TimeSeries {
	cp := make([]Point, len(points))
	copy(cp, points)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Date.Before(cp[j].Date) })
	out := make([]Point, 0, len(cp))
	for _, p := range cp {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return TimeSeries{Symbol: symbol, points: out}
}

func (s TimeSeries) Len() int { return len(s.points) }

func (s TimeSeries) Empty() bool { return len(s.points) == 0 }

// Points returns a copy of the underlying points.
func (s TimeSeries) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Values returns the series values in date order.
func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Value
	}
	return out
}

// Dates returns the series dates in order.
func (s TimeSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.points))
	for i, p := range s.points {
		out[i] = p.Date
	}
	return out
}

// First and Last return the boundary points; ok is false on an empty series.
func (s TimeSeries) First() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[0], true
}

func (s TimeSeries) Last() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// TradingDate truncates t to its calendar date in loc and returns it at UTC midnight.
func TradingDate(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// yahooChartResp mirrors Yahoo v8 chart response (trimmed to needed fields)
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				GmtOffset            int    `json:"gmtoffset"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}
