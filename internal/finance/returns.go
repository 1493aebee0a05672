package finance

// DailyReturns converts prices into period-over-period fractional returns. Each return is
// dated at the later of its two prices, so the first price has no entry.
func DailyReturns(s TimeSeries) TimeSeries {
	if len(s.points) < 2 {
		return TimeSeries{Symbol: s.Symbol, points: []Point{}}
	}
	out := make([]Point, len(s.points)-1)
	for i := 1; i < len(s.points); i++ {
		prev := s.points[i-1].Value
		out[i-1] = Point{
			Date:  s.points[i].Date,
			Value: (s.points[i].Value - prev) / prev,
		}
	}
	return TimeSeries{Symbol: s.Symbol, points: out}
}

// Normalize rescales a price series so that it starts at 1.0.
// A zero first price yields non-finite values.
func Normalize(s TimeSeries) TimeSeries {
	out := make([]Point, len(s.points))
	if len(s.points) == 0 {
		return TimeSeries{Symbol: s.Symbol, points: out}
	}
	base := s.points[0].Value
	for i, p := range s.points {
		out[i] = Point{Date: p.Date, Value: p.Value / base}
	}
	return TimeSeries{Symbol: s.Symbol, points: out}
}

// returnsOf is DailyReturns over bare values.
func returnsOf(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	return out
}
