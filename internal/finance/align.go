package finance

// Align inner-joins two series on their trading dates. Both results share exactly the same
// date index in chronological order; disjoint inputs produce two empty series.
func Align(a, b TimeSeries) (TimeSeries, TimeSeries) {
	// intersect on unix seconds of the trading date
	inB := make(map[int64]float64, len(b.points))
	for _, p := range b.points {
		inB[p.Date.Unix()] = p.Value
	}
	n := len(a.points)
	if len(b.points) < n {
		n = len(b.points)
	}
	outA := make([]Point, 0, n)
	outB := make([]Point, 0, n)
	for _, p := range a.points {
		v, ok := inB[p.Date.Unix()]
		if !ok {
			continue
		}
		outA = append(outA, p)
		outB = append(outB, Point{Date: p.Date, Value: v})
	}
	return TimeSeries{Symbol: a.Symbol, points: outA}, TimeSeries{Symbol: b.Symbol, points: outB}
}
