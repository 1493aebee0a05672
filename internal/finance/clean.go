package finance

import "math"

// filterPrices removes points whose price is negative, NaN or infinite.
func filterPrices(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Value < 0 || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// percentile returns the p-th quantile (0..1) of an ascending slice,
// interpolating linearly between the two nearest order statistics.
func percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	if p <= 0 {
		return vals[0]
	}
	if p >= 1 {
		return vals[len(vals)-1]
	}
	pos := p * float64(len(vals)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(vals) {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo]*(1-frac) + vals[hi]*frac
}
