package finance

import "time"

// exchangeLocation resolves the exchange timezone reported by Yahoo, falling back to the fixed
// gmtoffset when tzdata is missing or the name is empty.
func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if gmtOffset == 0 {
		return time.UTC
	}
	return time.FixedZone("EXCH", gmtOffset)
}
