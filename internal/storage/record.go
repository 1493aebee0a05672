package storage

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"stockRisk/internal/finance"
)

type recorder struct {
	finance.Provider
	store *Store
}

// Recording wraps p so every series it returns is also saved to the store. Save failures are
// logged and do not fail the fetch.
func (s *Store) Recording(p finance.Provider) finance.Provider {
	return &recorder{Provider: p, store: s}
}

func (r *recorder) FetchPrices(ctx context.Context, symbol string, start, end time.Time) (finance.TimeSeries, error) {
	series, err := r.Provider.FetchPrices(ctx, symbol, start, end)
	if err != nil || series.Empty() {
		return series, err
	}
	if err := r.store.SavePrices(ctx, series); err != nil {
		log.Warn().Str("symbol", symbol).Err(err).Msg("sqlite: could not record prices")
	}
	return series, nil
}
