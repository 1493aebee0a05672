package finance

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrNoData is returned by a Provider when the symbol/range combination yields no prices.
var ErrNoData = errors.New("no data")

// Provider returns adjusted closing prices for a symbol over [start, end).
type Provider interface {
	Name() string
	FetchPrices(ctx context.Context, symbol string, start, end time.Time) (TimeSeries, error)
}
