package finance

import (
	"context"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/pkg/errors"
)

// Request describes one stock-versus-benchmark run.
type Request struct {
	Stock        string
	Benchmark    string
	Start        time.Time
	End          time.Time
	RiskFreeRate float64 // annual, as a fraction
}

// Validate checks the fields Analyze relies on.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Stock) == "" {
		return errors.New("stock symbol is required")
	}
	if strings.TrimSpace(r.Benchmark) == "" {
		return errors.New("benchmark symbol is required")
	}
	if r.RiskFreeRate < 0 {
		return errors.Errorf("risk-free rate must be non-negative, got %f", r.RiskFreeRate)
	}
	return nil
}

// Analysis is the output of the pipeline: the aligned prices, their returns and the metrics.
type Analysis struct {
	Request          Request
	Stock            TimeSeries
	Benchmark        TimeSeries
	StockReturns     TimeSeries
	BenchmarkReturns TimeSeries
	Metrics          MetricsReport
}

// Analyze fetches both series sequentially, aligns them, derives returns and computes metrics.
// A provider ErrNoData for either symbol is returned wrapped; callers stop the run on it.
func Analyze(ctx context.Context, p Provider, req Request) (*Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	stock, err := p.FetchPrices(ctx, req.Stock, req.Start, req.End)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", req.Stock)
	}
	if stock.Empty() {
		return nil, errors.Wrapf(ErrNoData, "fetch %s", req.Stock)
	}
	bench, err := p.FetchPrices(ctx, req.Benchmark, req.Start, req.End)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", req.Benchmark)
	}
	if bench.Empty() {
		return nil, errors.Wrapf(ErrNoData, "fetch %s", req.Benchmark)
	}
	log.Info().Str("provider", p.Name()).Str("stock", req.Stock).Int("stock_points", stock.Len()).
		Str("benchmark", req.Benchmark).Int("benchmark_points", bench.Len()).Msg("prices fetched")

	return analyzeSeries(req, stock, bench), nil
}

func analyzeSeries(req Request, stock, bench TimeSeries) *Analysis {
	alignedStock, alignedBench := Align(stock, bench)
	if alignedStock.Len() < stock.Len() || alignedBench.Len() < bench.Len() {
		log.Debug().Int("aligned", alignedStock.Len()).Int("stock", stock.Len()).Int("benchmark", bench.Len()).
			Msg("dropped dates missing from one series")
	}
	stockReturns := DailyReturns(alignedStock)
	benchReturns := DailyReturns(alignedBench)
	return &Analysis{
		Request:          req,
		Stock:            alignedStock,
		Benchmark:        alignedBench,
		StockReturns:     stockReturns,
		BenchmarkReturns: benchReturns,
		Metrics: ComputeMetrics(alignedStock.Values(), stockReturns.Values(),
			benchReturns.Values(), req.RiskFreeRate),
	}
}
