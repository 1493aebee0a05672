package finance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/pkg/errors"
)

var defaultYahooHosts = []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"}

// YahooProvider fetches daily adjusted closes from the Yahoo Finance v8 chart API.
type YahooProvider struct {
	client *http.Client
	hosts  []string
}

// YahooOption configures a YahooProvider.
type YahooOption func(*YahooProvider)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) YahooOption {
	return func(p *YahooProvider) {
		p.client = c
	}
}

// WithHosts overrides the Yahoo base URLs tried in order.
func WithHosts(hosts ...string) YahooOption {
	return func(p *YahooProvider) {
		if len(hosts) > 0 {
			p.hosts = hosts
		}
	}
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) YahooOption {
	return func(p *YahooProvider) {
		if d > 0 {
			p.client = &http.Client{Timeout: d}
		}
	}
}

func NewYahooProvider(opts ...YahooOption) *YahooProvider {
	p := &YahooProvider{
		client: &http.Client{Timeout: 30 * time.Second},
		hosts:  defaultYahooHosts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *YahooProvider) Name() string { return "yahoo" }

// FetchPrices returns the adjusted closes for trading dates in [start, end).
func (p *YahooProvider) FetchPrices(ctx context.Context, symbol string, start, end time.Time) (TimeSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return TimeSeries{}, errors.New("empty symbol")
	}
	if !end.After(start) {
		return TimeSeries{}, errors.Wrapf(ErrNoData, "%s: end %s is not after start %s", symbol, end.Format(dateLayout), start.Format(dateLayout))
	}
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")
	path := fmt.Sprintf("/v8/finance/chart/%s?%s", url.PathEscape(symbol), q.Encode())

	yc, err := fetchChart(ctx, p.client, p.hosts, path, symbol)
	if err != nil {
		return TimeSeries{}, err
	}
	points, err := chartPoints(yc)
	if err != nil {
		return TimeSeries{}, errors.Wrap(err, symbol)
	}
	points = filterPrices(points)
	inRange := points[:0]
	for _, pt := range points {
		if !pt.Date.Before(start) && pt.Date.Before(end) {
			inRange = append(inRange, pt)
		}
	}
	if len(inRange) == 0 {
		return TimeSeries{}, errors.Wrapf(ErrNoData, "%s between %s and %s", symbol, start.Format(dateLayout), end.Format(dateLayout))
	}
	log.Debug().Str("symbol", symbol).Int("points", len(inRange)).Msg("yahoo: fetched daily closes")
	return NewTimeSeries(symbol, inRange), nil
}

// chartPoints pairs timestamps with adjusted closes, falling back to raw closes when Yahoo
// omits the adjclose block. Null entries (non-trading placeholders) are skipped.
func chartPoints(yc *yahooChartResp) ([]Point, error) {
	if len(yc.Chart.Result) == 0 {
		return nil, ErrNoData
	}
	res := yc.Chart.Result[0]
	var closes []*float64
	switch {
	case len(res.Indicators.AdjClose) > 0 && len(res.Indicators.AdjClose[0].AdjClose) > 0:
		closes = res.Indicators.AdjClose[0].AdjClose
	case len(res.Indicators.Quote) > 0:
		closes = res.Indicators.Quote[0].Close
	}
	if len(res.Timestamp) == 0 || len(closes) == 0 {
		return nil, ErrNoData
	}
	loc := exchangeLocation(res.Meta.ExchangeTimezoneName, res.Meta.GmtOffset)
	n := len(res.Timestamp)
	if len(closes) < n {
		n = len(closes)
	}
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if closes[i] == nil {
			continue
		}
		out = append(out, Point{
			Date:  TradingDate(time.Unix(res.Timestamp[i], 0), loc),
			Value: *closes[i],
		})
	}
	return out, nil
}
