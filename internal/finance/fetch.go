package finance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/phuslu/log"
	"github.com/pkg/errors"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// fetchChart requests path on each host in turn and decodes the first usable chart response.
// Hosts are tried once each; a Yahoo "not found" answer stops the rotation with ErrNoData.
func fetchChart(ctx context.Context, client *http.Client, hosts []string, path, symbol string) (*yahooChartResp, error) {
	var lastErr error
	for _, host := range hosts {
		yc, err := fetchChartFrom(ctx, client, host, path, symbol)
		if err == nil {
			return yc, nil
		}
		if errors.Is(err, ErrNoData) || ctx.Err() != nil {
			return nil, err
		}
		log.Warn().Str("host", host).Str("symbol", symbol).Err(err).Msg("yahoo: host failed")
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no yahoo hosts configured")
	}
	return nil, lastErr
}

func fetchChartFrom(ctx context.Context, client *http.Client, host, path, symbol string) (*yahooChartResp, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(host, "/")+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build yahoo request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://finance.yahoo.com/quote/"+strings.ToUpper(symbol)+"/history")
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "yahoo %s", host)
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, errors.Wrap(readErr, "failed to read yahoo response")
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, errors.Errorf("yahoo %s returned 429: Edge: Too Many Requests", host)
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, errors.Errorf("yahoo returned non-json body: %s", preview(body))
	}
	var yc yahooChartResp
	if err := json.Unmarshal(body, &yc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse yahoo json; body: %s", preview(body))
	}
	if e := yc.Chart.Error; e != nil {
		switch e.Code {
		case "Not Found", "Bad Request":
			return nil, errors.Wrapf(ErrNoData, "%s: %s", symbol, e.Description)
		}
		return nil, errors.Errorf("yahoo %s api error %s: %s", host, e.Code, e.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview(body))
	}
	return &yc, nil
}

func preview(body []byte) string {
	p := string(body)
	if len(p) > 120 {
		p = p[:120]
	}
	return p
}
