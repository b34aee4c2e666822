// Package fxdata fetches spot rates, interest rates and PPP references from
// their live sources and substitutes documented fallbacks when a source is
// unavailable. The core algorithm never talks to the network directly; it
// sees only the tagged values this package hands it.
package fxdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rustyeddy/fxhedge/market"
)

// YahooBaseURL is the Yahoo Finance chart API host.
const YahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches FX quotes from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient returns a client against the public Yahoo host.
func NewYahooClient(timeout time.Duration) *YahooClient {
	return &YahooClient{
		baseURL: YahooBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"` // null on market holidays
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *YahooClient) getChart(ctx context.Context, symbol string, params url.Values) (*chartResponse, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chart API returned status %d: %s", resp.StatusCode, body)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart API returned no result for %s", symbol)
	}
	return &chart, nil
}

// CurrentRate returns the latest spot rate for the symbol: the regular
// market price when quoted, otherwise the previous close, otherwise the
// last historical close.
func (c *YahooClient) CurrentRate(ctx context.Context, symbol string) (float64, error) {
	params := url.Values{}
	params.Set("range", "2d")
	params.Set("interval", "1d")

	chart, err := c.getChart(ctx, symbol, params)
	if err != nil {
		return 0, err
	}

	result := chart.Chart.Result[0]
	if p := result.Meta.RegularMarketPrice; p > 0 {
		return p, nil
	}
	if p := result.Meta.PreviousClose; p > 0 {
		return p, nil
	}

	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] != nil && *closes[i] > 0 {
				return *closes[i], nil
			}
		}
	}
	return 0, fmt.Errorf("no usable price for %s", symbol)
}

// HistoricalSeries fetches daily closes covering the last days calendar
// days. Null closes (holidays) are skipped, so the series may hold fewer
// observations than days.
func (c *YahooClient) HistoricalSeries(ctx context.Context, symbol string, days int) (market.RateSeries, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", start.Unix()))
	params.Set("period2", fmt.Sprintf("%d", end.Unix()))
	params.Set("interval", "1d")

	chart, err := c.getChart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("timestamp/close length mismatch (%d vs %d)", len(result.Timestamp), len(closes))
	}

	series := make(market.RateSeries, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		series = append(series, market.RatePoint{
			Time: time.Unix(ts, 0).UTC(),
			Rate: *closes[i],
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no observations returned for %s", symbol)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("fetched series invalid: %w", err)
	}
	return series, nil
}
