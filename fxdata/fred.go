package fxdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// FREDBaseURL is the St. Louis Fed data API host.
const FREDBaseURL = "https://api.stlouisfed.org/fred"

// FedFundsSeries is the daily effective federal funds rate series ID.
const FedFundsSeries = "DFF"

// FREDClient fetches interest rate observations from the FRED API.
type FREDClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewFREDClient(apiKey string, timeout time.Duration) *FREDClient {
	return &FREDClient{
		baseURL: FREDBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type fredObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"` // "." when the value is missing
}

type fredResponse struct {
	Observations []fredObservation `json:"observations"`
}

// LatestRate returns the most recent observation of the series, in percent.
// Missing observations (value ".") are skipped.
func (c *FREDClient) LatestRate(ctx context.Context, seriesID string) (float64, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "desc")
	params.Set("limit", "10")

	u := fmt.Sprintf("%s/series/observations?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("FRED API returned status %d: %s", resp.StatusCode, body)
	}

	var fr fredResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	for _, obs := range fr.Observations {
		if obs.Value == "." || obs.Value == "" {
			continue
		}
		rate, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			return 0, fmt.Errorf("bad observation value %q on %s: %w", obs.Value, obs.Date, err)
		}
		return rate, nil
	}
	return 0, fmt.Errorf("no usable observations for series %s", seriesID)
}
