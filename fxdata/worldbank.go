package fxdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WorldBankBaseURL is the World Bank open data API host.
const WorldBankBaseURL = "https://api.worldbank.org/v2"

// pppIndicator is the PPP conversion factor indicator (LCU per
// international $).
const pppIndicator = "PA.NUS.PPP"

// WorldBankClient fetches PPP fair-value references from the World Bank API.
type WorldBankClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewWorldBankClient(timeout time.Duration) *WorldBankClient {
	return &WorldBankClient{
		baseURL: WorldBankBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type wbRecord struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// PPPConversionFactor returns the latest available PPP conversion factor for
// the country (ISO2 code, e.g. "MY"). The API answers with a two-element
// JSON array: metadata first, records second, newest first; years without a
// value carry null.
func (c *WorldBankClient) PPPConversionFactor(ctx context.Context, country string) (float64, error) {
	u := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&date=2020:2024&per_page=10",
		c.baseURL, country, pppIndicator)

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
		return 0, fmt.Errorf("World Bank API returned status %d: %s", resp.StatusCode, body)
	}

	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope) < 2 {
		return 0, fmt.Errorf("unexpected World Bank payload shape")
	}

	var records []wbRecord
	if err := json.Unmarshal(envelope[1], &records); err != nil {
		return 0, fmt.Errorf("decode records: %w", err)
	}

	for _, rec := range records {
		if rec.Value != nil && *rec.Value > 0 {
			return *rec.Value, nil
		}
	}
	return 0, fmt.Errorf("no PPP value available for %s", country)
}
