package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/store"
	"earnings-analyzer/internal/types"
)

// Client talks to the Financial Modeling Prep REST API for company
// profiles and historical daily prices.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds an FMP client from configuration. The API key is
// resolved once at construction.
func NewClient(cfg *store.Config) *Client {
	return &Client{
		baseURL: cfg.FMP.BaseURL,
		apiKey:  cfg.FMPAPIKey(),
		http:    &http.Client{Timeout: cfg.FMPTimeout()},
	}
}

type fmpProfile struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
}

type fmpHistorical struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// GetProfile fetches the company profile for a ticker.
func (c *Client) GetProfile(ctx context.Context, ticker string) (*types.CompanyProfile, error) {
	var profiles []fmpProfile
	if err := c.getJSON(ctx, "/profile/"+url.PathEscape(ticker), &profiles); err != nil {
		return nil, fmt.Errorf("fmp profile %s: %w", ticker, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile for %s", ticker)
	}

	p := profiles[0]
	return &types.CompanyProfile{
		Symbol:      p.Symbol,
		CompanyName: p.CompanyName,
		Sector:      p.Sector,
		Industry:    p.Industry,
	}, nil
}

// GetHistory fetches daily closing prices for a ticker, returned in
// ascending date order. FMP serves the series newest-first; rows with
// unparseable dates are skipped.
func (c *Client) GetHistory(ctx context.Context, ticker string) ([]types.PricePoint, error) {
	var resp fmpHistorical
	if err := c.getJSON(ctx, "/historical-price-full/"+url.PathEscape(ticker), &resp); err != nil {
		return nil, fmt.Errorf("fmp historical %s: %w", ticker, err)
	}

	series := make([]types.PricePoint, 0, len(resp.Historical))
	for _, h := range resp.Historical {
		t, err := time.Parse("2006-01-02", h.Date)
		if err != nil {
			logger.Debug(ctx, "Skipping price row with bad date", "ticker", ticker, "date", h.Date)
			continue
		}
		series = append(series, types.PricePoint{Date: t, Close: h.Close})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return errors.New("FMP API key missing")
	}

	u := fmt.Sprintf("%s%s?apikey=%s", c.baseURL, path, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fmp http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
