package fmp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"earnings-analyzer/internal/store"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Setenv("FMP_API_KEY_TEST", "test-key")
	cfg := store.DefaultConfig()
	cfg.FMP.BaseURL = baseURL
	cfg.FMP.APIKeyEnv = "FMP_API_KEY_TEST"
	return NewClient(cfg)
}

func TestGetProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/AAPL" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `[{"symbol":"AAPL","companyName":"Apple Inc.","sector":"Technology","industry":"Consumer Electronics"}]`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	profile, err := c.GetProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}

	if profile.Symbol != "AAPL" || profile.CompanyName != "Apple Inc." {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if profile.Sector != "Technology" || profile.Industry != "Consumer Electronics" {
		t.Errorf("unexpected classification: %+v", profile)
	}
}

func TestGetProfileEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	if _, err := c.GetProfile(context.Background(), "ZZZZ"); err == nil {
		t.Error("expected an error for an unknown ticker")
	}
}

func TestGetHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/historical-price-full/AAPL" {
			http.NotFound(w, r)
			return
		}
		// FMP serves newest first; one row has a malformed date
		fmt.Fprint(w, `{"symbol":"AAPL","historical":[
			{"date":"2024-01-26","close":194.17},
			{"date":"not-a-date","close":0},
			{"date":"2024-01-25","close":194.50}
		]}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	series, err := c.GetHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("expected bad-date row skipped, got %d rows", len(series))
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Error("expected ascending date order")
	}
	if series[0].Close != 194.50 {
		t.Errorf("expected oldest close first, got %v", series[0].Close)
	}
}

func TestGetJSONErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	if _, err := c.GetProfile(context.Background(), "AAPL"); err == nil {
		t.Error("expected an error on a non-2xx status")
	}

	c.apiKey = ""
	if _, err := c.GetProfile(context.Background(), "AAPL"); err == nil {
		t.Error("expected an error when the API key is missing")
	}
}
