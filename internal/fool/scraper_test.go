package fool

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"earnings-analyzer/internal/store"
)

func TestTranscriptLinkPattern(t *testing.T) {
	tests := []struct {
		href    string
		match   bool
		quarter string
		year    string
	}{
		{"/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/", true, "1", "2024"},
		{"/earnings/call-transcripts/2023/10/27/microsoft-msft-q3-2023-earnings-call-transcript/", true, "3", "2023"},
		{"/investing/2024/01/25/why-apple-stock-moved/", false, "", ""},
		{"/earnings/call-transcripts/2024/01/25/not-a-transcript/", false, "", ""},
	}

	for _, tt := range tests {
		m := transcriptLinkPattern.FindStringSubmatch(tt.href)
		if (m != nil) != tt.match {
			t.Errorf("pattern match for %q = %v, want %v", tt.href, m != nil, tt.match)
			continue
		}
		if m == nil {
			continue
		}
		if m[4] != tt.quarter || m[5] != tt.year {
			t.Errorf("captured q%s %s for %q, want q%s %s", m[4], m[5], tt.href, tt.quarter, tt.year)
		}
	}
}

func TestTickerFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.fool.com/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/", "AAPL"},
		{"https://www.fool.com/earnings/call-transcripts/2023/05/04/booking-holdings-bkng-q1-2023-earnings-call-transcript/", "BKNG"},
		{"https://www.fool.com/earnings/call-transcripts/2024/01/25/q1-2024-earnings-call-transcript/", ""},
		{"not a url at all ://", ""},
	}

	for _, tt := range tests {
		if got := tickerFromURL(tt.url); got != tt.want {
			t.Errorf("tickerFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestExtractParagraphs(t *testing.T) {
	html := `<div>
		<p>Operator</p>
		<p>Good afternoon, everyone, and thank you for joining today's call.</p>
		<p>Image source: The Motley Fool.</p>
		<p>Revenue for the quarter came in at 120 billion dollars, up nine percent.</p>
	</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	got := extractParagraphs(doc.Selection)
	if strings.Contains(got, "Operator") {
		t.Error("short boilerplate paragraph should be dropped")
	}
	if !strings.Contains(got, "Revenue for the quarter") {
		t.Errorf("expected body paragraph retained, got %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Error("paragraphs should be joined with blank lines")
	}
}

func testScraper(baseURL string) *Scraper {
	cfg := store.DefaultConfig()
	cfg.Scraper.BaseURL = baseURL
	cfg.Scraper.TimeoutSecond = 5
	cfg.Scraper.RateLimitMilli = 1
	return NewScraper(cfg)
}

func TestFindLatestAndByQuarter(t *testing.T) {
	quotePage := `<html><body>
		<a href="/earnings/call-transcripts/2023/10/27/apple-aapl-q4-2023-earnings-call-transcript/">Q4 2023</a>
		<a href="/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/">Q1 2024</a>
		<a href="/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/">Q1 2024 again</a>
		<a href="/investing/how-to-invest/">unrelated</a>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/quote/aapl/" {
			fmt.Fprint(w, quotePage)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := testScraper(srv.URL)

	latest, err := s.FindLatest(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if !strings.Contains(latest, "q1-2024") {
		t.Errorf("expected newest transcript, got %s", latest)
	}

	byQuarter, err := s.FindByQuarter(context.Background(), "AAPL", "q4", 2023)
	if err != nil {
		t.Fatalf("FindByQuarter failed: %v", err)
	}
	if !strings.Contains(byQuarter, "q4-2023") {
		t.Errorf("expected Q4 2023 transcript, got %s", byQuarter)
	}

	if _, err := s.FindByQuarter(context.Background(), "AAPL", "Q2", 2020); err == nil {
		t.Error("expected an error for a quarter with no transcript")
	}
}

func TestFetch(t *testing.T) {
	article := `<html><body>
		<div class="article-body">
			<p>Prepared Remarks:</p>
			<p>Good afternoon, and welcome to the Apple Q1 fiscal year 2024 earnings conference call.</p>
			<p>We set an all-time revenue record in services during the December quarter.</p>
		</div>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, article)
	}))
	defer srv.Close()

	s := testScraper(srv.URL)

	url := srv.URL + "/earnings/call-transcripts/2024/01/25/apple-aapl-q1-2024-earnings-call-transcript/"
	transcript, err := s.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if transcript.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", transcript.Symbol)
	}
	if transcript.URL != url {
		t.Errorf("unexpected URL: %s", transcript.URL)
	}
	if !strings.Contains(transcript.Text, "all-time revenue record") {
		t.Errorf("expected body text, got %q", transcript.Text)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="sidebar"><p>Nothing here worth reading today.</p></div></body></html>`)
	}))
	defer srv.Close()

	s := testScraper(srv.URL)
	if _, err := s.Fetch(context.Background(), srv.URL+"/some-article/"); err == nil {
		t.Error("expected an error when no article body is present")
	}
}
