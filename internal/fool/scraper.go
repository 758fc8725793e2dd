package fool

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/store"
	"earnings-analyzer/internal/types"
)

// transcriptLinkPattern matches earnings-call transcript article links
// and captures the publication date and the quarter/year tokens.
var transcriptLinkPattern = regexp.MustCompile(`/earnings/call-transcripts/(\d{4})/(\d{2})/(\d{2})/.+-q(\d)-(\d{4})-earnings-call-transcript`)

// Scraper locates and downloads earnings-call transcripts from fool.com.
// It implements both the TranscriptLocator and TranscriptFetcher
// collaborator roles.
type Scraper struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	rateLimit time.Duration
}

// NewScraper builds a scraper from configuration.
func NewScraper(cfg *store.Config) *Scraper {
	return &Scraper{
		baseURL:   cfg.Scraper.BaseURL,
		userAgent: cfg.Scraper.UserAgent,
		timeout:   cfg.ScraperTimeout(),
		rateLimit: time.Duration(cfg.Scraper.RateLimitMilli) * time.Millisecond,
	}
}

// transcriptLink is one discovered transcript URL with the tokens
// parsed out of it.
type transcriptLink struct {
	url     string
	date    time.Time
	quarter string
	year    int
}

// FindLatest returns the URL of the most recent transcript for a ticker.
func (s *Scraper) FindLatest(ctx context.Context, ticker string) (string, error) {
	links, err := s.harvestLinks(ctx, ticker)
	if err != nil {
		return "", err
	}
	if len(links) == 0 {
		return "", fmt.Errorf("no transcript links found for %s", ticker)
	}
	// harvestLinks sorts newest first
	return links[0].url, nil
}

// FindByQuarter returns the URL of the transcript for a specific fiscal
// quarter and year.
func (s *Scraper) FindByQuarter(ctx context.Context, ticker, quarter string, year int) (string, error) {
	links, err := s.harvestLinks(ctx, ticker)
	if err != nil {
		return "", err
	}

	want := strings.ToUpper(strings.TrimSpace(quarter))
	for _, link := range links {
		if link.quarter == want && link.year == year {
			return link.url, nil
		}
	}
	return "", fmt.Errorf("no %s %d transcript found for %s", want, year, ticker)
}

// harvestLinks scrapes the ticker's quote page and collects all
// transcript article links, newest first.
func (s *Scraper) harvestLinks(ctx context.Context, ticker string) ([]transcriptLink, error) {
	c := s.newCollector()

	seen := map[string]bool{}
	var links []transcriptLink

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		match := transcriptLinkPattern.FindStringSubmatch(href)
		if match == nil {
			return
		}

		absolute := e.Request.AbsoluteURL(href)
		if seen[absolute] {
			return
		}
		seen[absolute] = true

		date, err := time.Parse("2006/01/02", fmt.Sprintf("%s/%s/%s", match[1], match[2], match[3]))
		if err != nil {
			return
		}
		var year int
		fmt.Sscanf(match[5], "%d", &year)

		links = append(links, transcriptLink{
			url:     absolute,
			date:    date,
			quarter: "Q" + match[4],
			year:    year,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Quote page scrape failed", err, "url", r.Request.URL.String())
	})

	quoteURL := fmt.Sprintf("%s/quote/%s/", s.baseURL, strings.ToLower(ticker))
	if err := c.Visit(quoteURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", quoteURL, err)
	}
	c.Wait()

	sort.Slice(links, func(i, j int) bool {
		return links[i].date.After(links[j].date)
	})

	logger.Info(ctx, "Transcript link harvest completed", "ticker", ticker, "links", len(links))
	return links, nil
}

// Fetch downloads a transcript article and extracts its body text.
func (s *Scraper) Fetch(ctx context.Context, transcriptURL string) (*types.Transcript, error) {
	c := s.newCollector()

	var text string
	c.OnHTML("div.article-body, div.tailwind-article-body, article", func(e *colly.HTMLElement) {
		if text != "" {
			return
		}
		text = extractParagraphs(e.DOM)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Transcript fetch failed", err, "url", r.Request.URL.String())
	})

	if err := c.Visit(transcriptURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", transcriptURL, err)
	}
	c.Wait()

	if text == "" {
		return nil, fmt.Errorf("no transcript body found at %s", transcriptURL)
	}

	return &types.Transcript{
		Symbol: tickerFromURL(transcriptURL),
		URL:    transcriptURL,
		Text:   text,
	}, nil
}

// extractParagraphs joins the paragraph text of an article body,
// dropping boilerplate fragments that are too short to be speech.
func extractParagraphs(sel *goquery.Selection) string {
	var paragraphs []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		if len(t) > 20 {
			paragraphs = append(paragraphs, t)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

// tickerFromURL pulls the ticker token out of a transcript slug when
// present, e.g. ".../2024/01/25/apple-aapl-q1-2024-earnings-call-transcript".
func tickerFromURL(transcriptURL string) string {
	u, err := url.Parse(transcriptURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	slug := strings.Split(parts[len(parts)-1], "-")
	for i, token := range slug {
		if quarterTokenPattern.MatchString(token) && i > 0 {
			return strings.ToUpper(slug[i-1])
		}
	}
	return ""
}

var quarterTokenPattern = regexp.MustCompile(`^q\d$`)

func (s *Scraper) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.MaxDepth(1), colly.Async(false))
	c.SetRequestTimeout(s.timeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", s.userAgent)
	})
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: s.rateLimit})
	return c
}
