package interfaces

import (
	"context"

	"earnings-analyzer/internal/types"
)

// TranscriptLocator discovers earnings-call transcript URLs for a ticker.
type TranscriptLocator interface {
	// FindLatest returns the URL of the most recent transcript.
	FindLatest(ctx context.Context, ticker string) (string, error)

	// FindByQuarter returns the URL of the transcript for a specific
	// fiscal quarter and year.
	FindByQuarter(ctx context.Context, ticker, quarter string, year int) (string, error)
}

// TranscriptFetcher downloads and extracts the transcript text at a URL.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, url string) (*types.Transcript, error)
}
