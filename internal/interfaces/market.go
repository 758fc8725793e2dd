package interfaces

import (
	"context"

	"earnings-analyzer/internal/types"
)

// ProfileSource fetches company metadata for a ticker.
type ProfileSource interface {
	GetProfile(ctx context.Context, ticker string) (*types.CompanyProfile, error)
}

// PriceHistorySource fetches daily closing prices for a ticker,
// ordered by date ascending.
type PriceHistorySource interface {
	GetHistory(ctx context.Context, ticker string) ([]types.PricePoint, error)
}
