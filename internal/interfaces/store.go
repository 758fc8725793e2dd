package interfaces

import (
	"context"

	"earnings-analyzer/internal/types"
)

// CallStore persists analysis records. Implementations return the
// inserted row id where applicable.
type CallStore interface {
	CompanyExists(ctx context.Context, ticker string) (bool, error)
	InsertCompany(ctx context.Context, profile *types.CompanyProfile) error
	InsertCall(ctx context.Context, ticker string, identity types.CallIdentity, transcript *types.Transcript) (int64, error)
	InsertSentiment(ctx context.Context, callID int64, sentiment *types.SentimentRecord) error
	InsertPerformance(ctx context.Context, callID int64, perf *types.StockPerformance) error
	Close()
}
