package noop

import (
	"context"

	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/types"
)

// NoopScorer is a deterministic fallback scorer used when no model API
// key is configured. It always returns a neutral record.
type NoopScorer struct{}

// NewNoopScorer returns a scorer that never calls out.
func NewNoopScorer() *NoopScorer {
	return &NoopScorer{}
}

// Score implements the SentimentScorer interface with a fixed neutral result.
func (s *NoopScorer) Score(ctx context.Context, text, modelName string) (*types.SentimentRecord, error) {
	logger.Debug(ctx, "Noop scorer called - returns neutral sentiment", "model", modelName)
	return &types.SentimentRecord{
		OverallSentimentScore: 5.0,
		ConfidenceLevel:       0.0,
		KeyThemes:             []string{},
	}, nil
}

// Summarize implements the SentimentScorer interface with a canned assessment.
func (s *NoopScorer) Summarize(ctx context.Context, sentiment *types.SentimentRecord, modelName string) (string, error) {
	return "No model configured; sentiment defaults to neutral.", nil
}
