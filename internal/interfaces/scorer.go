package interfaces

import (
	"context"

	"earnings-analyzer/internal/types"
)

// SentimentScorer maps transcript text to a structured sentiment record
// using a language model identified by modelName.
type SentimentScorer interface {
	Score(ctx context.Context, text, modelName string) (*types.SentimentRecord, error)

	// Summarize turns a sentiment record into a short free-text
	// qualitative assessment.
	Summarize(ctx context.Context, sentiment *types.SentimentRecord, modelName string) (string, error)
}
