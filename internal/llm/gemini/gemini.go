package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"google.golang.org/genai"

	"earnings-analyzer/internal/store"
	"earnings-analyzer/internal/types"
)

const scorePrompt = `As a financial analyst, please analyze the following earnings call transcript.
Based on the language, tone, and key topics discussed by the executives, provide a sentiment analysis.
Return your analysis as a JSON object with the following three fields:
1. "overall_sentiment_score": A numerical score from 1 (very negative) to 10 (very positive).
2. "confidence_level": Your confidence in this sentiment score, from 0.0 to 1.0.
3. "key_themes": A JSON list of the top 3-5 most important themes or topics discussed.

Transcript:
---
%s
---
`

const summarizePrompt = `Based on the following sentiment analysis:
Overall Sentiment Score: %.1f/10
Confidence Level: %.2f
Key Themes: %s

Provide a 2-3 sentence qualitative assessment of the executive sentiment during the earnings call. Focus on the overall tone and the implications of the key themes.
`

// Scorer scores transcript sentiment with the Gemini API.
type Scorer struct {
	apiKey      string
	temperature float32
	timeout     time.Duration
}

// NewScorer builds a Gemini-backed scorer from configuration.
func NewScorer(cfg *store.Config) *Scorer {
	return &Scorer{
		apiKey:      cfg.LLMAPIKey(),
		temperature: cfg.LLM.Temperature,
		timeout:     cfg.LLMTimeout(),
	}
}

// Score sends the transcript to the model and decodes the structured
// sentiment record from its JSON response. Model output is repaired
// before decoding since models often wrap JSON in markdown fences.
func (s *Scorer) Score(ctx context.Context, text, modelName string) (*types.SentimentRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("transcript text is empty")
	}

	raw, err := s.generate(ctx, modelName, fmt.Sprintf(scorePrompt, text), true)
	if err != nil {
		return nil, err
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("unusable model response: %w", err)
	}

	var record types.SentimentRecord
	if err := json.Unmarshal([]byte(repaired), &record); err != nil {
		return nil, fmt.Errorf("decode sentiment response: %w", err)
	}
	return &record, nil
}

// Summarize produces a short qualitative assessment of a sentiment record.
func (s *Scorer) Summarize(ctx context.Context, sentiment *types.SentimentRecord, modelName string) (string, error) {
	if sentiment == nil {
		return "", errors.New("no sentiment data to summarize")
	}

	themes := "no specific themes identified"
	if len(sentiment.KeyThemes) > 0 {
		themes = strings.Join(sentiment.KeyThemes, ", ")
	}

	prompt := fmt.Sprintf(summarizePrompt, sentiment.OverallSentimentScore, sentiment.ConfidenceLevel, themes)
	raw, err := s.generate(ctx, modelName, prompt, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *Scorer) generate(ctx context.Context, modelName, prompt string, jsonMode bool) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("Gemini API key missing")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.temperature),
	}
	if jsonMode {
		config.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
