package analysis

import (
	"context"
	"fmt"
	"strings"

	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/types"
)

// AnalyzeToReport runs a full analysis and flattens the result into a
// single report row, enriched with a qualitative assessment from the
// summarizer. Returns nil when the underlying analysis failed.
func (a *Analyzer) AnalyzeToReport(ctx context.Context, ticker, quarter string, year int, modelName string) *types.ReportRow {
	result := a.Analyze(ctx, ticker, quarter, year, modelName)
	if result == nil {
		return nil
	}

	row := &types.ReportRow{
		SentimentModel: result.ModelName,
		CallDate:       result.CallDate,
		Quarter:        result.Quarter,
	}
	if result.Profile != nil {
		row.Ticker = result.Profile.Symbol
		row.CompanyName = result.Profile.CompanyName
		row.Sector = result.Profile.Sector
		row.Industry = result.Profile.Industry
	}
	if result.Sentiment != nil {
		row.OverallSentimentScore = result.Sentiment.OverallSentimentScore
		row.SentimentConfidence = result.Sentiment.ConfidenceLevel
		row.KeyThemes = strings.Join(result.Sentiment.KeyThemes, ", ")

		assessment, err := a.scorer.Summarize(ctx, result.Sentiment, result.ModelName)
		if err != nil {
			logger.Warn(ctx, "Could not generate qualitative assessment", "ticker", ticker, "error", err)
		} else {
			row.QualitativeAssessment = assessment
		}
	}
	if result.StockPerformance != nil {
		row.PriceAtCall = result.StockPerformance.PriceAtCall
		row.Performance1Week = result.StockPerformance.Performance1Week
		row.Performance1Month = result.StockPerformance.Performance1Month
		row.Performance3Month = result.StockPerformance.Performance3Month
	}
	return row
}

// FormatReport renders a report row as an aligned two-column text table.
func FormatReport(row *types.ReportRow) string {
	if row == nil {
		return ""
	}

	fields := []struct {
		label string
		value string
	}{
		{"Ticker", row.Ticker},
		{"Company Name", row.CompanyName},
		{"Sector", row.Sector},
		{"Industry", row.Industry},
		{"Sentiment Model", row.SentimentModel},
		{"Overall Sentiment Score", fmt.Sprintf("%.1f", row.OverallSentimentScore)},
		{"Sentiment Confidence", fmt.Sprintf("%.2f", row.SentimentConfidence)},
		{"Key Themes", row.KeyThemes},
		{"Qualitative Assessment", row.QualitativeAssessment},
		{"Price at Call", formatPrice(row.PriceAtCall)},
		{"1 Week Performance", formatPct(row.Performance1Week)},
		{"1 Month Performance", formatPct(row.Performance1Month)},
		{"3 Month Performance", formatPct(row.Performance3Month)},
		{"Call Date", row.CallDate},
		{"Quarter", row.Quarter},
	}

	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%-24s %s\n", f.label+":", f.value)
	}
	return b.String()
}

func formatPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *v*100)
}
