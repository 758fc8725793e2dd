package types

import "time"

// CompanyProfile is a snapshot of company metadata fetched per analysis run.
type CompanyProfile struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"company_name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
}

// Transcript holds the full text of one earnings call and where it came from.
type Transcript struct {
	Symbol string `json:"symbol"`
	URL    string `json:"url"`
	Text   string `json:"text"`
}

// CallIdentity is the resolved date and fiscal quarter of an earnings call.
// CallDate is nil when neither explicit parameters nor the source URL
// yielded a usable date; Quarter is "Unknown" in that case.
type CallIdentity struct {
	CallDate *time.Time `json:"call_date"`
	Quarter  string     `json:"quarter"`
	Year     *int       `json:"year"`
}

// SentimentRecord is the structured output of the sentiment scoring model.
// Fields are decoded tolerantly: a model response missing any of them
// leaves the zero value rather than failing the run.
type SentimentRecord struct {
	OverallSentimentScore float64  `json:"overall_sentiment_score"`
	ConfidenceLevel       float64  `json:"confidence_level"`
	KeyThemes             []string `json:"key_themes"`
}

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceWindow holds the anchor price and the forward-sampled prices.
// A nil field means no qualifying point existed in the series.
type PriceWindow struct {
	PriceAtCall *float64 `json:"price_at_call"`
	Price1Week  *float64 `json:"price_1_week"`
	Price1Month *float64 `json:"price_1_month"`
	Price3Month *float64 `json:"price_3_month"`
}

// StockPerformance combines the price window with fractional forward returns.
// Each Performance* field is present iff its corresponding price is present
// and the anchor price is nonzero.
type StockPerformance struct {
	PriceAtCall       *float64 `json:"price_at_call"`
	Price1Week        *float64 `json:"price_1_week"`
	Price1Month       *float64 `json:"price_1_month"`
	Price3Month       *float64 `json:"price_3_month"`
	Performance1Week  *float64 `json:"performance_1_week"`
	Performance1Month *float64 `json:"performance_1_month"`
	Performance3Month *float64 `json:"performance_3_month"`
}

// AnalysisResult is the consolidated output of one analysis run.
type AnalysisResult struct {
	Profile          *CompanyProfile   `json:"profile"`
	Sentiment        *SentimentRecord  `json:"sentiment"`
	StockPerformance *StockPerformance `json:"stock_performance"`
	ModelName        string            `json:"model_name"`
	CallDate         string            `json:"call_date"`
	Quarter          string            `json:"quarter"`
}

// ReportRow is one AnalysisResult flattened into fixed report columns.
type ReportRow struct {
	Ticker                string   `json:"ticker"`
	CompanyName           string   `json:"company_name"`
	Sector                string   `json:"sector"`
	Industry              string   `json:"industry"`
	SentimentModel        string   `json:"sentiment_model"`
	OverallSentimentScore float64  `json:"overall_sentiment_score"`
	SentimentConfidence   float64  `json:"sentiment_confidence"`
	KeyThemes             string   `json:"key_themes"`
	QualitativeAssessment string   `json:"qualitative_assessment"`
	PriceAtCall           *float64 `json:"price_at_call"`
	Performance1Week      *float64 `json:"performance_1_week"`
	Performance1Month     *float64 `json:"performance_1_month"`
	Performance3Month     *float64 `json:"performance_3_month"`
	CallDate              string   `json:"call_date"`
	Quarter               string   `json:"quarter"`
}
