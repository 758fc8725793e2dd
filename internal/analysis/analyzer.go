package analysis

import (
	"context"

	"earnings-analyzer/internal/interfaces"
	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/types"
)

// DefaultModelName is the scoring model used when the caller does not
// name one.
const DefaultModelName = "gemini-2.5-flash"

// Analyzer sequences one end-to-end earnings call analysis: profile
// lookup, transcript retrieval, date resolution, sentiment scoring,
// price alignment, performance calculation, and persistence.
type Analyzer struct {
	profiles    interfaces.ProfileSource
	locator     interfaces.TranscriptLocator
	transcripts interfaces.TranscriptFetcher
	scorer      interfaces.SentimentScorer
	prices      interfaces.PriceHistorySource
	store       interfaces.CallStore
}

// Deps wires all collaborators into the analyzer.
type Deps struct {
	Profiles    interfaces.ProfileSource
	Locator     interfaces.TranscriptLocator
	Transcripts interfaces.TranscriptFetcher
	Scorer      interfaces.SentimentScorer
	Prices      interfaces.PriceHistorySource
	Store       interfaces.CallStore
}

// New constructs the analyzer. Store may be nil, in which case
// persistence is skipped entirely.
func New(deps Deps) *Analyzer {
	return &Analyzer{
		profiles:    deps.Profiles,
		locator:     deps.Locator,
		transcripts: deps.Transcripts,
		scorer:      deps.Scorer,
		prices:      deps.Prices,
		store:       deps.Store,
	}
}

// Analyze performs a full analysis for a ticker. Quarter and year are
// optional; when both are given that specific call is analyzed,
// otherwise the latest one. Returns nil when a required stage fails;
// a non-nil result may still carry absent sub-fields. No error crosses
// this boundary.
func (a *Analyzer) Analyze(ctx context.Context, ticker, quarter string, year int, modelName string) *types.AnalysisResult {
	if modelName == "" {
		modelName = DefaultModelName
	}
	logger.Info(ctx, "Starting analysis", "ticker", ticker, "model", modelName)

	profile := a.fetchProfile(ctx, ticker)
	if profile == nil {
		return nil
	}
	a.registerCompany(ctx, profile)

	transcriptURL := a.findTranscriptURL(ctx, ticker, quarter, year)
	if transcriptURL == "" {
		return nil
	}

	transcript := a.fetchTranscript(ctx, transcriptURL)
	if transcript == nil {
		return nil
	}

	identity := ResolveCallIdentity(quarter, year, transcriptURL)
	if identity.CallDate == nil {
		logger.Warn(ctx, "Could not resolve call date; performance will be skipped", "ticker", ticker, "url", transcriptURL)
	}

	sentiment := a.scoreSentiment(ctx, transcript, modelName)
	if sentiment == nil {
		return nil
	}

	series := a.fetchHistory(ctx, ticker)
	performance := a.derivePerformance(ctx, ticker, identity, series)

	a.persist(ctx, profile, identity, transcript, sentiment, performance)

	result := &types.AnalysisResult{
		Profile:          profile,
		Sentiment:        sentiment,
		StockPerformance: performance,
		ModelName:        modelName,
		Quarter:          identity.Quarter,
	}
	if identity.CallDate != nil {
		result.CallDate = identity.CallDate.Format("2006-01-02")
	}

	logger.Info(ctx, "Analysis completed", "ticker", ticker, "quarter", identity.Quarter, "call_date", result.CallDate)
	return result
}

func (a *Analyzer) fetchProfile(ctx context.Context, ticker string) *types.CompanyProfile {
	st := logger.StartStage(ctx, "fetch-profile", "ticker", ticker)
	profile, err := a.profiles.GetProfile(st.Context(), ticker)
	if err != nil {
		st.EndWithError(err)
		return nil
	}
	if profile == nil || profile.Symbol == "" {
		logger.Error(st.Context(), "Empty profile; aborting", "ticker", ticker)
		st.End()
		return nil
	}
	st.End()
	return profile
}

// registerCompany inserts the company row unless one already exists for
// the ticker. Best-effort: failures are warnings.
func (a *Analyzer) registerCompany(ctx context.Context, profile *types.CompanyProfile) {
	if a.store == nil {
		return
	}
	exists, err := a.store.CompanyExists(ctx, profile.Symbol)
	if err != nil {
		logger.Warn(ctx, "Could not check for existing company", "ticker", profile.Symbol, "error", err)
		return
	}
	if exists {
		return
	}
	if err := a.store.InsertCompany(ctx, profile); err != nil {
		logger.Warn(ctx, "Could not store company", "ticker", profile.Symbol, "error", err)
	}
}

func (a *Analyzer) findTranscriptURL(ctx context.Context, ticker, quarter string, year int) string {
	st := logger.StartStage(ctx, "find-transcript-url", "ticker", ticker)
	var (
		url string
		err error
	)
	if quarter != "" && year != 0 {
		url, err = a.locator.FindByQuarter(st.Context(), ticker, quarter, year)
	} else {
		url, err = a.locator.FindLatest(st.Context(), ticker)
	}
	if err != nil {
		st.EndWithError(err)
		return ""
	}
	if url == "" {
		logger.Error(st.Context(), "No transcript URL found; aborting", "ticker", ticker)
		st.End()
		return ""
	}
	st.End()
	return url
}

func (a *Analyzer) fetchTranscript(ctx context.Context, url string) *types.Transcript {
	st := logger.StartStage(ctx, "fetch-transcript", "url", url)
	transcript, err := a.transcripts.Fetch(st.Context(), url)
	if err != nil {
		st.EndWithError(err)
		return nil
	}
	if transcript == nil || transcript.Text == "" {
		logger.Error(st.Context(), "Empty transcript; aborting", "url", url)
		st.End()
		return nil
	}
	st.End()
	return transcript
}

func (a *Analyzer) scoreSentiment(ctx context.Context, transcript *types.Transcript, modelName string) *types.SentimentRecord {
	st := logger.StartStage(ctx, "score-sentiment", "model", modelName)
	sentiment, err := a.scorer.Score(st.Context(), transcript.Text, modelName)
	if err != nil {
		st.EndWithError(err)
		return nil
	}
	if sentiment == nil {
		logger.Error(st.Context(), "Empty sentiment result; aborting")
		st.End()
		return nil
	}
	st.End()
	return sentiment
}

// fetchHistory is a degrading stage: a failure is logged and treated as
// an empty series.
func (a *Analyzer) fetchHistory(ctx context.Context, ticker string) []types.PricePoint {
	st := logger.StartStage(ctx, "fetch-prices", "ticker", ticker)
	series, err := a.prices.GetHistory(st.Context(), ticker)
	if err != nil {
		logger.Warn(st.Context(), "Could not fetch historical prices; continuing without performance", "ticker", ticker, "error", err)
		st.End()
		return nil
	}
	st.End()
	return series
}

func (a *Analyzer) derivePerformance(ctx context.Context, ticker string, identity types.CallIdentity, series []types.PricePoint) *types.StockPerformance {
	if identity.CallDate == nil || len(series) == 0 {
		logger.Warn(ctx, "Missing call date or price series; skipping performance", "ticker", ticker)
		return nil
	}
	window := AlignPrices(series, *identity.CallDate)
	perf := ComputePerformance(window)
	return &perf
}

// persist writes the call and its derived records. Best-effort: any
// failure is recorded as a warning and the in-memory result is still
// returned to the caller.
func (a *Analyzer) persist(ctx context.Context, profile *types.CompanyProfile, identity types.CallIdentity, transcript *types.Transcript, sentiment *types.SentimentRecord, performance *types.StockPerformance) {
	if a.store == nil {
		return
	}
	st := logger.StartStage(ctx, "persist", "ticker", profile.Symbol)
	defer st.End()

	callID, err := a.store.InsertCall(st.Context(), profile.Symbol, identity, transcript)
	if err != nil {
		logger.Warn(st.Context(), "Could not store earnings call", "ticker", profile.Symbol, "error", err)
		return
	}
	if sentiment != nil {
		if err := a.store.InsertSentiment(st.Context(), callID, sentiment); err != nil {
			logger.Warn(st.Context(), "Could not store sentiment analysis", "call_id", callID, "error", err)
		}
	}
	if performance != nil {
		if err := a.store.InsertPerformance(st.Context(), callID, performance); err != nil {
			logger.Warn(st.Context(), "Could not store stock performance", "call_id", callID, "error", err)
		}
	}
}
