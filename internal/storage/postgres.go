package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"earnings-analyzer/internal/types"
)

// PostgresStore persists analysis records in PostgreSQL. One pool is
// opened per store instance and reused across all analyze calls;
// concurrent access from multiple processes needs external arbitration.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			ticker TEXT PRIMARY KEY,
			company_name TEXT,
			sector TEXT,
			industry TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS earnings_calls (
			id BIGSERIAL PRIMARY KEY,
			ticker TEXT REFERENCES companies(ticker),
			call_date DATE,
			quarter TEXT,
			year INT,
			transcript TEXT,
			transcript_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sentiment_analysis (
			id BIGSERIAL PRIMARY KEY,
			call_id BIGINT REFERENCES earnings_calls(id),
			overall_sentiment_score DOUBLE PRECISION,
			confidence_level DOUBLE PRECISION,
			key_themes JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS stock_performance (
			id BIGSERIAL PRIMARY KEY,
			call_id BIGINT REFERENCES earnings_calls(id),
			price_at_call DOUBLE PRECISION,
			price_1_week DOUBLE PRECISION,
			price_1_month DOUBLE PRECISION,
			price_3_month DOUBLE PRECISION,
			performance_1_week DOUBLE PRECISION,
			performance_1_month DOUBLE PRECISION,
			performance_3_month DOUBLE PRECISION
		)`,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// CompanyExists reports whether a company row already exists for the ticker.
func (s *PostgresStore) CompanyExists(ctx context.Context, ticker string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE ticker = $1)`, ticker).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check company %s: %w", ticker, err)
	}
	return exists, nil
}

// InsertCompany stores a company profile row.
func (s *PostgresStore) InsertCompany(ctx context.Context, profile *types.CompanyProfile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO companies (ticker, company_name, sector, industry) VALUES ($1, $2, $3, $4)`,
		profile.Symbol, profile.CompanyName, profile.Sector, profile.Industry)
	if err != nil {
		return fmt.Errorf("insert company %s: %w", profile.Symbol, err)
	}
	return nil
}

// InsertCall stores one earnings call and returns its row id.
func (s *PostgresStore) InsertCall(ctx context.Context, ticker string, identity types.CallIdentity, transcript *types.Transcript) (int64, error) {
	var (
		text string
		url  string
	)
	if transcript != nil {
		text = transcript.Text
		url = transcript.URL
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO earnings_calls (ticker, call_date, quarter, year, transcript, transcript_url)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		ticker, identity.CallDate, identity.Quarter, identity.Year, text, url).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert call %s: %w", ticker, err)
	}
	return id, nil
}

// InsertSentiment stores the sentiment record for a call.
func (s *PostgresStore) InsertSentiment(ctx context.Context, callID int64, sentiment *types.SentimentRecord) error {
	themes, err := json.Marshal(sentiment.KeyThemes)
	if err != nil {
		return fmt.Errorf("marshal key themes: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sentiment_analysis (call_id, overall_sentiment_score, confidence_level, key_themes)
		 VALUES ($1, $2, $3, $4)`,
		callID, sentiment.OverallSentimentScore, sentiment.ConfidenceLevel, themes)
	if err != nil {
		return fmt.Errorf("insert sentiment for call %d: %w", callID, err)
	}
	return nil
}

// InsertPerformance stores the stock performance record for a call.
func (s *PostgresStore) InsertPerformance(ctx context.Context, callID int64, perf *types.StockPerformance) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO stock_performance
		 (call_id, price_at_call, price_1_week, price_1_month, price_3_month,
		  performance_1_week, performance_1_month, performance_3_month)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		callID, perf.PriceAtCall, perf.Price1Week, perf.Price1Month, perf.Price3Month,
		perf.Performance1Week, perf.Performance1Month, perf.Performance3Month)
	if err != nil {
		return fmt.Errorf("insert performance for call %d: %w", callID, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
