package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/fmp"
	"earnings-analyzer/internal/fool"
	"earnings-analyzer/internal/interfaces"
	"earnings-analyzer/internal/llm/gemini"
	"earnings-analyzer/internal/llm/noop"
	"earnings-analyzer/internal/logger"
	"earnings-analyzer/internal/storage"
	"earnings-analyzer/internal/store"
	"earnings-analyzer/internal/trace"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	quarter := flag.String("quarter", "", "fiscal quarter of the call, e.g. Q1")
	year := flag.Int("year", 0, "fiscal year of the call, e.g. 2024")
	model := flag.String("model", "", "scoring model name (default from config)")
	asReport := flag.Bool("report", false, "print a flattened report row instead of JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyzer [flags] TICKER")
		flag.PrintDefaults()
		os.Exit(2)
	}
	ticker := flag.Arg(0)

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := trace.Init(); err != nil {
		logger.Warn(ctx, "Tracing disabled", "error", err)
	}
	defer func() { _ = trace.Shutdown(ctx) }()

	cfg := loadConfig(ctx, *configPath)

	modelName := *model
	if modelName == "" {
		modelName = cfg.LLM.Model
	}

	market := fmp.NewClient(cfg)
	scraper := fool.NewScraper(cfg)

	var scorer interfaces.SentimentScorer
	if cfg.LLM.Provider == "GEMINI" && cfg.LLMAPIKey() != "" {
		scorer = gemini.NewScorer(cfg)
	} else {
		logger.Warn(ctx, "No model API key configured; using neutral noop scorer")
		scorer = noop.NewNoopScorer()
	}

	var callStore interfaces.CallStore
	if dbURL := cfg.DatabaseURL(); dbURL != "" {
		pg, err := storage.NewPostgresStore(ctx, dbURL)
		if err != nil {
			logger.Warn(ctx, "Could not open database; results will not be persisted", "error", err)
		} else {
			callStore = pg
			defer pg.Close()
		}
	} else {
		logger.Warn(ctx, "No database configured; results will not be persisted")
	}

	analyzer := analysis.New(analysis.Deps{
		Profiles:    market,
		Locator:     scraper,
		Transcripts: scraper,
		Scorer:      scorer,
		Prices:      market,
		Store:       callStore,
	})

	if *asReport {
		row := analyzer.AnalyzeToReport(ctx, ticker, *quarter, *year, modelName)
		if row == nil {
			logger.Error(ctx, "Analysis failed", "ticker", ticker)
			os.Exit(1)
		}
		fmt.Print(analysis.FormatReport(row))
		return
	}

	result := analyzer.Analyze(ctx, ticker, *quarter, *year, modelName)
	if result == nil {
		logger.Error(ctx, "Analysis failed", "ticker", ticker)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.ErrorWithErr(ctx, "Could not encode result", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// loadConfig reads the config file when present and falls back to
// built-in defaults when it is not.
func loadConfig(ctx context.Context, path string) *store.Config {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info(ctx, "No config file; using defaults", "path", path)
			return store.DefaultConfig()
		}
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
