package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FMP struct {
		BaseURL       string `yaml:"base_url"`
		APIKeyEnv     string `yaml:"api_key_env"`
		TimeoutSecond int    `yaml:"timeout_seconds"`
	} `yaml:"fmp"`
	Scraper struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSecond  int    `yaml:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent"`
		MaxQuotePages  int    `yaml:"max_quote_pages"`
		RateLimitMilli int    `yaml:"rate_limit_ms"`
	} `yaml:"scraper"`
	LLM struct {
		Provider      string  `yaml:"provider"`
		Model         string  `yaml:"model"`
		APIKeyEnv     string  `yaml:"api_key_env"`
		Temperature   float32 `yaml:"temperature"`
		TimeoutSecond int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	Database struct {
		URLEnv string `yaml:"url_env"`
	} `yaml:"database"`
}

func (c *Config) Validate() error {
	if c.LLM.Provider != "GEMINI" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'GEMINI' or 'NOOP'", c.LLM.Provider)
	}
	if c.FMP.TimeoutSecond <= 0 {
		return fmt.Errorf("fmp.timeout_seconds must be positive, got %d", c.FMP.TimeoutSecond)
	}
	if c.Scraper.TimeoutSecond <= 0 {
		return fmt.Errorf("scraper.timeout_seconds must be positive, got %d", c.Scraper.TimeoutSecond)
	}
	return nil
}

// FMPTimeout returns the configured FMP request timeout.
func (c *Config) FMPTimeout() time.Duration {
	return time.Duration(c.FMP.TimeoutSecond) * time.Second
}

// ScraperTimeout returns the configured transcript scraper timeout.
func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSecond) * time.Second
}

// LLMTimeout returns the configured model call timeout.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSecond) * time.Second
}

// FMPAPIKey resolves the FMP API key from the configured environment variable.
func (c *Config) FMPAPIKey() string {
	return os.Getenv(c.FMP.APIKeyEnv)
}

// LLMAPIKey resolves the model API key from the configured environment variable.
func (c *Config) LLMAPIKey() string {
	return os.Getenv(c.LLM.APIKeyEnv)
}

// DatabaseURL resolves the database connection string from the configured
// environment variable.
func (c *Config) DatabaseURL() string {
	return os.Getenv(c.Database.URLEnv)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// DefaultConfig returns a config with all defaults applied, usable without
// a config file on disk.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.FMP.BaseURL == "" {
		c.FMP.BaseURL = "https://financialmodelingprep.com/api/v3"
	}
	if c.FMP.APIKeyEnv == "" {
		c.FMP.APIKeyEnv = "FMP_API_KEY"
	}
	if c.FMP.TimeoutSecond == 0 {
		c.FMP.TimeoutSecond = 15
	}
	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = "https://www.fool.com"
	}
	if c.Scraper.TimeoutSecond == 0 {
		c.Scraper.TimeoutSecond = 30
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Scraper.MaxQuotePages == 0 {
		c.Scraper.MaxQuotePages = 3
	}
	if c.Scraper.RateLimitMilli == 0 {
		c.Scraper.RateLimitMilli = 500
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.TimeoutSecond == 0 {
		c.LLM.TimeoutSecond = 120
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
}
