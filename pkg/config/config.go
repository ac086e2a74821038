package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Upstream data sources
	Fundamentus FundamentusConfig
	USMarket    USMarketConfig
	Quotes      QuotesConfig
	Calendar    CalendarConfig

	// Ranking engine
	Ranking RankingConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration. An empty URL disables the
// persistent store; the report service then runs memory-only.
type DatabaseConfig struct {
	URL string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// FundamentusConfig holds the Brazilian fundamentals source configuration.
type FundamentusConfig struct {
	BaseURL string
}

// USMarketConfig holds US market scan configuration.
type USMarketConfig struct {
	DirectoryURL string // pipe-separated symbol directory
	QuoteBaseURL string // per-ticker fundamentals JSON
	MaxTickers   int    // cap on full-market scan size
	MinPrice     float64
	MinMarketCap float64
}

// QuotesConfig holds the candle-history source configuration.
type QuotesConfig struct {
	BaseURL string
}

// CalendarConfig holds the economic-calendar source configuration.
type CalendarConfig struct {
	BaseURL  string
	APIKey   string
	SyncSpec string // cron spec for the daily sync job
}

// RankingConfig holds the eligibility filter and freshness knobs.
type RankingConfig struct {
	LiquidityFloor float64       // minimum daily traded value
	MaxYield       float64       // drop yields at or above this (data errors)
	ExcludedSector string        // substring match, e.g. "Desenvolvimento"
	StocksTTL      time.Duration // BR fundamentals freshness window
	FundsTTL       time.Duration // FII fundamentals freshness window
	Timezone       string        // daily-flag calendar day boundary
}

// Load reads configuration from environment variables. Only this function
// calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Fundamentus: FundamentusConfig{
			BaseURL: getEnv("FUNDAMENTUS_BASE_URL", "https://www.fundamentus.com.br"),
		},

		USMarket: USMarketConfig{
			DirectoryURL: getEnv("US_DIRECTORY_URL", "http://www.nasdaqtrader.com/dynamic/SymDir/nasdaqtraded.txt"),
			QuoteBaseURL: getEnv("US_QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
			MaxTickers:   getEnvAsInt("US_MAX_TICKERS", 500),
			MinPrice:     getEnvAsFloat("US_MIN_PRICE", 5.0),
			MinMarketCap: getEnvAsFloat("US_MIN_MARKET_CAP", 500_000_000),
		},

		Quotes: QuotesConfig{
			BaseURL: getEnv("QUOTES_BASE_URL", "https://query1.finance.yahoo.com"),
		},

		Calendar: CalendarConfig{
			BaseURL:  getEnv("CALENDAR_BASE_URL", ""),
			APIKey:   getEnv("CALENDAR_API_KEY", ""),
			SyncSpec: getEnv("CALENDAR_SYNC_SPEC", "0 7 * * *"),
		},

		Ranking: RankingConfig{
			LiquidityFloor: getEnvAsFloat("RANKING_LIQUIDITY_FLOOR", 200000),
			MaxYield:       getEnvAsFloat("RANKING_MAX_YIELD", 50),
			ExcludedSector: getEnv("RANKING_EXCLUDED_SECTOR", "Desenvolvimento"),
			StocksTTL:      getEnvAsDuration("RANKING_STOCKS_TTL", "1h"),
			FundsTTL:       getEnvAsDuration("RANKING_FUNDS_TTL", "1h"),
			Timezone:       getEnv("RANKING_TIMEZONE", "America/Sao_Paulo"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Ranking.LiquidityFloor < 0 {
		return fmt.Errorf("RANKING_LIQUIDITY_FLOOR must not be negative")
	}

	if _, err := time.LoadLocation(c.Ranking.Timezone); err != nil {
		return fmt.Errorf("RANKING_TIMEZONE is invalid: %w", err)
	}

	return nil
}

// Location returns the ranking timezone. validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, _ := time.LoadLocation(c.Ranking.Timezone)
	return loc
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
