package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rfarias/garimpo/internal/api"
	"github.com/rfarias/garimpo/internal/api/handlers"
	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/funds"
	"github.com/rfarias/garimpo/internal/jobs"
	calendarprovider "github.com/rfarias/garimpo/internal/providers/calendar"
	"github.com/rfarias/garimpo/internal/providers/fundamentus"
	"github.com/rfarias/garimpo/internal/providers/quotes"
	"github.com/rfarias/garimpo/internal/providers/usmarket"
	"github.com/rfarias/garimpo/internal/ranking"
	"github.com/rfarias/garimpo/internal/report"
	"github.com/rfarias/garimpo/internal/store"
	"github.com/rfarias/garimpo/pkg/config"
	"github.com/rfarias/garimpo/pkg/database"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
	"github.com/rfarias/garimpo/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health                       - Health check
  GET /api/ranking/stocks           - Brazilian stock ranking
  GET /api/ranking/usa              - US stock ranking
  GET /api/ranking/funds            - Real-estate fund (FII) ranking
  GET /api/signals/ema/{symbol}     - Trend-turn entry setup
  GET /api/signals/wyckoff/{symbol} - Phase estimate
  GET /api/signals/gap/{symbol}     - Opening-gap backtest
  GET /api/calendar                 - Economic calendar

Example:
  go run ./cmd/garimpo api
  go run ./cmd/garimpo api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// Database is optional: without it the report services run memory-only
	var (
		reportStore   contracts.ReportStore
		calendarStore contracts.CalendarStore
	)
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		reportStore = store.NewRepository(db.Pool)
		calendarStore = store.NewCalendarRepository(db.Pool)
		log.Info("Connected to database")
	} else {
		log.Warn("DATABASE_URL not set; running without persistent store")
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "garimpo")
	rateLimiter := redis.NewRateLimiter(redisClient, "garimpo")

	// One HTTP client per upstream so rate limits never cross sources
	brHTTP := httputil.New(log).
		WithRetry(3, 1*time.Second).
		WithLocalLimit(4, 2).
		WithRateLimiter(rateLimiter, redis.FundamentusRateLimit)
	quoteHTTP := httputil.New(log).
		WithRetry(3, 1*time.Second).
		WithLocalLimit(10, 5).
		WithRateLimiter(rateLimiter, redis.QuotesRateLimit)
	calendarHTTP := httputil.New(log).
		WithRetry(3, 1*time.Second).
		WithRateLimiter(rateLimiter, redis.CalendarRateLimit)

	stocksProvider := fundamentus.NewClient(brHTTP, log, cfg.Fundamentus.BaseURL)
	fundsProvider := fundamentus.NewFundsClient(brHTTP, log, cfg.Fundamentus.BaseURL)
	usProvider := usmarket.NewClient(quoteHTTP, log, cfg.USMarket)
	quoteProvider := quotes.NewClient(quoteHTTP, log, cache, cfg.Quotes.BaseURL)

	stockFilter := ranking.FilterConfig{
		LiquidityFloor:          cfg.Ranking.LiquidityFloor,
		RequirePositiveEarnings: true,
		MaxYield:                cfg.Ranking.MaxYield,
	}

	stocksService := report.NewService(
		report.Config{
			Source:   "br-stocks",
			Policy:   report.PolicyTTL,
			TTL:      cfg.Ranking.StocksTTL,
			Location: cfg.Location(),
		},
		stocksProvider, reportStore,
		ranking.NewEngine(ranking.BRConfig(), log),
		stockFilter, log,
	)
	usaService := report.NewService(
		report.Config{
			Source:   "us-stocks",
			Policy:   report.PolicyDailyFlag,
			FlagName: "us-stocks-ranked",
			Location: cfg.Location(),
		},
		usProvider, reportStore,
		ranking.NewEngine(ranking.USConfig(), log),
		stockFilter, log,
	)
	fundsService := funds.NewService(
		fundsProvider,
		funds.FilterConfig{
			LiquidityFloor: cfg.Ranking.LiquidityFloor,
			ExcludedSector: cfg.Ranking.ExcludedSector,
		},
		cfg.Ranking.FundsTTL, log,
	)

	var calendarProvider contracts.CalendarProvider
	if cfg.Calendar.BaseURL != "" {
		calendarProvider = calendarprovider.NewClient(calendarHTTP, log, cfg.Calendar.BaseURL, cfg.Calendar.APIKey)
	}

	// Background jobs
	scheduler := jobs.New(log)
	if calendarProvider != nil && calendarStore != nil {
		job := jobs.NewCalendarSyncJob(calendarProvider, calendarStore, []string{"BR", "US"}, cfg.Calendar.SyncSpec, log)
		if err := scheduler.AddJob(job); err != nil {
			return fmt.Errorf("schedule calendar sync: %w", err)
		}
	}
	// Warm the expensive US scan before the market opens
	if err := scheduler.AddJob(jobs.NewReportWarmJob("us-report-warm", "0 8 * * 1-5", usaService)); err != nil {
		return fmt.Errorf("schedule report warm-up: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	rankingHandler := handlers.NewRankingHandler(stocksService, usaService, log)
	fundsHandler := handlers.NewFundsHandler(fundsService, log)
	signalsHandler := handlers.NewSignalsHandler(quoteProvider, log)

	var calendarHandler *handlers.CalendarHandler
	if calendarProvider != nil {
		calendarHandler = handlers.NewCalendarHandler(calendarStore, calendarProvider, log)
	}

	router := api.NewRouter(rankingHandler, fundsHandler, signalsHandler, calendarHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
