package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rfarias/garimpo/internal/jobs"
	calendarprovider "github.com/rfarias/garimpo/internal/providers/calendar"
	"github.com/rfarias/garimpo/internal/store"
	"github.com/rfarias/garimpo/pkg/config"
	"github.com/rfarias/garimpo/pkg/database"
	"github.com/rfarias/garimpo/pkg/httputil"
	"github.com/rfarias/garimpo/pkg/logger"
)

// calendarSyncCmd represents the calendar-sync command
var calendarSyncCmd = &cobra.Command{
	Use:   "calendar-sync",
	Short: "Sync the economic calendar once and exit",
	RunE:  runCalendarSync,
}

func init() {
	rootCmd.AddCommand(calendarSyncCmd)
}

func runCalendarSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Calendar.BaseURL == "" {
		return fmt.Errorf("CALENDAR_BASE_URL not set")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	httpClient := httputil.New(log).WithRetry(3, 1*time.Second)
	provider := calendarprovider.NewClient(httpClient, log, cfg.Calendar.BaseURL, cfg.Calendar.APIKey)

	job := jobs.NewCalendarSyncJob(provider, store.NewCalendarRepository(db.Pool), []string{"BR", "US"}, cfg.Calendar.SyncSpec, log)
	return job.Run(cmd.Context())
}
