// Package report owns the cache/freshness layer around the ranking engine.
//
// One Service instance exists per report source (br-stocks, us-stocks) and
// is the only writer of its cache entry. Handlers never touch the cache
// directly; they ask the service and get the freshest report it can serve.
package report

import (
	"context"
	"sync"
	"time"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/internal/ranking"
	"github.com/rfarias/garimpo/pkg/logger"
)

// FreshnessPolicy selects how a source decides whether its cache is stale.
type FreshnessPolicy int

const (
	// PolicyTTL serves from memory for a fixed window after computation.
	// Used for cheap fetches; nothing is persisted.
	PolicyTTL FreshnessPolicy = iota

	// PolicyDailyFlag recomputes at most once per calendar day (in the
	// configured timezone), gated by a flag in the persistent store.
	// Used for expensive full-market scans.
	PolicyDailyFlag
)

// Config describes one report source.
type Config struct {
	Source   string // store partition key, e.g. "us-stocks"
	Policy   FreshnessPolicy
	TTL      time.Duration  // PolicyTTL window
	FlagName string         // PolicyDailyFlag store flag
	Location *time.Location // calendar-day boundary

	// RefreshTimeout bounds the detached recomputation. Full-market scans
	// run for minutes.
	RefreshTimeout time.Duration
}

// cacheEntry is the in-process copy of the last report. Owned exclusively
// by the Service; guarded by Service.mu.
type cacheEntry struct {
	report      *contracts.RankingReport
	generatedAt time.Time
}

// Service decides between serving cached data and recomputing, and performs
// the full refresh pipeline (fetch, filter, score, assemble, persist).
type Service struct {
	config    Config
	provider  contracts.FundamentalsProvider
	store     contracts.ReportStore // nil disables persistence
	engine    *ranking.Engine
	filterCfg ranking.FilterConfig
	logger    *logger.Logger

	mu           sync.Mutex
	entry        *cacheEntry
	storeHealthy bool
}

// NewService creates a report service for one source.
func NewService(
	cfg Config,
	provider contracts.FundamentalsProvider,
	store contracts.ReportStore,
	engine *ranking.Engine,
	filterCfg ranking.FilterConfig,
	log *logger.Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RefreshTimeout == 0 {
		cfg.RefreshTimeout = 15 * time.Minute
	}
	return &Service{
		config:       cfg,
		provider:     provider,
		store:        store,
		engine:       engine,
		filterCfg:    filterCfg,
		logger:       log.WithField("source", cfg.Source),
		storeHealthy: true,
	}
}

// Report returns the current ranking report, serving from memory or store
// when fresh and recomputing otherwise. force skips both freshness checks.
//
// Concurrent requests during the stale window may each trigger a
// recomputation; writes are idempotent (same date key), so the duplicates
// are harmless and no stronger exclusion is attempted.
func (s *Service) Report(ctx context.Context, force bool) (*contracts.RankingReport, error) {
	if !force {
		if rep := s.fromMemory(); rep != nil {
			return rep, nil
		}
		if rep := s.fromStore(ctx); rep != nil {
			return rep, nil
		}
	}

	type result struct {
		report *contracts.RankingReport
		err    error
	}
	done := make(chan result, 1)

	// Refresh runs on a detached context so a caller timeout never aborts
	// a computation that is about to populate the cache.
	go func() {
		rctx, cancel := context.WithTimeout(context.Background(), s.config.RefreshTimeout)
		defer cancel()
		rep, err := s.refresh(rctx)
		done <- result{rep, err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Request gave up waiting for refresh; computation continues")
		if rep := s.staleMemory(); rep != nil {
			return rep, nil
		}
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return s.fallback(ctx, res.err)
		}
		return res.report, nil
	}
}

// fromMemory returns the in-process report when still fresh.
func (s *Service) fromMemory() *contracts.RankingReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == nil {
		return nil
	}
	switch s.config.Policy {
	case PolicyDailyFlag:
		if !s.sameDay(s.entry.generatedAt, time.Now()) {
			return nil
		}
	default:
		if time.Since(s.entry.generatedAt) >= s.config.TTL {
			return nil
		}
	}
	return s.entry.report
}

// fromStore serves today's report from the persistent store when the daily
// flag says the computation already ran, warming the memory cache.
func (s *Service) fromStore(ctx context.Context) *contracts.RankingReport {
	if s.config.Policy != PolicyDailyFlag || !s.storeUsable() {
		return nil
	}

	flagDate, ok, err := s.store.GetFlag(ctx, s.config.FlagName)
	if err != nil {
		s.degradeStore(err)
		return nil
	}
	if !ok || !s.sameDay(flagDate, time.Now()) {
		return nil
	}

	rows, err := s.store.GetByDate(ctx, s.config.Source, flagDate)
	if err != nil {
		s.degradeStore(err)
		return nil
	}
	if len(rows) == 0 {
		// Flag set but no rows: stale marker, recompute
		s.logger.Warn("Freshness flag set but store has no rows; recomputing")
		return nil
	}

	report := &contracts.RankingReport{
		Source:      s.config.Source,
		GeneratedAt: flagDate,
		Rows:        rows,
	}
	s.setEntry(report, flagDate)
	s.logger.WithField("rows", len(rows)).Debug("Served report from store")
	return report
}

// refresh runs the full pipeline: fetch, filter, score, assemble, persist,
// warm memory.
func (s *Service) refresh(ctx context.Context) (*contracts.RankingReport, error) {
	started := time.Now()

	records, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		// Empty table means the upstream broke, not an empty market
		return nil, contracts.ErrUpstreamUnavailable
	}

	filtered := ranking.Filter(records, s.filterCfg)
	scores := s.engine.Score(filtered)

	now := time.Now().In(s.config.Location)
	report, err := ranking.Assemble(s.config.Source, filtered, scores, now)
	if err != nil {
		// Scoring inconsistency: programmer error, fail loudly
		return nil, err
	}

	s.persist(ctx, report, now)
	s.setEntry(report, now)

	s.logger.WithFields(map[string]interface{}{
		"input":    len(records),
		"eligible": len(filtered),
		"duration": time.Since(started),
	}).Info("Report refreshed")

	return report, nil
}

// persist writes the report and freshness flag for daily-flag sources.
// Store failures degrade to memory-only for the process lifetime.
func (s *Service) persist(ctx context.Context, report *contracts.RankingReport, now time.Time) {
	if s.config.Policy != PolicyDailyFlag || !s.storeUsable() {
		return
	}

	date := dayStart(now, s.config.Location)
	if err := s.store.SaveReport(ctx, s.config.Source, date, report.Rows); err != nil {
		s.degradeStore(err)
		return
	}
	if err := s.store.SetFlag(ctx, s.config.FlagName, date); err != nil {
		s.degradeStore(err)
	}
}

// fallback serves the best historical data after an upstream failure: the
// newest store rows of any date, then any stale memory copy. ErrNoData only
// when nothing exists anywhere.
func (s *Service) fallback(ctx context.Context, cause error) (*contracts.RankingReport, error) {
	s.logger.WithError(cause).Warn("Refresh failed; serving fallback")

	if s.storeUsable() {
		rows, date, err := s.store.LatestAny(ctx, s.config.Source)
		if err != nil {
			s.degradeStore(err)
		} else if len(rows) > 0 {
			return &contracts.RankingReport{
				Source:      s.config.Source,
				GeneratedAt: date,
				Rows:        rows,
			}, nil
		}
	}

	if rep := s.staleMemory(); rep != nil {
		return rep, nil
	}

	return nil, contracts.ErrNoData
}

// staleMemory returns the memory copy regardless of freshness.
func (s *Service) staleMemory() *contracts.RankingReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil {
		return nil
	}
	return s.entry.report
}

func (s *Service) setEntry(report *contracts.RankingReport, generatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = &cacheEntry{report: report, generatedAt: generatedAt}
}

func (s *Service) storeUsable() bool {
	if s.store == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeHealthy
}

// degradeStore switches to memory-only caching for the rest of the process
// lifetime. Correctness is unaffected; only durability is lost.
func (s *Service) degradeStore(err error) {
	s.logger.WithError(err).Error("Store unavailable; degrading to memory-only cache")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeHealthy = false
}

func (s *Service) sameDay(a, b time.Time) bool {
	loc := s.config.Location
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
