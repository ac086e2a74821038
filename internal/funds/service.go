package funds

import (
	"context"
	"sync"
	"time"

	"github.com/rfarias/garimpo/internal/contracts"
	"github.com/rfarias/garimpo/pkg/logger"
)

// Service caches the FII snapshot in memory for a TTL and ranks on demand.
// The fund table is small and cheap to refetch, so nothing is persisted.
type Service struct {
	provider  contracts.FundsProvider
	filterCfg FilterConfig
	ttl       time.Duration
	logger    *logger.Logger

	mu        sync.Mutex
	records   []contracts.FundRecord
	fetchedAt time.Time
}

// NewService creates the FII ranking service.
func NewService(provider contracts.FundsProvider, filterCfg FilterConfig, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		provider:  provider,
		filterCfg: filterCfg,
		ttl:       ttl,
		logger:    log,
	}
}

// Rows returns the ranked fund table ordered by the requested key. force
// skips the TTL check. A provider failure falls back to the stale snapshot
// when one exists.
func (s *Service) Rows(ctx context.Context, sortBy SortKey, force bool) ([]contracts.FundRow, error) {
	records, err := s.snapshot(ctx, force)
	if err != nil {
		return nil, err
	}
	return Rank(Filter(records, s.filterCfg), sortBy), nil
}

func (s *Service) snapshot(ctx context.Context, force bool) ([]contracts.FundRecord, error) {
	s.mu.Lock()
	if !force && s.records != nil && time.Since(s.fetchedAt) < s.ttl {
		cached := s.records
		s.mu.Unlock()
		return cached, nil
	}
	stale := s.records
	s.mu.Unlock()

	records, err := s.provider.Snapshot(ctx)
	if err != nil || len(records) == 0 {
		if stale != nil {
			s.logger.WithError(err).Warn("Funds fetch failed; serving stale snapshot")
			return stale, nil
		}
		if err != nil {
			return nil, err
		}
		return nil, contracts.ErrNoData
	}

	s.mu.Lock()
	s.records = records
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return records, nil
}
