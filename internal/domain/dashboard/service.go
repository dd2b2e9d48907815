package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sighc/sighc/internal/platform/cache"
	"github.com/sighc/sighc/pkg/records"
)

// TopDiagnoses is how many diagnoses the dashboard ranks.
const TopDiagnoses = 4

const cacheKey = "dashboard:stats"

// Service serves dashboard aggregates, caching them for ttl when a store is
// configured. Cache failures are logged and the database is queried instead.
type Service struct {
	repo   Repository
	kv     cache.KVStore
	ttl    time.Duration
	logger zerolog.Logger
}

func NewService(repo Repository, kv cache.KVStore, ttl time.Duration, logger zerolog.Logger) *Service {
	return &Service{repo: repo, kv: kv, ttl: ttl, logger: logger}
}

func (s *Service) caching() bool {
	return s.kv != nil && s.ttl > 0
}

func (s *Service) Stats(ctx context.Context) (*records.DashboardStats, error) {
	if s.caching() {
		var cached records.DashboardStats
		err := cache.GetJSON(ctx, s.kv, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	stats, err := s.repo.Stats(ctx, TopDiagnoses)
	if err != nil {
		return nil, err
	}

	if s.caching() {
		if err := cache.SetJSON(ctx, s.kv, cacheKey, stats, s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return stats, nil
}

// Invalidate drops the cached aggregates so the next read is fresh.
func (s *Service) Invalidate(ctx context.Context) {
	if !s.caching() {
		return
	}
	if err := s.kv.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}
