package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/doutly/doutly-service/internal/persistence"
	"github.com/doutly/doutly-service/internal/repository"
	"github.com/doutly/doutly-service/internal/stats"
	apperrors "github.com/doutly/doutly-service/pkg/util"
)

const snapshotCacheKey = "dashboard:snapshot"

// DashboardService produces the metrics snapshot backing the stats
// cards. Snapshots are cached in Redis for a short TTL; the store is
// always authoritative and cache failures are swallowed.
type DashboardService struct {
	leads  repository.LeadRepository
	doubts repository.DoubtRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// DashboardDependencies bundles inputs for the dashboard service.
type DashboardDependencies struct {
	LeadRepo  repository.LeadRepository
	DoubtRepo repository.DoubtRepository
	Cache     *persistence.Redis
	CacheTTL  time.Duration
	Logger    *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		leads:  deps.LeadRepo,
		doubts: deps.DoubtRepo,
		cache:  deps.Cache,
		ttl:    deps.CacheTTL,
		logger: deps.Logger,
	}
}

// Snapshot returns current dashboard counters, served from cache when
// a fresh snapshot exists.
func (s *DashboardService) Snapshot(ctx context.Context) (*stats.Snapshot, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	leads, err := s.leads.List(ctx, repository.LeadFilter{Limit: 1000})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	doubts, err := s.doubts.List(ctx, repository.DoubtFilter{Limit: 1000})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	snapshot := &stats.Snapshot{
		Leads:       stats.ComputeLeadStats(leads),
		Doubts:      stats.ComputeDoubtStats(doubts),
		GeneratedAt: time.Now(),
	}
	s.writeCache(ctx, snapshot)
	return snapshot, nil
}

func (s *DashboardService) readCache(ctx context.Context) *stats.Snapshot {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, snapshotCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var snapshot stats.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *DashboardService) writeCache(ctx context.Context, snapshot *stats.Snapshot) {
	if s.cache == nil || s.cache.Client == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, snapshotCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("snapshot cache write failed", zap.Error(err))
	}
}
