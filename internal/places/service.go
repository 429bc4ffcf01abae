package places

import (
	"context"
	"fmt"
	"log/slog"

	"wayplan.openmobility.org/internal/clock"
	"wayplan.openmobility.org/internal/logging"
	"wayplan.openmobility.org/internal/models"
)

// Service combines the provider Resolver with the persistent cache and the
// recent-place spatial index. Cache failures degrade to provider calls;
// they never fail a lookup on their own.
type Service struct {
	resolver Resolver
	cache    *Cache
	index    *RecentIndex
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService wires the resolver, cache, and index together. cache may be
// nil; the service then resolves everything through the provider.
func NewService(resolver Resolver, cache *Cache, c clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		cache:    cache,
		index:    NewRecentIndex(),
		clock:    c,
		logger:   logger,
	}
}

// WarmIndex loads every cached place into the spatial index. Called once
// at startup.
func (s *Service) WarmIndex(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.All(ctx)
	if err != nil {
		return fmt.Errorf("warm place index: %w", err)
	}
	for _, place := range cached {
		s.index.Insert(place)
	}
	return nil
}

// Autocomplete returns candidate places for a free-text query.
func (s *Service) Autocomplete(ctx context.Context, text string) ([]Candidate, error) {
	return s.resolver.Autocomplete(ctx, text)
}

// Details resolves a place ID, preferring the cache. Fresh resolutions are
// cached and indexed.
func (s *Service) Details(ctx context.Context, id string) (*models.Place, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logging.LogError(s.logger, "place cache read failed", err, slog.String("place_id", id))
		} else if cached != nil {
			return cached, nil
		}
	}

	place, err := s.resolver.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, place, s.clock.NowUnixMilli()); err != nil {
			logging.LogError(s.logger, "place cache write failed", err, slog.String("place_id", id))
		}
	}
	s.index.Insert(*place)

	return place, nil
}

// Ping verifies the cache database is reachable. A service running
// without a cache is trivially healthy.
func (s *Service) Ping(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DB.PingContext(ctx)
}

// Nearby returns up to limit recently resolved places within radiusMeters
// of center.
func (s *Service) Nearby(center models.Coordinate, radiusMeters float64, limit int) []models.Place {
	return s.index.Nearby(center, radiusMeters, limit)
}
