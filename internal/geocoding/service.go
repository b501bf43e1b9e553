package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"location-finder/internal/cache"
	"location-finder/internal/config"
	"location-finder/internal/metrics"
	"location-finder/internal/providers/openstreetmap"
	"location-finder/internal/types"
)

// Provider is the upstream geocoder
type Provider interface {
	Search(ctx context.Context, params openstreetmap.SearchParams) ([]openstreetmap.Place, error)
	Reverse(ctx context.Context, params openstreetmap.ReverseParams) (*openstreetmap.Place, error)
}

// Service turns free-text queries and coordinates into normalized location records.
// Upstream failures are logged and reported as empty results, never as errors.
type Service interface {
	// Search returns up to max_results records for query, in provider relevance order
	Search(ctx context.Context, query string) []types.LocationRecord
	// Geocode returns the best match for address, or nil
	Geocode(ctx context.Context, address string) *types.LocationRecord
	// ReverseGeocode returns the place at the given coordinates, or nil
	ReverseGeocode(ctx context.Context, lat, lon float64) *types.LocationRecord
}

type geocodingService struct {
	provider   Provider
	store      cache.Store
	normalizer normalizer
	geoCfg     config.GeocodingConfig
	cacheCfg   config.CacheConfig
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewGeocodingService creates a geocoding service backed by Nominatim
func NewGeocodingService(
	geoCfg config.GeocodingConfig,
	cacheCfg config.CacheConfig,
	store cache.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) Service {
	client := openstreetmap.NewClient(geoCfg.BaseURL, geoCfg.UserAgent, geoCfg.RequestTimeout(), logger)
	return NewGeocodingServiceWithProvider(client, store, geoCfg, cacheCfg, m, logger)
}

// NewGeocodingServiceWithProvider creates a geocoding service with a custom provider.
// This is useful for testing with mock providers.
func NewGeocodingServiceWithProvider(
	provider Provider,
	store cache.Store,
	geoCfg config.GeocodingConfig,
	cacheCfg config.CacheConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) Service {
	if store == nil || !cacheCfg.Enabled {
		store = cache.NewNoop()
	}
	if m == nil {
		m = metrics.NewMetricsForTesting()
	}
	return &geocodingService{
		provider:   provider,
		store:      store,
		normalizer: newNormalizer(geoCfg),
		geoCfg:     geoCfg,
		cacheCfg:   cacheCfg,
		metrics:    m,
		logger:     logger.With("component", "geocoding-service"),
	}
}

func (s *geocodingService) Search(ctx context.Context, query string) []types.LocationRecord {
	if len(query) < s.geoCfg.MinChars {
		s.metrics.ObserveRequest(metrics.MethodSearch, metrics.OutcomeRejected)
		return []types.LocationRecord{}
	}

	key := cacheKey(s.cacheCfg.Prefix, query)

	var cached []types.LocationRecord
	if s.readCache(ctx, metrics.MethodSearch, key, &cached) {
		return cached
	}

	start := time.Now()
	places, err := s.provider.Search(ctx, openstreetmap.SearchParams{
		Query:       query,
		Limit:       s.geoCfg.MaxResults,
		CountryCode: s.geoCfg.CountryCode,
		Language:    s.geoCfg.Language,
	})
	s.metrics.ObserveUpstream(metrics.MethodSearch, time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("location search failed",
			"query", query,
			"error", err,
		)
		s.metrics.ObserveRequest(metrics.MethodSearch, metrics.OutcomeError)
		return []types.LocationRecord{}
	}

	results := make([]types.LocationRecord, 0, len(places))
	for i, place := range places {
		record, err := s.normalizer.normalize(place)
		if err != nil {
			s.logger.Debug("dropping search result",
				"query", query,
				"index", i,
				"reason", err,
			)
			continue
		}
		results = append(results, record)
		if len(results) == s.geoCfg.MaxResults {
			break
		}
	}

	// Empty result sets are cached too
	s.writeCache(ctx, key, results)

	if len(results) == 0 {
		s.metrics.ObserveRequest(metrics.MethodSearch, metrics.OutcomeEmpty)
	} else {
		s.metrics.ObserveRequest(metrics.MethodSearch, metrics.OutcomeSuccess)
	}

	return results
}

func (s *geocodingService) Geocode(ctx context.Context, address string) *types.LocationRecord {
	results := s.Search(ctx, address)
	if len(results) == 0 {
		return nil
	}
	first := results[0]
	return &first
}

func (s *geocodingService) ReverseGeocode(ctx context.Context, lat, lon float64) *types.LocationRecord {
	if err := types.NewCoords(lat, lon).Validate(); err != nil {
		s.logger.Warn("rejecting reverse geocode",
			"latitude", lat,
			"longitude", lon,
			"error", err,
		)
		s.metrics.ObserveRequest(metrics.MethodReverse, metrics.OutcomeRejected)
		return nil
	}

	key := reverseCacheKey(s.cacheCfg.Prefix, lat, lon)

	var cached types.LocationRecord
	if s.readCache(ctx, metrics.MethodReverse, key, &cached) {
		return &cached
	}

	start := time.Now()
	place, err := s.provider.Reverse(ctx, openstreetmap.ReverseParams{
		Latitude:  lat,
		Longitude: lon,
		Language:  s.geoCfg.Language,
	})
	s.metrics.ObserveUpstream(metrics.MethodReverse, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, openstreetmap.ErrNotFound) {
			s.logger.Info("no place found for coordinates",
				"latitude", lat,
				"longitude", lon,
			)
			s.metrics.ObserveRequest(metrics.MethodReverse, metrics.OutcomeEmpty)
			return nil
		}
		s.logger.Error("reverse geocode failed",
			"latitude", lat,
			"longitude", lon,
			"error", err,
		)
		s.metrics.ObserveRequest(metrics.MethodReverse, metrics.OutcomeError)
		return nil
	}

	record, err := s.normalizer.normalize(*place)
	if err != nil {
		s.logger.Warn("unusable reverse geocode response",
			"latitude", lat,
			"longitude", lon,
			"error", err,
		)
		s.metrics.ObserveRequest(metrics.MethodReverse, metrics.OutcomeEmpty)
		return nil
	}

	// Only found places are cached; a miss is retried on the next call
	s.writeCache(ctx, key, record)
	s.metrics.ObserveRequest(metrics.MethodReverse, metrics.OutcomeSuccess)

	return &record
}

// readCache decodes the entry under key into dst and reports whether it was a usable hit
func (s *geocodingService) readCache(ctx context.Context, method, key string, dst any) bool {
	if !s.cacheCfg.Enabled {
		return false
	}

	payload, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		ok = false
	}
	if ok {
		if err := json.Unmarshal(payload, dst); err != nil {
			s.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
			ok = false
		}
	}

	s.metrics.ObserveCache(method, ok)
	if ok {
		s.logger.Debug("cache hit", "method", method, "key", key)
	}
	return ok
}

func (s *geocodingService) writeCache(ctx context.Context, key string, value any) {
	if !s.cacheCfg.Enabled {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := s.store.Put(ctx, key, payload, s.cacheCfg.TTLDuration()); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
