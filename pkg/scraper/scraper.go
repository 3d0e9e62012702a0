package scraper

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"profilescraper/pkg/cache"
	"profilescraper/pkg/config"
	"profilescraper/pkg/errors"
	"profilescraper/pkg/extractor"
	"profilescraper/pkg/fetch"
	"profilescraper/pkg/logger"
	"profilescraper/pkg/models"
	"profilescraper/pkg/ratelimit"
)

const cacheKeyPrefix = "profile:"

// Scraper orchestrates external profile acquisition: cache lookup,
// throttling, fetch, extraction and cache write-back. Construct one at
// startup and hand it to consumers; there is no package-level instance.
type Scraper struct {
	cache     *cache.Store[*models.ScrapedProfile]
	limiter   ratelimit.Limiter
	client    PageFetcher
	extractor *extractor.Extractor
	ttl       time.Duration
	logger    logger.Logger
	flight    singleflight.Group
}

// New creates a Scraper wired from configuration
func New(cfg *config.Config) (*Scraper, error) {
	log := logger.GetLogger()

	client := fetch.NewClient(fetch.Options{
		BaseURL:      cfg.Scraper.BaseURL,
		UserAgent:    cfg.Scraper.UserAgent,
		Timeout:      cfg.Scraper.FetchTimeout,
		MaxRedirects: cfg.Scraper.MaxRedirects,
	}, log)

	return &Scraper{
		cache:     cache.New[*models.ScrapedProfile](),
		limiter:   ratelimit.NewMinInterval(cfg.Scraper.MinRequestDelay),
		client:    client,
		extractor: extractor.New(log),
		ttl:       cfg.Cache.TTL,
		logger:    log,
	}, nil
}

// cacheKey returns the cache key for an identifier
func cacheKey(identifier string) string {
	return cacheKeyPrefix + identifier
}

// GetProfile returns the scraped profile for identifier, or nil when the
// profile cannot currently be acquired. A cached unexpired value is
// returned without any network activity or rate-limiter interaction.
//
// On a cache miss the scraper waits out the minimum inter-request delay,
// performs a single fetch, runs the extraction chain and caches a
// successful result. Every failure branch logs its cause and yields nil;
// callers treat nil as "data temporarily unavailable" and degrade
// gracefully. Nothing here is escalated as an error.
func (s *Scraper) GetProfile(ctx context.Context, identifier string) *models.ScrapedProfile {
	key := cacheKey(identifier)

	if profile, ok := s.cache.Get(key); ok {
		s.logger.DebugWithFields("profile cache hit", map[string]interface{}{
			"identifier": identifier,
		})
		return profile
	}

	// Concurrent misses for the same identifier share one acquisition.
	v, _, _ := s.flight.Do(key, func() (interface{}, error) {
		return s.acquire(ctx, identifier, key), nil
	})

	profile, _ := v.(*models.ScrapedProfile)
	return profile
}

// acquire runs the miss path: throttle, fetch, extract, store
func (s *Scraper) acquire(ctx context.Context, identifier, key string) *models.ScrapedProfile {
	// An earlier flight may have populated the cache while this caller
	// was queued behind the singleflight lock.
	if profile, ok := s.cache.Get(key); ok {
		return profile
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.WarnWithFields("throttle wait aborted", map[string]interface{}{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return nil
	}

	body, err := s.client.FetchProfilePage(ctx, identifier)
	if err != nil {
		s.logger.ErrorWithFields("profile fetch failed", map[string]interface{}{
			"identifier": identifier,
			"error_type": string(errors.TypeOf(err)),
			"error":      err.Error(),
		})
		return nil
	}

	result, ok := s.extractor.Extract(body, identifier)
	if !ok {
		// Distinct from a network failure: the page was fetched but no
		// strategy could pull a complete field set out of it.
		s.logger.WarnWithFields("profile extraction exhausted", map[string]interface{}{
			"identifier": identifier,
		})
		return nil
	}

	profile := &models.ScrapedProfile{
		Identifier:    identifier,
		AvatarURL:     result.AvatarURL,
		FollowerCount: result.FollowerCount,
		FetchedAt:     time.Now(),
	}
	s.cache.Set(key, profile, s.ttl)

	s.logger.InfoWithFields("profile scraped", map[string]interface{}{
		"identifier": identifier,
		"followers":  profile.FollowerCount,
	})

	return profile
}

// Invalidate drops any cached entry for identifier so the next GetProfile
// performs a fresh acquisition
func (s *Scraper) Invalidate(identifier string) {
	s.cache.Delete(cacheKey(identifier))
}

// ClearCache drops all cached profiles
func (s *Scraper) ClearCache() {
	s.cache.Clear()
}

// CacheStats returns a snapshot of the profile cache counters
func (s *Scraper) CacheStats() cache.Stats {
	return s.cache.Stats()
}
