package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/davidbz/propwise/internal/observability"
)

// CacheTTLConfig holds the time-to-live of each request kind.
type CacheTTLConfig struct {
	Search   time.Duration `env:"CACHE_TTL_SEARCH"   envDefault:"1h"`
	Analysis time.Duration `env:"CACHE_TTL_ANALYSIS" envDefault:"24h"`
	Trends   time.Duration `env:"CACHE_TTL_TRENDS"   envDefault:"12h"`
}

// For returns the TTL configured for kind.
func (c CacheTTLConfig) For(kind RequestKind) time.Duration {
	switch kind {
	case KindSearch:
		return c.Search
	case KindInvestment:
		return c.Analysis
	case KindTrend:
		return c.Trends
	}
	return 0
}

// CacheStoreConfig tunes the cache store.
type CacheStoreConfig struct {
	// ComputeTimeout bounds a detached single-flight compute.
	ComputeTimeout time.Duration `env:"COMPUTE_TIMEOUT"     envDefault:"2m"`
	// TierTimeout bounds each backend operation.
	TierTimeout time.Duration `env:"CACHE_TIER_TIMEOUT"  envDefault:"250ms"`
	// TierCooldown is how long a failing tier is skipped.
	TierCooldown time.Duration `env:"CACHE_TIER_COOLDOWN" envDefault:"30s"`
}

// CacheEntry is the envelope stored in every tier.
type CacheEntry struct {
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
	Kind     RequestKind     `json:"kind"`
}

// ExpiresAt returns the instant after which the entry is absent.
func (e *CacheEntry) ExpiresAt() time.Time {
	return e.StoredAt.Add(e.TTL)
}

// Expired reports whether now is past the entry's lifetime.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt())
}

// TierStatus reports the reachability of one cache tier.
type TierStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

type cacheTier struct {
	backend   CacheBackend
	downUntil atomic.Int64
}

func (t *cacheTier) available(now time.Time) bool {
	return now.UnixNano() >= t.downUntil.Load()
}

// CacheStore layers cache tiers (fastest first) and de-duplicates concurrent
// computes per key. A failing tier degrades to a miss and is never surfaced.
type CacheStore struct {
	tiers  []*cacheTier
	clock  Clock
	cfg    CacheStoreConfig
	events EventPublisher
	flight singleflight.Group
}

// NewCacheStore creates a cache store over backends, ordered fastest first.
// With no backends every lookup misses and every GetOrCompute computes.
func NewCacheStore(cfg CacheStoreConfig, clock Clock, events EventPublisher, backends ...CacheBackend) *CacheStore {
	if clock == nil {
		clock = SystemClock{}
	}

	tiers := make([]*cacheTier, 0, len(backends))
	for _, b := range backends {
		if b != nil {
			tiers = append(tiers, &cacheTier{backend: b})
		}
	}

	return &CacheStore{
		tiers:  tiers,
		clock:  clock,
		cfg:    cfg,
		events: events,
	}
}

// Get returns the first live entry found, back-filling faster tiers.
func (s *CacheStore) Get(ctx context.Context, key string) (*CacheEntry, bool) {
	logger := observability.FromContext(ctx)
	now := s.clock.Now()

	for i, tier := range s.tiers {
		if !tier.available(now) {
			continue
		}

		raw, err := s.tierGet(ctx, tier, key)
		if errors.Is(err, ErrCacheMiss) {
			continue
		}
		if err != nil {
			s.markDown(ctx, tier, "get", err)
			continue
		}

		var entry CacheEntry
		if decodeErr := json.Unmarshal(raw, &entry); decodeErr != nil {
			logger.Warn("discarding undecodable cache entry",
				observability.String("tier", tier.backend.Name()),
				observability.String("key", key),
				observability.Error(decodeErr))
			continue
		}

		if entry.Expired(now) {
			continue
		}

		s.backfill(ctx, i, key, raw, &entry, now)
		return &entry, true
	}

	return nil, false
}

// Set stores value under key in every available tier, overwriting prior values.
// Tier failures are absorbed; the returned error only reports an invalid payload.
func (s *CacheStore) Set(ctx context.Context, key string, kind RequestKind, value []byte, ttl time.Duration) (time.Time, error) {
	now := s.clock.Now()
	if ttl <= 0 {
		return now, nil
	}

	raw, err := json.Marshal(CacheEntry{
		Value:    json.RawMessage(value),
		StoredAt: now,
		TTL:      ttl,
		Kind:     kind,
	})
	if err != nil {
		return now, fmt.Errorf("failed to encode cache entry: %w", err)
	}

	for _, tier := range s.tiers {
		if !tier.available(now) {
			continue
		}
		if setErr := s.tierSet(ctx, tier, key, raw, ttl); setErr != nil {
			s.markDown(ctx, tier, "set", setErr)
		}
	}

	return now, nil
}

type flightResult struct {
	value    []byte
	storedAt time.Time
	hit      bool
}

// GetOrCompute returns the cached value for key or runs compute exactly once
// among concurrent callers, caching a successful result for ttl.
//
// The compute runs detached from the caller's cancellation so other waiters are
// not affected when one abandons; an abandoning caller gets its context error.
// Compute failures reach every waiter and are not cached.
func (s *CacheStore) GetOrCompute(
	ctx context.Context,
	key string,
	kind RequestKind,
	ttl time.Duration,
	compute func(ctx context.Context) ([]byte, error),
) ([]byte, CacheInfo, error) {
	if entry, ok := s.Get(ctx, key); ok {
		return bytes.Clone(entry.Value), CacheInfo{Status: CacheHit, Key: key, StoredAt: entry.StoredAt}, nil
	}

	ch := s.flight.DoChan(key, func() (interface{}, error) {
		detached := context.WithoutCancel(ctx)

		// A flight that finished between our miss and this call has already stored the value.
		if entry, ok := s.Get(detached, key); ok {
			return flightResult{value: entry.Value, storedAt: entry.StoredAt, hit: true}, nil
		}

		value, err := s.runCompute(detached, compute)
		if err != nil {
			return nil, err
		}

		storedAt, setErr := s.Set(detached, key, kind, value, ttl)
		if setErr != nil {
			observability.FromContext(detached).Warn("computed value not cached",
				observability.String("key", key),
				observability.Error(setErr))
		}

		return flightResult{value: value, storedAt: storedAt}, nil
	})

	select {
	case <-ctx.Done():
		return nil, CacheInfo{Status: CacheMiss, Key: key}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, CacheInfo{Status: CacheMiss, Key: key, Shared: res.Shared}, res.Err
		}

		fr, _ := res.Val.(flightResult)
		info := CacheInfo{Status: CacheMiss, Key: key, StoredAt: fr.storedAt, Shared: res.Shared}
		if fr.hit {
			info.Status = CacheHit
		}
		return bytes.Clone(fr.value), info, nil
	}
}

// Invalidate removes every key starting with prefix from all available tiers.
func (s *CacheStore) Invalidate(ctx context.Context, prefix string) int {
	now := s.clock.Now()
	removed := 0

	for _, tier := range s.tiers {
		if !tier.available(now) {
			continue
		}

		n, err := tier.backend.DeletePrefix(ctx, prefix)
		if err != nil {
			s.markDown(ctx, tier, "invalidate", err)
			continue
		}
		removed += n
	}

	observability.FromContext(ctx).Info("cache invalidated",
		observability.String("prefix", prefix),
		observability.Int("removed", removed))

	return removed
}

// Status pings every tier.
func (s *CacheStore) Status(ctx context.Context) []TierStatus {
	statuses := make([]TierStatus, 0, len(s.tiers))
	for _, tier := range s.tiers {
		status := TierStatus{Name: tier.backend.Name(), Available: true}

		pingCtx, cancel := s.tierContext(ctx)
		err := tier.backend.Ping(pingCtx)
		cancel()

		if err != nil {
			status.Available = false
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *CacheStore) runCompute(ctx context.Context, compute func(ctx context.Context) ([]byte, error)) (value []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = UpstreamError("compute", fmt.Errorf("panic: %v", r))
		}
	}()

	if s.cfg.ComputeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ComputeTimeout)
		defer cancel()
	}

	return compute(ctx)
}

func (s *CacheStore) backfill(ctx context.Context, found int, key string, raw []byte, entry *CacheEntry, now time.Time) {
	remaining := entry.ExpiresAt().Sub(now)
	if remaining <= 0 {
		return
	}

	for _, tier := range s.tiers[:found] {
		if !tier.available(now) {
			continue
		}
		if err := s.tierSet(ctx, tier, key, raw, remaining); err != nil {
			s.markDown(ctx, tier, "backfill", err)
		}
	}
}

func (s *CacheStore) tierGet(ctx context.Context, tier *cacheTier, key string) ([]byte, error) {
	tctx, cancel := s.tierContext(ctx)
	defer cancel()
	return tier.backend.Get(tctx, key)
}

func (s *CacheStore) tierSet(ctx context.Context, tier *cacheTier, key string, raw []byte, ttl time.Duration) error {
	tctx, cancel := s.tierContext(ctx)
	defer cancel()
	return tier.backend.Set(tctx, key, raw, ttl)
}

func (s *CacheStore) tierContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.TierTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.TierTimeout)
	}
	return context.WithCancel(ctx)
}

// markDown puts tier on cooldown after a failure. Failures caused by the
// caller's own cancellation leave the tier up.
func (s *CacheStore) markDown(ctx context.Context, tier *cacheTier, operation string, err error) {
	if ctx.Err() != nil {
		observability.FromContext(ctx).Debug("cache tier call abandoned by caller",
			observability.String("tier", tier.backend.Name()),
			observability.String("operation", operation),
			observability.Error(err))
		return
	}

	if s.cfg.TierCooldown > 0 {
		tier.downUntil.Store(s.clock.Now().Add(s.cfg.TierCooldown).UnixNano())
	}

	observability.FromContext(ctx).Warn("cache tier unavailable, degrading to miss",
		observability.String("tier", tier.backend.Name()),
		observability.String("operation", operation),
		observability.Duration("cooldown", s.cfg.TierCooldown),
		observability.Error(err))

	if s.events != nil {
		s.events.Publish(ctx, observability.EventCacheTierFailed, map[string]interface{}{
			"tier":      tier.backend.Name(),
			"operation": operation,
		})
	}
}
