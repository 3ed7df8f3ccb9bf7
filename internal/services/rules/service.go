// Package rules serves product customization rules to configuration
// sessions. Rules are cached per product with a TTL, concurrent lookups for
// the same product share one store round trip, and a failed fetch is retried
// once before the caller sees ErrRulesUnavailable.
package rules

//go:generate mockgen -destination=mock/mock_service.go -package=rulesmock github.com/KirkDiggler/configurator-api/internal/services/rules Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/metrics"
	"github.com/KirkDiggler/configurator-api/internal/pkg/clock"
	rulesrepo "github.com/KirkDiggler/configurator-api/internal/repositories/rules"
)

const (
	// DefaultTTL is how long fetched rules stay fresh
	DefaultTTL = 5 * time.Minute

	// DefaultFetchTimeout bounds one store round trip
	DefaultFetchTimeout = 5 * time.Second

	// DefaultRetryDelay is the pause before the single retry
	DefaultRetryDelay = 100 * time.Millisecond
)

// ErrRulesUnavailable matches errors returned when rules could not be
// fetched. It carries CodeUnavailable, so any unavailable error matches it
// under errors.Is.
var ErrRulesUnavailable = errors.New(errors.CodeUnavailable, "rules unavailable")

// Service defines how configuration sessions obtain rules
type Service interface {
	// Fetch returns the rules of a product. An empty product ID and a
	// product without stored rules both yield empty rules. The returned
	// rules are shared and must not be modified.
	Fetch(ctx context.Context, productID string) (*catalog.Rules, error)

	// Product returns the product metadata
	// Returns errors.NotFound if the product does not exist
	Product(ctx context.Context, productID string) (*catalog.Product, error)

	// LastKnown returns the most recently fetched rules for a product even
	// when they are past their TTL
	LastKnown(productID string) (*catalog.Rules, bool)

	// Invalidate drops the cached rules of a product
	Invalidate(productID string)
}

// Config holds the dependencies for the rules service
type Config struct {
	Repository rulesrepo.Repository
	Clock      clock.Clock
	// Metrics is optional
	Metrics *metrics.Registry

	// TTL defaults to DefaultTTL when zero
	TTL time.Duration
	// FetchTimeout defaults to DefaultFetchTimeout when zero
	FetchTimeout time.Duration
	// RetryDelay of zero retries immediately
	RetryDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	if c.RetryDelay < 0 {
		vb.Field("RetryDelay", "must not be negative")
	}
	return vb.Build()
}

type entry struct {
	rules     *catalog.Rules
	fetchedAt time.Time
}

type service struct {
	repo         rulesrepo.Repository
	clock        clock.Clock
	metrics      *metrics.Registry
	ttl          time.Duration
	fetchTimeout time.Duration
	retryDelay   time.Duration

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]entry
	// epoch changes on every invalidation so a fetch that started before
	// it does not repopulate the cache
	epoch map[string]uint64
}

// New creates a rules service
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &service{
		repo:         cfg.Repository,
		clock:        cfg.Clock,
		metrics:      cfg.Metrics,
		ttl:          cfg.TTL,
		fetchTimeout: cfg.FetchTimeout,
		retryDelay:   cfg.RetryDelay,
		cache:        make(map[string]entry),
		epoch:        make(map[string]uint64),
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry()
	}
	if s.ttl == 0 {
		s.ttl = DefaultTTL
	}
	if s.fetchTimeout == 0 {
		s.fetchTimeout = DefaultFetchTimeout
	}
	return s, nil
}

func (s *service) Fetch(ctx context.Context, productID string) (*catalog.Rules, error) {
	if productID == "" {
		return &catalog.Rules{}, nil
	}

	if rules, ok := s.fresh(productID); ok {
		s.metrics.RulesCacheHits.Inc()
		return rules, nil
	}
	s.metrics.RulesCacheMisses.Inc()

	ch := s.group.DoChan(productID, func() (interface{}, error) {
		return s.load(ctx, productID)
	})

	select {
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.GetCode(ctx.Err()), "rules fetch abandoned")
	case res := <-ch:
		if res.Shared {
			s.metrics.RulesCoalesced.Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*catalog.Rules), nil
	}
}

func (s *service) Product(ctx context.Context, productID string) (*catalog.Product, error) {
	if productID == "" {
		return nil, errors.InvalidArgument("product ID is required")
	}

	out, err := s.repo.GetProduct(ctx, rulesrepo.GetProductInput{ProductID: productID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get product %s", productID)
	}
	return out.Product, nil
}

func (s *service) LastKnown(productID string) (*catalog.Rules, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.cache[productID]
	if !ok {
		return nil, false
	}
	return e.rules, true
}

func (s *service) Invalidate(productID string) {
	s.mu.Lock()
	delete(s.cache, productID)
	s.epoch[productID]++
	s.mu.Unlock()

	s.group.Forget(productID)
	slog.Debug("invalidated rules", "product_id", productID)
}

func (s *service) fresh(productID string) (*catalog.Rules, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.cache[productID]
	if !ok || s.clock.Now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.rules, true
}

// load runs once per coalesced group. It detaches from the caller's
// cancellation since other callers may be waiting on the same result.
func (s *service) load(ctx context.Context, productID string) (*catalog.Rules, error) {
	// a caller that missed the cache just before the previous flight stored
	// its result starts a new flight; serve it from the cache
	if rules, ok := s.fresh(productID); ok {
		return rules, nil
	}

	s.mu.RLock()
	epoch := s.epoch[productID]
	s.mu.RUnlock()

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
	defer cancel()

	rules, err := s.fetchWithRetry(fetchCtx, productID)
	if err != nil {
		s.metrics.RulesUnavailable.Inc()
		slog.WarnContext(ctx, "rules unavailable",
			"product_id", productID,
			"error", err)
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "rules unavailable for product "+productID)
	}

	s.mu.Lock()
	if s.epoch[productID] == epoch {
		s.cache[productID] = entry{rules: rules, fetchedAt: s.clock.Now()}
	}
	s.mu.Unlock()

	return rules, nil
}

func (s *service) fetchWithRetry(ctx context.Context, productID string) (*catalog.Rules, error) {
	rules, err := s.fetchOnce(ctx, productID)
	if err == nil {
		return rules, nil
	}
	if !transient(err) {
		return nil, err
	}

	s.metrics.RulesRetries.Inc()
	slog.InfoContext(ctx, "retrying rules fetch",
		"product_id", productID,
		"error", err)

	if s.retryDelay > 0 {
		timer := time.NewTimer(s.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}

	return s.fetchOnce(ctx, productID)
}

func (s *service) fetchOnce(ctx context.Context, productID string) (*catalog.Rules, error) {
	start := time.Now()
	out, err := s.repo.GetRules(ctx, rulesrepo.GetRulesInput{ProductID: productID})
	s.metrics.RulesFetchSec.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.IsNotFound(err) {
			return &catalog.Rules{}, nil
		}
		return nil, err
	}
	if out.Rules == nil {
		return &catalog.Rules{}, nil
	}
	return out.Rules, nil
}

// transient reports failures worth one more attempt: the store was
// unreachable or slow, or the driver returned a raw transport error
func transient(err error) bool {
	var coded *errors.Error
	if !errors.As(err, &coded) {
		return true
	}
	switch coded.Code {
	case errors.CodeUnavailable, errors.CodeDeadlineExceeded:
		return true
	default:
		return false
	}
}
