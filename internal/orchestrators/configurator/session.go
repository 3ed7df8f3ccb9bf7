package configurator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/services/rules"
)

// LoadState tracks where a session is in loading its product's rules
type LoadState string

const (
	// StateIdle has no product
	StateIdle LoadState = "idle"
	// StateLoading is waiting for rules; selections are empty
	StateLoading LoadState = "loading"
	// StateReady has rules, possibly with zero groups
	StateReady LoadState = "ready"
	// StateRulesUnavailable could not fetch rules; only the last known
	// containers and sizes are offered
	StateRulesUnavailable LoadState = "rules_unavailable"
)

// ErrLoadSuperseded is returned by a Load that finished after a newer Load
// or a Dismiss. Its result was discarded. It carries a reason so other
// cancellations do not match it.
var ErrLoadSuperseded = errors.Canceled("load superseded by a newer request").
	WithMeta(errors.MetaReason, "load_superseded")

// SessionConfig holds the dependencies of a Session
type SessionConfig struct {
	Rules rules.Service
	// Policy defaults to engine.DefaultPolicy
	Policy *engine.Policy
}

// Validate ensures all required dependencies are provided
func (c *SessionConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	return vb.Build()
}

// Session is the configuration one user is building in one place. Switching
// product always discards the previous selections, and a slow load never
// overwrites a newer one.
type Session struct {
	rules  rules.Service
	policy *engine.Policy

	mu         sync.Mutex
	state      LoadState
	generation uint64
	engine     *engine.Engine
	loadErr    error
}

// NewSession creates an idle session
func NewSession(cfg *SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Session{
		rules:  cfg.Rules,
		policy: cfg.Policy,
		state:  StateIdle,
	}, nil
}

// Load switches the session to product and fetches its rules. Selections are
// cleared before the fetch starts. When rules are unavailable the session
// still offers the last known containers and sizes and Load returns the
// fetch error.
func (s *Session) Load(ctx context.Context, product catalog.Product) error {
	loading, err := s.newEngine(product, nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = StateLoading
	s.loadErr = nil
	s.engine = loading
	s.mu.Unlock()

	fetched, err := s.rules.Fetch(ctx, product.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.DebugContext(ctx, "discarding superseded rules load", "product_id", product.ID)
		return ErrLoadSuperseded
	}

	if err != nil && interrupted(ctx, err) {
		// the fetch never ran to completion, so nothing is known about the rules
		s.state = StateIdle
		s.engine = nil
		slog.DebugContext(ctx, "rules load interrupted", "product_id", product.ID, "error", err)
		return errors.Wrapf(err, "loading rules for product %s was interrupted", product.ID)
	}

	if err != nil {
		partial, engErr := s.newEngine(product, s.partialRules(product.ID))
		if engErr != nil {
			return engErr
		}
		s.state = StateRulesUnavailable
		s.loadErr = err
		s.engine = partial
		slog.WarnContext(ctx, "configuring without customization rules",
			"product_id", product.ID,
			"error", err)
		return err
	}

	ready, err := s.newEngine(product, fetched)
	if err != nil {
		return err
	}
	s.state = StateReady
	s.engine = ready
	return nil
}

// Dismiss clears the product and selections. A load still in flight is
// discarded when it finishes.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = StateIdle
	s.engine = nil
	s.loadErr = nil
}

// State returns the load state and, in StateRulesUnavailable, the fetch error
func (s *Session) State() (LoadState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.loadErr
}

// SetContainer selects a container; an empty id clears it
func (s *Session) SetContainer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		s.engine.SetContainer(id)
	}
}

// SetSize selects a size; an empty id clears it
func (s *Session) SetSize(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		s.engine.SetSize(id)
	}
}

// ToggleOption picks or unpicks an option. Without a product every toggle
// is rejected.
func (s *Session) ToggleOption(groupID, optionID string) selection.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return selection.OutcomeRejected
	}
	return s.engine.ToggleOption(groupID, optionID)
}

// Reset clears the selections but keeps the product and its rules
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		s.engine.Reset()
	}
}

// Snapshot returns the current configuration, or nil when idle
func (s *Session) Snapshot() *engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil
	}
	return s.engine.Snapshot()
}

// LineItem builds a checkout line from the current configuration
func (s *Session) LineItem(quantity int) (*LineItem, error) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, errors.FailedPrecondition("no product is being configured")
	}
	return BuildLineItem(snap, quantity)
}

// partialRules keeps containers and sizes from the last successful fetch;
// groups are never served stale
func (s *Session) partialRules(productID string) *catalog.Rules {
	last, ok := s.rules.LastKnown(productID)
	if !ok {
		return &catalog.Rules{}
	}
	return &catalog.Rules{
		Containers: last.Containers,
		Sizes:      last.Sizes,
	}
}

func (s *Session) newEngine(product catalog.Product, r *catalog.Rules) (*engine.Engine, error) {
	e, err := engine.New(&engine.Config{Product: product, Rules: r, Policy: s.policy})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to configure product %s", product.ID)
	}
	return e, nil
}

// interrupted reports a fetch that stopped because the caller gave up
func interrupted(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	switch errors.GetCode(err) {
	case errors.CodeCanceled, errors.CodeDeadlineExceeded:
		return true
	default:
		return false
	}
}
