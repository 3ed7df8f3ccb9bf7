// Package configurator orchestrates product configuration: the Session type
// drives one configuration in process, and Service keeps configurations in
// a session store so clients can build them across requests.
package configurator

//go:generate mockgen -destination=mock/mock_service.go -package=configuratormock github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/metrics"
	"github.com/KirkDiggler/configurator-api/internal/pkg/idgen"
	selectionsession "github.com/KirkDiggler/configurator-api/internal/repositories/selection_session"
	"github.com/KirkDiggler/configurator-api/internal/services/rules"
)

// Operation names reported to metrics
const (
	opSetContainer = "set_container"
	opSetSize      = "set_size"
	opToggleOption = "toggle_option"
	opReset        = "reset"
	opGetSnapshot  = "get_snapshot"
	opQuote        = "quote_line_item"
	opEnd          = "end_session"
)

// maxMutateAttempts bounds how often a mutation is replayed after losing a
// concurrent update
const maxMutateAttempts = 3

// Service defines configuration operations on stored sessions
type Service interface {
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	SetContainer(ctx context.Context, input *SetContainerInput) (*SnapshotOutput, error)
	SetSize(ctx context.Context, input *SetSizeInput) (*SnapshotOutput, error)
	ToggleOption(ctx context.Context, input *ToggleOptionInput) (*ToggleOptionOutput, error)
	Reset(ctx context.Context, input *ResetInput) (*SnapshotOutput, error)
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*SnapshotOutput, error)
	QuoteLineItem(ctx context.Context, input *QuoteLineItemInput) (*QuoteLineItemOutput, error)
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)
}

// Config holds the dependencies for the configurator orchestrator
type Config struct {
	Rules       rules.Service
	SessionRepo selectionsession.Repository
	IDGenerator idgen.Generator

	// SessionTTL defaults to selectionsession.DefaultTTL when zero
	SessionTTL time.Duration
	// Policy defaults to engine.DefaultPolicy
	Policy *engine.Policy
	// Metrics is optional
	Metrics *metrics.Registry
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	rules       rules.Service
	sessionRepo selectionsession.Repository
	idGen       idgen.Generator
	sessionTTL  time.Duration
	policy      *engine.Policy
	metrics     *metrics.Registry
}

// NewOrchestrator creates a new configurator orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		rules:       cfg.Rules,
		sessionRepo: cfg.SessionRepo,
		idGen:       cfg.IDGenerator,
		sessionTTL:  cfg.SessionTTL,
		policy:      cfg.Policy,
		metrics:     cfg.Metrics,
	}
	if o.sessionTTL == 0 {
		o.sessionTTL = selectionsession.DefaultTTL
	}
	if o.metrics == nil {
		o.metrics = metrics.NewRegistry()
	}
	return o, nil
}

func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("productID", input.ProductID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	product, err := o.rules.Product(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	e, err := o.engineFor(ctx, product)
	if err != nil {
		return nil, err
	}

	created, err := o.sessionRepo.Create(ctx, selectionsession.CreateInput{
		Session: &selectionsession.Session{
			ID:        o.idGen.Generate(),
			ProductID: product.ID,
		},
		TTL: o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create selection session")
	}

	o.metrics.SessionsStarted.Inc()
	slog.InfoContext(ctx, "started configuration session",
		"session_id", created.Session.ID,
		"product_id", product.ID,
		"template", e.Template())

	return &StartSessionOutput{
		SessionID: created.Session.ID,
		Snapshot:  e.Snapshot(),
	}, nil
}

func (o *orchestrator) SetContainer(ctx context.Context, input *SetContainerInput) (*SnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snap, err := o.mutate(ctx, opSetContainer, input.SessionID, func(e *engine.Engine) {
		e.SetContainer(input.ContainerID)
	})
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Snapshot: snap}, nil
}

func (o *orchestrator) SetSize(ctx context.Context, input *SetSizeInput) (*SnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snap, err := o.mutate(ctx, opSetSize, input.SessionID, func(e *engine.Engine) {
		e.SetSize(input.SizeID)
	})
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Snapshot: snap}, nil
}

func (o *orchestrator) ToggleOption(ctx context.Context, input *ToggleOptionInput) (*ToggleOptionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("groupID", input.GroupID, vb)
	errors.ValidateRequired("optionID", input.OptionID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var outcome selection.Outcome
	snap, err := o.mutate(ctx, opToggleOption, input.SessionID, func(e *engine.Engine) {
		outcome = e.ToggleOption(input.GroupID, input.OptionID)
	})
	if err != nil {
		return nil, err
	}

	o.metrics.ToggleOutcomes.WithLabelValues(string(outcome)).Inc()
	return &ToggleOptionOutput{
		Outcome:  outcome,
		Snapshot: snap,
	}, nil
}

func (o *orchestrator) Reset(ctx context.Context, input *ResetInput) (*SnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snap, err := o.mutate(ctx, opReset, input.SessionID, func(e *engine.Engine) {
		e.Reset()
	})
	if err != nil {
		return nil, err
	}
	return &SnapshotOutput{Snapshot: snap}, nil
}

func (o *orchestrator) GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*SnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	_, e, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	o.metrics.SessionOps.WithLabelValues(opGetSnapshot).Inc()
	return &SnapshotOutput{Snapshot: e.Snapshot()}, nil
}

func (o *orchestrator) QuoteLineItem(ctx context.Context, input *QuoteLineItemInput) (*QuoteLineItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	_, e, err := o.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	o.metrics.SessionOps.WithLabelValues(opQuote).Inc()
	item, err := BuildLineItem(e.Snapshot(), input.Quantity)
	if err != nil {
		return nil, err
	}

	o.metrics.LineItemsQuoted.Inc()
	return &QuoteLineItemOutput{LineItem: item}, nil
}

func (o *orchestrator) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	if _, err := o.sessionRepo.Delete(ctx, selectionsession.DeleteInput{SessionID: input.SessionID}); err != nil {
		return nil, errors.Wrapf(err, "failed to end session %s", input.SessionID)
	}

	o.metrics.SessionOps.WithLabelValues(opEnd).Inc()
	return &EndSessionOutput{}, nil
}

// mutate loads a session, applies fn to its engine and stores the new state.
// A save that lost a concurrent update is retried on the fresh state.
func (o *orchestrator) mutate(ctx context.Context, op, sessionID string, fn func(*engine.Engine)) (*engine.Snapshot, error) {
	for attempt := 1; ; attempt++ {
		session, e, err := o.load(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		fn(e)
		session.State = e.State()

		_, err = o.sessionRepo.Update(ctx, selectionsession.UpdateInput{
			Session: session,
			TTL:     o.sessionTTL,
		})
		if err == nil {
			o.metrics.SessionOps.WithLabelValues(op).Inc()
			return e.Snapshot(), nil
		}
		if !errors.IsAborted(err) || attempt == maxMutateAttempts {
			return nil, errors.Wrapf(err, "failed to save session %s", sessionID)
		}
		slog.DebugContext(ctx, "session changed concurrently, retrying",
			"session_id", sessionID,
			"op", op,
			"attempt", attempt)
	}
}

// load rehydrates an engine for a stored session. Picks that the current
// rules no longer offer are dropped.
func (o *orchestrator) load(ctx context.Context, sessionID string) (*selectionsession.Session, *engine.Engine, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, nil, err
	}

	out, err := o.sessionRepo.Get(ctx, selectionsession.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get session %s", sessionID)
	}

	product, err := o.rules.Product(ctx, out.Session.ProductID)
	if err != nil {
		return nil, nil, err
	}
	e, err := o.engineFor(ctx, product)
	if err != nil {
		return nil, nil, err
	}

	e.Restore(out.Session.State)
	return out.Session, e, nil
}

func (o *orchestrator) engineFor(ctx context.Context, product *catalog.Product) (*engine.Engine, error) {
	r, err := o.rules.Fetch(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	e, err := engine.New(&engine.Config{
		Product: *product,
		Rules:   r,
		Policy:  o.policy,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to configure product %s", product.ID)
	}
	return e, nil
}

func validateSessionID(id string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("sessionID", id, vb)
	return vb.Build()
}
