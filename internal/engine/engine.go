// Package engine composes selection, validation, pricing, nutrition and
// template resolution for one product into a single snapshot.
package engine

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/configurator-api/internal/engine/constraints"
	"github.com/KirkDiggler/configurator-api/internal/engine/nutrition"
	"github.com/KirkDiggler/configurator-api/internal/engine/pricing"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
)

// Config holds what an engine needs for one product
type Config struct {
	Product catalog.Product

	// Rules may be nil when the product's rules could not be loaded
	Rules *catalog.Rules

	// Policy defaults to DefaultPolicy
	Policy *Policy
}

// Validate ensures the product can be priced
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if err := c.Product.Validate(); err != nil {
		return errors.Wrap(err, "invalid product")
	}
	return nil
}

// Engine is the configuration state of one product. Mutations are applied
// atomically; Snapshot always observes a state between two mutations.
type Engine struct {
	mu       sync.Mutex
	product  catalog.Product
	rules    *catalog.Rules
	policy   Policy
	template templates.Template
	store    *selection.Store
}

// New creates an engine with an empty selection
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	rules := cfg.Rules
	if rules == nil {
		rules = &catalog.Rules{}
	}
	policy := DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}

	return &Engine{
		product:  cfg.Product,
		rules:    rules,
		policy:   policy,
		template: templates.Resolve(cfg.Product),
		store:    selection.NewStore(rules.Groups),
	}, nil
}

// Product returns the product being configured
func (e *Engine) Product() catalog.Product {
	return e.product
}

// Rules returns the rules the engine was built with. Callers must not modify them.
func (e *Engine) Rules() *catalog.Rules {
	return e.rules
}

// Template returns the resolved render template
func (e *Engine) Template() templates.Template {
	return e.template
}

// SetContainer replaces the chosen container
func (e *Engine) SetContainer(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.SetContainer(id)
}

// SetSize replaces the chosen size
func (e *Engine) SetSize(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.SetSize(id)
}

// ToggleOption selects or deselects an option, see selection.Store.ToggleOption
func (e *Engine) ToggleOption(groupID, optionID string) selection.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.ToggleOption(groupID, optionID)
}

// Reset clears every selection
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Reset()
}

// Restore replaces the selection with a previously saved state
func (e *Engine) Restore(state selection.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Restore(state)
}

// State returns a copy of the current selection
func (e *Engine) State() selection.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.State()
}

// Snapshot computes price, nutrition and validation for the current selection
func (e *Engine) Snapshot() *Snapshot {
	return e.SnapshotOf(e.State())
}

// SnapshotOf computes a snapshot for an arbitrary state against this engine's
// rules without touching the engine's own selection.
func (e *Engine) SnapshotOf(state selection.State) *Snapshot {
	state = state.Clone()
	container, size := e.resolve(state)
	price := pricing.Calculate(e.product, e.rules, state)

	selections := state.Selections
	if selections == nil {
		selections = map[string][]string{}
	}

	return &Snapshot{
		ProductID:           e.product.ID,
		PricingMode:         e.product.PricingMode,
		Template:            e.template,
		SelectedContainer:   container,
		SelectedSize:        size,
		AvailableSizes:      e.rules.AvailableSizes(state.ContainerID),
		Selections:          selections,
		SelectedOptionsFlat: flatten(e.rules.Groups, state),
		Price:               price,
		TotalPrice:          price.Total,
		TotalNutrition:      nutrition.Aggregate(e.product, e.rules, state),
		Validation:          e.validate(state, container, size),
	}
}

func (e *Engine) validate(state selection.State, container *catalog.ContainerOption, size *catalog.SizeOption) constraints.Result {
	var violations []constraints.Violation

	if e.policy.RequireContainer && len(e.rules.Containers) > 0 && container == nil {
		violations = append(violations, policyViolation("must choose a container"))
	}

	available := e.rules.AvailableSizes(state.ContainerID)
	switch {
	case size == nil:
		if e.policy.RequireSize && len(available) > 0 {
			violations = append(violations, policyViolation("must choose a size"))
		}
	case container != nil && !offersSize(available, size.ID):
		violations = append(violations, policyViolation(
			fmt.Sprintf("size %s is not available for %s", size.Name, container.Name)))
	}

	groupResult := constraints.ValidateState(e.rules.Groups, state)
	return constraints.NewResult(append(violations, groupResult.Violations...))
}

// resolve returns copies of the chosen container and size, nil when unset or stale
func (e *Engine) resolve(state selection.State) (*catalog.ContainerOption, *catalog.SizeOption) {
	var container *catalog.ContainerOption
	if c, ok := e.rules.Container(state.ContainerID); ok {
		copied := *c
		container = &copied
	}
	var size *catalog.SizeOption
	if s, ok := e.rules.Size(state.SizeID); ok {
		copied := *s
		size = &copied
	}
	return container, size
}

func policyViolation(message string) constraints.Violation {
	return constraints.Violation{Kind: constraints.KindPolicy, Message: message}
}

func offersSize(sizes []catalog.SizeOption, id string) bool {
	for _, s := range sizes {
		if s.ID == id {
			return true
		}
	}
	return false
}

func flatten(groups []catalog.CustomizationGroup, state selection.State) []SelectedOption {
	flat := make([]SelectedOption, 0)
	for i := range groups {
		group := &groups[i]
		position := 0
		for _, optionID := range state.Selections[group.GroupID] {
			option, ok := group.Option(optionID)
			if !ok {
				continue
			}
			position++
			flat = append(flat, SelectedOption{
				GroupID:   group.GroupID,
				GroupName: group.Name,
				OptionID:  option.ID,
				Name:      option.Name,
				Price:     option.Price,
				Image:     option.Image,
				Position:  position,
			})
		}
	}
	return flat
}
