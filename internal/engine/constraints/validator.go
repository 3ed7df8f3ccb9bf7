// Package constraints checks a selection against each group's cardinality rules
package constraints

import (
	"fmt"

	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Result is the outcome of validating a selection. Violations are data, not errors.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`

	// Violations carries the same problems as Errors with the group they belong to
	Violations []Violation `json:"violations,omitempty"`
}

// Kind classifies a violation
type Kind string

const (
	KindRequired     Kind = "required"
	KindBelowMinimum Kind = "below_minimum"
	KindAboveMaximum Kind = "above_maximum"
	KindPolicy       Kind = "policy"
)

// Violation is one failed rule
type Violation struct {
	GroupID string `json:"group_id,omitempty"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Validate checks every group in declaration order. Each group reports at most
// one problem: a required group with no picks reports only that it is required.
func Validate(groups []catalog.CustomizationGroup, selections map[string][]string) Result {
	var violations []Violation
	for _, g := range groups {
		if v, ok := checkGroup(g, len(selections[g.GroupID])); ok {
			violations = append(violations, v)
		}
	}
	return NewResult(violations)
}

// ValidateState is Validate over a selection.State
func ValidateState(groups []catalog.CustomizationGroup, state selection.State) Result {
	return Validate(groups, state.Selections)
}

// NewResult builds a Result from violations, preserving their order
func NewResult(violations []Violation) Result {
	result := Result{
		IsValid:    len(violations) == 0,
		Errors:     make([]string, 0, len(violations)),
		Violations: violations,
	}
	for _, v := range violations {
		result.Errors = append(result.Errors, v.Message)
	}
	return result
}

func checkGroup(g catalog.CustomizationGroup, count int) (Violation, bool) {
	switch {
	case g.IsRequired && count == 0:
		return Violation{
			GroupID: g.GroupID,
			Kind:    KindRequired,
			Message: fmt.Sprintf("must choose %s", g.Name),
		}, true
	case count < g.MinSelections:
		return Violation{
			GroupID: g.GroupID,
			Kind:    KindBelowMinimum,
			Message: fmt.Sprintf("must choose at least %d of %s", g.MinSelections, g.Name),
		}, true
	case count > g.MaxSelections:
		// only reachable when selections were built outside selection.Store
		return Violation{
			GroupID: g.GroupID,
			Kind:    KindAboveMaximum,
			Message: fmt.Sprintf("may choose at most %d of %s", g.MaxSelections, g.Name),
		}, true
	}
	return Violation{}, false
}
