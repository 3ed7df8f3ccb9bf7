// Package selection holds the in-progress choices a user makes while
// configuring one product.
package selection

import (
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Outcome describes what a ToggleOption call did to the group
type Outcome string

const (
	// OutcomeAdded appended the option to the group
	OutcomeAdded Outcome = "added"
	// OutcomeRemoved removed a previously selected option
	OutcomeRemoved Outcome = "removed"
	// OutcomeReplaced swapped the only pick of a single-select group
	OutcomeReplaced Outcome = "replaced"
	// OutcomeRejected ignored the pick because a multi-select group is full
	OutcomeRejected Outcome = "rejected"
)

// State is a copy of the selections at one point in time
type State struct {
	ContainerID string `json:"container_id,omitempty"`
	SizeID      string `json:"size_id,omitempty"`

	// Selections maps group id to option ids in pick order
	Selections map[string][]string `json:"selections,omitempty"`
}

// Count returns the number of options picked in a group
func (s State) Count(groupID string) int {
	return len(s.Selections[groupID])
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := State{
		ContainerID: s.ContainerID,
		SizeID:      s.SizeID,
	}
	if len(s.Selections) > 0 {
		out.Selections = make(map[string][]string, len(s.Selections))
		for group, ids := range s.Selections {
			if len(ids) == 0 {
				continue
			}
			out.Selections[group] = append([]string(nil), ids...)
		}
	}
	return out
}

// IsEmpty reports whether nothing has been selected
func (s State) IsEmpty() bool {
	if s.ContainerID != "" || s.SizeID != "" {
		return false
	}
	for _, ids := range s.Selections {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// Store applies selection changes for one product. It is not safe for
// concurrent use; callers serialize mutations.
type Store struct {
	// maxByGroup caches each group's MaxSelections; unknown groups have capacity 0
	maxByGroup map[string]int
	state      State
}

// NewStore creates an empty store for the given groups
func NewStore(groups []catalog.CustomizationGroup) *Store {
	maxByGroup := make(map[string]int, len(groups))
	for _, g := range groups {
		maxByGroup[g.GroupID] = g.MaxSelections
	}
	return &Store{maxByGroup: maxByGroup}
}

// SetContainer replaces the chosen container. An empty id clears it.
func (s *Store) SetContainer(id string) {
	s.state.ContainerID = id
}

// SetSize replaces the chosen size. An empty id clears it.
func (s *Store) SetSize(id string) {
	s.state.SizeID = id
}

// ToggleOption selects or deselects optionID in groupID.
//
// A selected option is removed. Otherwise the option is appended while the
// group is below capacity; at capacity a single-select group swaps its pick
// and a multi-select group ignores the request.
func (s *Store) ToggleOption(groupID, optionID string) Outcome {
	current := s.state.Selections[groupID]

	for i, id := range current {
		if id == optionID {
			remaining := make([]string, 0, len(current)-1)
			remaining = append(remaining, current[:i]...)
			remaining = append(remaining, current[i+1:]...)
			s.put(groupID, remaining)
			return OutcomeRemoved
		}
	}

	maxSelections := s.maxByGroup[groupID]
	switch {
	case len(current) < maxSelections:
		next := make([]string, 0, len(current)+1)
		next = append(next, current...)
		s.put(groupID, append(next, optionID))
		return OutcomeAdded
	case maxSelections == 1:
		s.put(groupID, []string{optionID})
		return OutcomeReplaced
	default:
		return OutcomeRejected
	}
}

// Reset clears the container, the size and every group's selections
func (s *Store) Reset() {
	s.state = State{}
}

// Restore replaces the current state, typically with one loaded from storage.
// Groups the store does not know are dropped, repeated picks collapse to the
// first one and over-full groups are trimmed to their capacity, keeping the
// earliest picks.
func (s *Store) Restore(state State) {
	restored := State{
		ContainerID: state.ContainerID,
		SizeID:      state.SizeID,
	}
	for group, ids := range state.Selections {
		maxSelections, ok := s.maxByGroup[group]
		if !ok {
			continue
		}
		ids = uniqueIDs(ids)
		if len(ids) > maxSelections {
			ids = ids[:maxSelections]
		}
		if len(ids) == 0 {
			continue
		}
		if restored.Selections == nil {
			restored.Selections = make(map[string][]string)
		}
		restored.Selections[group] = ids
	}
	s.state = restored
}

// uniqueIDs returns a new slice without repeats or empty ids, in first-seen order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// State returns a deep copy of the current selections
func (s *Store) State() State {
	return s.state.Clone()
}

// Selected returns a copy of the picks in a group, in pick order
func (s *Store) Selected(groupID string) []string {
	return append([]string(nil), s.state.Selections[groupID]...)
}

func (s *Store) put(groupID string, ids []string) {
	if len(ids) == 0 {
		delete(s.state.Selections, groupID)
		return
	}
	if s.state.Selections == nil {
		s.state.Selections = make(map[string][]string)
	}
	s.state.Selections[groupID] = ids
}
