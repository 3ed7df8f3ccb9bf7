package catalog

import (
	"fmt"

	"github.com/KirkDiggler/configurator-api/internal/errors"
)

// Rules are the customization rules of one product. Slices keep the source's
// display order and are never re-sorted.
type Rules struct {
	Containers []ContainerOption    `json:"containers"`
	Sizes      []SizeOption         `json:"sizes"`
	Groups     []CustomizationGroup `json:"groups"`
}

// IsEmpty reports whether the product defines nothing to customize
func (r *Rules) IsEmpty() bool {
	return len(r.Containers) == 0 && len(r.Sizes) == 0 && len(r.Groups) == 0
}

// Container returns the container with the given id
func (r *Rules) Container(id string) (*ContainerOption, bool) {
	if id == "" {
		return nil, false
	}
	for i := range r.Containers {
		if r.Containers[i].ID == id {
			return &r.Containers[i], true
		}
	}
	return nil, false
}

// Size returns the size with the given id
func (r *Rules) Size(id string) (*SizeOption, bool) {
	if id == "" {
		return nil, false
	}
	for i := range r.Sizes {
		if r.Sizes[i].ID == id {
			return &r.Sizes[i], true
		}
	}
	return nil, false
}

// Group returns the group with the given id
func (r *Rules) Group(id string) (*CustomizationGroup, bool) {
	for i := range r.Groups {
		if r.Groups[i].GroupID == id {
			return &r.Groups[i], true
		}
	}
	return nil, false
}

// AvailableSizes returns the sizes offered with the given container. A
// container with MaxSizes set only offers the first MaxSizes sizes.
func (r *Rules) AvailableSizes(containerID string) []SizeOption {
	container, ok := r.Container(containerID)
	if !ok || container.MaxSizes <= 0 || container.MaxSizes >= len(r.Sizes) {
		return r.Sizes
	}
	return r.Sizes[:container.MaxSizes]
}

// Validate checks the rules are internally consistent: ids are unique and
// every group's cardinality bounds are satisfiable.
func (r *Rules) Validate() error {
	vb := errors.NewValidationBuilder()

	seenContainers := make(map[string]bool, len(r.Containers))
	for i, c := range r.Containers {
		field := fmt.Sprintf("containers[%d]", i)
		errors.ValidateRequired(field+".id", c.ID, vb)
		if seenContainers[c.ID] {
			vb.Fieldf(field+".id", "duplicate container id %q", c.ID)
		}
		seenContainers[c.ID] = true
		errors.ValidateNonNegative(field+".max_sizes", c.MaxSizes, vb)
	}

	seenSizes := make(map[string]bool, len(r.Sizes))
	for i, s := range r.Sizes {
		field := fmt.Sprintf("sizes[%d]", i)
		errors.ValidateRequired(field+".id", s.ID, vb)
		if seenSizes[s.ID] {
			vb.Fieldf(field+".id", "duplicate size id %q", s.ID)
		}
		seenSizes[s.ID] = true
		if s.NutritionMultiplier < 0 {
			vb.Field(field+".nutrition_multiplier", "must not be negative")
		}
	}

	seenGroups := make(map[string]bool, len(r.Groups))
	for i, g := range r.Groups {
		field := fmt.Sprintf("groups[%d]", i)
		errors.ValidateRequired(field+".group_id", g.GroupID, vb)
		if seenGroups[g.GroupID] {
			vb.Fieldf(field+".group_id", "duplicate group id %q", g.GroupID)
		}
		seenGroups[g.GroupID] = true

		errors.ValidateNonNegative(field+".min_selections", g.MinSelections, vb)
		if g.MaxSelections < 1 {
			vb.Field(field+".max_selections", "must be at least 1")
		}
		if g.MinSelections > g.MaxSelections {
			vb.Fieldf(field+".min_selections", "must not exceed max_selections (%d)", g.MaxSelections)
		}
		if g.MinSelections > len(g.Options) {
			vb.Fieldf(field+".min_selections", "group offers only %d options", len(g.Options))
		}

		seenOptions := make(map[string]bool, len(g.Options))
		for j, o := range g.Options {
			optField := fmt.Sprintf("%s.options[%d].id", field, j)
			errors.ValidateRequired(optField, o.ID, vb)
			if seenOptions[o.ID] {
				vb.Fieldf(optField, "duplicate option id %q", o.ID)
			}
			seenOptions[o.ID] = true
		}
	}

	return vb.Build()
}

// Validate checks the product fields the engine depends on
func (p *Product) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", p.ID, vb)
	if !p.PricingMode.Valid() {
		vb.Fieldf("pricing_mode", "unknown pricing mode %q", p.PricingMode)
	}
	if p.BasePrice.IsNegative() {
		vb.Field("base_price", "must not be negative")
	}
	return vb.Build()
}
