// Package nutrition sums the nutrition profile of a configured product
package nutrition

import (
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Aggregate returns the total nutrition of one unit.
//
// The product baseline is scaled by the chosen size's multiplier (1 with no
// size), then the container and every selected option are added as-is. Ids
// missing from the rules contribute nothing.
func Aggregate(product catalog.Product, rules *catalog.Rules, state selection.State) catalog.Nutrition {
	multiplier := 1.0
	if size, ok := rules.Size(state.SizeID); ok {
		multiplier = size.Multiplier()
	}

	total := product.Baseline.Scale(multiplier)

	if container, ok := rules.Container(state.ContainerID); ok {
		total = total.Add(container.Nutrition)
	}

	// declaration order, so float rounding cannot depend on pick order
	for _, group := range rules.Groups {
		picked := state.Selections[group.GroupID]
		if len(picked) == 0 {
			continue
		}
		for _, option := range group.Options {
			if contains(picked, option.ID) {
				total = total.Add(option.Nutrition)
			}
		}
	}

	return total
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
