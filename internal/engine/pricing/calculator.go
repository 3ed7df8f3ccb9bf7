// Package pricing computes the unit price of a configured product
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Breakdown is the unit price split by where each part came from
type Breakdown struct {
	Base      decimal.Decimal `json:"base"`
	Container decimal.Decimal `json:"container"`
	Size      decimal.Decimal `json:"size"`
	Options   decimal.Decimal `json:"options"`
	Total     decimal.Decimal `json:"total"`
}

// Calculate prices one unit of the product.
//
// Under PricingModeSizeAsTotal a chosen size replaces the base price and adds
// no surcharge; without a size the base price applies. Under
// PricingModeAdditive the size modifier is added on top of the base price.
// Ids missing from the rules contribute nothing. Quantity is not applied here.
func Calculate(product catalog.Product, rules *catalog.Rules, state selection.State) Breakdown {
	size, hasSize := rules.Size(state.SizeID)

	b := Breakdown{
		Base:      product.BasePrice,
		Container: decimal.Zero,
		Size:      decimal.Zero,
		Options:   decimal.Zero,
	}

	if product.PricingMode == catalog.PricingModeSizeAsTotal && hasSize {
		b.Base = size.PriceModifier
	}
	if container, ok := rules.Container(state.ContainerID); ok {
		b.Container = container.PriceModifier
	}
	if product.PricingMode == catalog.PricingModeAdditive && hasSize {
		b.Size = size.PriceModifier
	}

	// iterate groups rather than the map so the sum does not depend on map order
	for i := range rules.Groups {
		group := &rules.Groups[i]
		for _, optionID := range state.Selections[group.GroupID] {
			if option, ok := group.Option(optionID); ok {
				b.Options = b.Options.Add(option.Price)
			}
		}
	}

	b.Total = b.Base.Add(b.Container).Add(b.Size).Add(b.Options)
	return b
}

// Total is Calculate(...).Total
func Total(product catalog.Product, rules *catalog.Rules, state selection.State) decimal.Decimal {
	return Calculate(product, rules, state).Total
}
