// Package catalog holds the product and customization rule types shared by the
// engine, the rule stores and the transport layer.
package catalog

import (
	"github.com/shopspring/decimal"
)

// PricingMode selects how the size of a product contributes to its price
type PricingMode string

const (
	// PricingModeAdditive keeps the product base price and charges the size as a surcharge
	PricingModeAdditive PricingMode = "additive"

	// PricingModeSizeAsTotal uses the chosen size modifier as the whole base price.
	// Build-your-own lines anchor price on container and size; flavors are add-ons.
	PricingModeSizeAsTotal PricingMode = "size_as_total"
)

// Valid reports whether the mode is one of the known modes
func (m PricingMode) Valid() bool {
	return m == PricingModeAdditive || m == PricingModeSizeAsTotal
}

// LocalizedName carries the Arabic and English display names of an option
type LocalizedName struct {
	Ar string `json:"ar,omitempty"`
	En string `json:"en,omitempty"`
}

// String returns the English name, falling back to Arabic
func (n LocalizedName) String() string {
	if n.En != "" {
		return n.En
	}
	return n.Ar
}

// Product is the catalog entry being configured
type Product struct {
	ID          string          `json:"id"`
	Name        LocalizedName   `json:"name"`
	BasePrice   decimal.Decimal `json:"base_price"`
	PricingMode PricingMode     `json:"pricing_mode"`
	Baseline    Nutrition       `json:"baseline"`

	// TemplateID and LayoutMode choose the render template, see templates.Resolve
	TemplateID string `json:"template_id,omitempty"`
	LayoutMode string `json:"layout_mode,omitempty"`
}

// ContainerOption is a cup, cone, box or other vessel the product is served in
type ContainerOption struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Nutrition     Nutrition       `json:"nutrition"`

	// MaxSizes limits the container to the first MaxSizes sizes; 0 means no limit
	MaxSizes int `json:"max_sizes,omitempty"`
}

// SizeOption is a portion size. PriceModifier is the absolute base price under
// PricingModeSizeAsTotal and a surcharge under PricingModeAdditive.
type SizeOption struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	PriceModifier       decimal.Decimal `json:"price_modifier"`
	NutritionMultiplier float64         `json:"nutrition_multiplier"`
}

// Multiplier returns the nutrition multiplier, treating an unset value as 1
func (s SizeOption) Multiplier() float64 {
	if s.NutritionMultiplier <= 0 {
		return 1
	}
	return s.NutritionMultiplier
}

// CustomizationGroup is a set of options with a selection cardinality
type CustomizationGroup struct {
	GroupID       string   `json:"group_id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon,omitempty"`
	IsRequired    bool     `json:"is_required"`
	MinSelections int      `json:"min_selections"`
	MaxSelections int      `json:"max_selections"`
	Options       []Option `json:"options"`
}

// Option returns the option with the given id
func (g *CustomizationGroup) Option(id string) (*Option, bool) {
	for i := range g.Options {
		if g.Options[i].ID == id {
			return &g.Options[i], true
		}
	}
	return nil, false
}

// IsSingleSelect reports whether a new pick replaces the current one
func (g *CustomizationGroup) IsSingleSelect() bool {
	return g.MaxSelections == 1
}

// Option is one selectable item inside a group
type Option struct {
	ID        string          `json:"id"`
	Name      LocalizedName   `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Nutrition Nutrition       `json:"nutrition"`
	Image     string          `json:"image,omitempty"`
}
