package engine

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/configurator-api/internal/engine/constraints"
	"github.com/KirkDiggler/configurator-api/internal/engine/pricing"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Snapshot is everything rendering and checkout need to know about the
// configuration at one point in time. It is a value; later mutations of the
// engine do not change it.
type Snapshot struct {
	ProductID   string              `json:"product_id"`
	PricingMode catalog.PricingMode `json:"pricing_mode"`
	Template    templates.Template  `json:"template"`

	SelectedContainer *catalog.ContainerOption `json:"selected_container,omitempty"`
	SelectedSize      *catalog.SizeOption      `json:"selected_size,omitempty"`

	// AvailableSizes are the sizes offered with the selected container
	AvailableSizes []catalog.SizeOption `json:"available_sizes"`

	// Selections maps group id to option ids in pick order
	Selections map[string][]string `json:"selections"`

	// SelectedOptionsFlat lists every resolvable pick, groups in declaration
	// order and picks in pick order
	SelectedOptionsFlat []SelectedOption `json:"selected_options_flat"`

	Price          pricing.Breakdown  `json:"price"`
	TotalPrice     decimal.Decimal    `json:"total_price"`
	TotalNutrition catalog.Nutrition  `json:"total_nutrition"`
	Validation     constraints.Result `json:"validation"`
}

// SelectedOption is one pick flattened out of its group
type SelectedOption struct {
	GroupID   string                `json:"group_id"`
	GroupName string                `json:"group_name"`
	OptionID  string                `json:"option_id"`
	Name      catalog.LocalizedName `json:"name"`
	Price     decimal.Decimal       `json:"price"`
	Image     string                `json:"image,omitempty"`

	// Position is the 1-based pick number within the group, used for display numbering
	Position int `json:"position"`
}

// Policy decides whether container and size are mandatory. A requirement only
// applies when the product offers at least one container or size.
type Policy struct {
	RequireContainer bool
	RequireSize      bool
}

// DefaultPolicy requires a container and a size whenever the product offers them
func DefaultPolicy() Policy {
	return Policy{
		RequireContainer: true,
		RequireSize:      true,
	}
}
