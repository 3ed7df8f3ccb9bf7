package configurator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
)

// LineItem is a valid configuration priced for checkout
type LineItem struct {
	ProductID   string                  `json:"product_id"`
	Quantity    int                     `json:"quantity"`
	ContainerID string                  `json:"container_id,omitempty"`
	SizeID      string                  `json:"size_id,omitempty"`
	Options     []engine.SelectedOption `json:"options"`
	UnitPrice   decimal.Decimal         `json:"unit_price"`
	LineTotal   decimal.Decimal         `json:"line_total"`
	// Nutrition is per unit
	Nutrition catalog.Nutrition `json:"nutrition"`
}

// BuildLineItem turns a snapshot into a checkout line. Configurations with
// validation errors are refused.
func BuildLineItem(snap *engine.Snapshot, quantity int) (*LineItem, error) {
	if snap == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	if quantity < 1 {
		return nil, errors.InvalidArgumentf("quantity must be at least 1, got %d", quantity)
	}
	if !snap.Validation.IsValid {
		return nil, errors.FailedPreconditionf("configuration of %s is incomplete: %s",
			snap.ProductID, strings.Join(snap.Validation.Errors, "; ")).
			WithMeta("violations", snap.Validation.Errors)
	}

	item := &LineItem{
		ProductID: snap.ProductID,
		Quantity:  quantity,
		Options:   append([]engine.SelectedOption(nil), snap.SelectedOptionsFlat...),
		UnitPrice: snap.TotalPrice,
		LineTotal: snap.TotalPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Nutrition: snap.TotalNutrition,
	}
	if snap.SelectedContainer != nil {
		item.ContainerID = snap.SelectedContainer.ID
	}
	if snap.SelectedSize != nil {
		item.SizeID = snap.SelectedSize.ID
	}
	return item, nil
}
