package configurator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/constraints"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator"
	"github.com/KirkDiggler/configurator-api/internal/testutils"
)

func validSnapshot() *engine.Snapshot {
	return &engine.Snapshot{
		ProductID:         testutils.ProductJuice,
		SelectedContainer: &catalog.ContainerOption{ID: "bottle"},
		SelectedOptionsFlat: []engine.SelectedOption{
			{GroupID: "ice", OptionID: "no-ice", Position: 1},
		},
		TotalPrice:     testutils.Money("12.50"),
		TotalNutrition: catalog.Nutrition{Calories: 110},
		Validation:     constraints.NewResult(nil),
	}
}

func TestBuildLineItem(t *testing.T) {
	item, err := configurator.BuildLineItem(validSnapshot(), 4)
	require.NoError(t, err)

	assert.Equal(t, testutils.ProductJuice, item.ProductID)
	assert.Equal(t, "bottle", item.ContainerID)
	assert.Empty(t, item.SizeID)
	assert.Equal(t, "50.00", item.LineTotal.StringFixed(2))
	assert.Equal(t, "12.50", item.UnitPrice.StringFixed(2))
	assert.Equal(t, 110.0, item.Nutrition.Calories)
	assert.Len(t, item.Options, 1)
}

func TestBuildLineItemRejects(t *testing.T) {
	invalid := validSnapshot()
	invalid.Validation = constraints.NewResult([]constraints.Violation{
		{GroupID: "ice", Kind: constraints.KindRequired, Message: "must choose Ice"},
	})

	testCases := []struct {
		name     string
		snap     *engine.Snapshot
		quantity int
		code     errors.Code
	}{
		{name: "nil snapshot", snap: nil, quantity: 1, code: errors.CodeInvalidArgument},
		{name: "zero quantity", snap: validSnapshot(), quantity: 0, code: errors.CodeInvalidArgument},
		{name: "invalid configuration", snap: invalid, quantity: 1, code: errors.CodeFailedPrecondition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item, err := configurator.BuildLineItem(tc.snap, tc.quantity)
			assert.Nil(t, item)
			assert.Equal(t, tc.code, errors.GetCode(err))
		})
	}
}
