package rules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
	"github.com/KirkDiggler/configurator-api/internal/repositories/rules"
	"github.com/KirkDiggler/configurator-api/internal/testutils"
)

const catalogYAML = `
products:
  - id: frozen-yogurt
    name:
      en: Frozen yogurt
      ar: زبادي مجمد
    base_price: 0
    pricing_mode: size_as_total
    layout_mode: builder
    baseline:
      calories: 150
      sugar: 18
    containers:
      - id: cup
        name: Cup
        price_modifier: "1.50"
        max_sizes: 2
    sizes:
      - id: small
        name: Small
        price_modifier: 18
        nutrition_multiplier: 1
      - id: medium
        name: Medium
        price_modifier: 24.5
        nutrition_multiplier: 1.4
      - id: large
        name: Large
        price_modifier: 30
        nutrition_multiplier: 1.8
    groups:
      - id: toppings
        name: Toppings
        max_selections: 3
        options:
          - id: granola
            name_en: Granola
            price: 0.1
            nutrition:
              calories: 60
          - id: berries
            name_en: Berries
            price: 4
  - id: espresso
    name:
      en: Espresso
    base_price: "9.00"
`

func TestParseCatalog(t *testing.T) {
	file, err := rules.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	inputs := file.PutInputs()
	require.Len(t, inputs, 2)

	yogurt := inputs[0]
	assert.Equal(t, catalog.PricingModeSizeAsTotal, yogurt.Product.PricingMode)
	assert.Equal(t, "builder", yogurt.Product.LayoutMode)
	assert.Equal(t, 150.0, yogurt.Product.Baseline.Calories)
	assert.True(t, testutils.Money("1.50").Equal(yogurt.Rules.Containers[0].PriceModifier))
	assert.True(t, testutils.Money("24.5").Equal(yogurt.Rules.Sizes[1].PriceModifier))
	assert.Equal(t, "0.1", yogurt.Rules.Groups[0].Options[0].Price.String())
	assert.Equal(t, "Granola", yogurt.Rules.Groups[0].Options[0].Name.String())
	assert.Len(t, yogurt.Rules.AvailableSizes("cup"), 2)

	espresso := inputs[1]
	assert.Equal(t, catalog.PricingModeAdditive, espresso.Product.PricingMode)
	assert.True(t, testutils.Money("9").Equal(espresso.Product.BasePrice))
	assert.True(t, espresso.Rules.IsEmpty())
}

func TestParseCatalogRejectsBadAmount(t *testing.T) {
	_, err := rules.ParseCatalog([]byte("products:\n  - id: x\n    base_price: cheap\n"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	file, err := rules.LoadCatalogFile(path)
	require.NoError(t, err)

	repo := rules.NewInMemory()
	stored, err := rules.Seed(context.Background(), repo, file)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	out, err := repo.GetRules(context.Background(), rules.GetRulesInput{ProductID: "frozen-yogurt"})
	require.NoError(t, err)
	assert.Len(t, out.Rules.Sizes, 3)
}
