package engine_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/constraints"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
	"github.com/KirkDiggler/configurator-api/internal/errors"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type EngineTestSuite struct {
	suite.Suite
	product catalog.Product
	rules   *catalog.Rules
	engine  *engine.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.product = catalog.Product{
		ID:          "sundae",
		BasePrice:   d("50"),
		PricingMode: catalog.PricingModeAdditive,
		Baseline:    catalog.Nutrition{Calories: 200},
		TemplateID:  "template_3",
		LayoutMode:  "selector",
	}
	s.rules = &catalog.Rules{
		Containers: []catalog.ContainerOption{
			{ID: "cup", Name: "Cup", PriceModifier: d("5"), MaxSizes: 1},
			{ID: "tub", Name: "Tub", PriceModifier: d("8")},
		},
		Sizes: []catalog.SizeOption{
			{ID: "regular", Name: "Regular", PriceModifier: d("10"), NutritionMultiplier: 1},
			{ID: "large", Name: "Large", PriceModifier: d("60"), NutritionMultiplier: 1.5},
		},
		Groups: []catalog.CustomizationGroup{
			{
				GroupID:       "flavors",
				Name:          "Flavors",
				IsRequired:    true,
				MinSelections: 2,
				MaxSelections: 3,
				Options: []catalog.Option{
					{ID: "vanilla", Name: catalog.LocalizedName{En: "Vanilla"}, Price: d("3")},
					{ID: "mango", Name: catalog.LocalizedName{En: "Mango"}, Price: d("4")},
					{ID: "pistachio", Name: catalog.LocalizedName{En: "Pistachio"}, Price: d("6")},
				},
			},
			{
				GroupID:       "sauce",
				Name:          "Sauce",
				MaxSelections: 1,
				Options: []catalog.Option{
					{ID: "caramel", Price: d("1")},
					{ID: "chocolate", Price: d("2")},
				},
			},
		},
	}

	e, err := engine.New(&engine.Config{Product: s.product, Rules: s.rules})
	s.Require().NoError(err)
	s.engine = e
}

func (s *EngineTestSuite) TestNewValidatesConfig() {
	_, err := engine.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = engine.New(&engine.Config{Product: catalog.Product{ID: "p", PricingMode: "bogus"}})
	s.True(errors.IsInvalidArgument(err))

	e, err := engine.New(&engine.Config{Product: s.product})
	s.Require().NoError(err)
	s.Empty(e.Rules().Groups)
}

func (s *EngineTestSuite) TestAdditiveTotal() {
	s.engine.SetContainer("tub")
	s.engine.SetSize("regular")
	s.engine.ToggleOption("flavors", "vanilla")
	s.engine.ToggleOption("flavors", "mango")

	snap := s.engine.Snapshot()
	// 50 base + 8 tub + 10 regular + 3 + 4
	s.True(d("75").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
	s.True(snap.Validation.IsValid, "errors: %v", snap.Validation.Errors)
	s.Equal(templates.Complex, snap.Template)
}

func (s *EngineTestSuite) TestSizeAsTotal() {
	s.product.PricingMode = catalog.PricingModeSizeAsTotal
	e, err := engine.New(&engine.Config{Product: s.product, Rules: s.rules})
	s.Require().NoError(err)

	e.SetSize("large")
	e.ToggleOption("flavors", "vanilla")
	e.ToggleOption("flavors", "mango")

	snap := e.Snapshot()
	s.True(d("67").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
	s.Equal(catalog.Nutrition{Calories: 300}, snap.TotalNutrition)
}

func (s *EngineTestSuite) TestPolicyViolationsComeFirst() {
	snap := s.engine.Snapshot()

	s.False(snap.Validation.IsValid)
	s.Equal([]string{
		"must choose a container",
		"must choose a size",
		"must choose Flavors",
	}, snap.Validation.Errors)
	s.Equal(constraints.KindPolicy, snap.Validation.Violations[0].Kind)
}

func (s *EngineTestSuite) TestPolicyCanBeRelaxed() {
	e, err := engine.New(&engine.Config{
		Product: s.product,
		Rules:   s.rules,
		Policy:  &engine.Policy{},
	})
	s.Require().NoError(err)

	s.Equal([]string{"must choose Flavors"}, e.Snapshot().Validation.Errors)
}

func (s *EngineTestSuite) TestContainerLimitsSizes() {
	s.engine.SetContainer("cup")
	s.engine.SetSize("large")

	snap := s.engine.Snapshot()
	s.Len(snap.AvailableSizes, 1)
	s.Contains(snap.Validation.Errors, "size Large is not available for Cup")
}

func (s *EngineTestSuite) TestSelectedOptionsFlat() {
	s.engine.ToggleOption("sauce", "chocolate")
	s.engine.ToggleOption("flavors", "pistachio")
	s.engine.ToggleOption("flavors", "vanilla")

	flat := s.engine.Snapshot().SelectedOptionsFlat
	s.Require().Len(flat, 3)

	s.Equal("pistachio", flat[0].OptionID)
	s.Equal(1, flat[0].Position)
	s.Equal("vanilla", flat[1].OptionID)
	s.Equal(2, flat[1].Position)
	s.Equal("sauce", flat[2].GroupID)
	s.Equal(1, flat[2].Position)
}

func (s *EngineTestSuite) TestStaleIdsContributeNothing() {
	s.engine.Restore(selection.State{
		ContainerID: "bucket",
		Selections:  map[string][]string{"flavors": {"vanilla", "discontinued"}},
	})

	snap := s.engine.Snapshot()
	s.Nil(snap.SelectedContainer)
	s.True(d("53").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
	s.Len(snap.SelectedOptionsFlat, 1)
}

func (s *EngineTestSuite) TestPickOrderDoesNotChangeTotals() {
	s.engine.ToggleOption("flavors", "vanilla")
	s.engine.ToggleOption("flavors", "mango")
	s.engine.ToggleOption("flavors", "pistachio")
	first := s.engine.Snapshot()

	s.engine.Reset()
	s.engine.ToggleOption("flavors", "pistachio")
	s.engine.ToggleOption("flavors", "vanilla")
	s.engine.ToggleOption("flavors", "mango")
	second := s.engine.Snapshot()

	s.True(first.TotalPrice.Equal(second.TotalPrice))
	s.Equal(first.TotalNutrition, second.TotalNutrition)
}

func (s *EngineTestSuite) TestResetMatchesPristineSnapshot() {
	pristine := s.engine.Snapshot()

	s.engine.SetContainer("tub")
	s.engine.SetSize("large")
	s.engine.ToggleOption("flavors", "vanilla")
	s.engine.ToggleOption("sauce", "caramel")
	s.engine.ToggleOption("sauce", "chocolate")
	s.engine.Reset()

	after := s.engine.Snapshot()
	if diff := cmp.Diff(pristine, after, decimalEqual); diff != "" {
		s.Failf("snapshot differs after reset", "(-pristine +after):\n%s", diff)
	}
}

func (s *EngineTestSuite) TestSnapshotIsDetached() {
	s.engine.ToggleOption("flavors", "vanilla")
	snap := s.engine.Snapshot()

	s.engine.ToggleOption("flavors", "mango")
	s.Equal([]string{"vanilla"}, snap.Selections["flavors"])

	snap.Selections["flavors"][0] = "mutated"
	s.Equal([]string{"vanilla", "mango"}, s.engine.State().Selections["flavors"])
}

func (s *EngineTestSuite) TestRestoreWithRepeatedPickCountsItOnce() {
	s.engine.Restore(selection.State{
		ContainerID: "tub",
		Selections:  map[string][]string{"flavors": {"vanilla", "vanilla"}},
	})

	snap := s.engine.Snapshot()
	s.True(d("61").Equal(snap.TotalPrice), "got %s", snap.TotalPrice)
	s.Len(snap.SelectedOptionsFlat, 1)
	s.Contains(snap.Validation.Errors, "must choose at least 2 of Flavors")

	s.Equal(selection.OutcomeRemoved, s.engine.ToggleOption("flavors", "vanilla"))
	s.Empty(s.engine.State().Selections["flavors"])
}
