package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/configurator-api/internal/engine/nutrition"
	"github.com/KirkDiggler/configurator-api/internal/engine/selection"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

var rules = &catalog.Rules{
	Containers: []catalog.ContainerOption{
		{ID: "cone", Nutrition: catalog.Nutrition{Calories: 50, Carbs: 10}},
	},
	Sizes: []catalog.SizeOption{
		{ID: "small", NutritionMultiplier: 1},
		{ID: "large", NutritionMultiplier: 2},
		{ID: "unset"},
	},
	Groups: []catalog.CustomizationGroup{
		{
			GroupID:       "flavors",
			MaxSelections: 2,
			Options: []catalog.Option{
				{ID: "choc", Nutrition: catalog.Nutrition{Calories: 120, Fat: 6, Sugar: 14}},
				{ID: "berry", Nutrition: catalog.Nutrition{Calories: 80, Sugar: 12, Fiber: 2}},
			},
		},
	},
}

func TestAggregate(t *testing.T) {
	baseline := catalog.Nutrition{Calories: 100, Protein: 3}

	testCases := []struct {
		name    string
		product catalog.Product
		state   selection.State
		want    catalog.Nutrition
	}{
		{
			name: "nothing contributes",
			want: catalog.Nutrition{},
		},
		{
			name:    "baseline without size counts once",
			product: catalog.Product{Baseline: baseline},
			want:    baseline,
		},
		{
			name:    "size scales the baseline",
			product: catalog.Product{Baseline: baseline},
			state:   selection.State{SizeID: "large"},
			want:    catalog.Nutrition{Calories: 200, Protein: 6},
		},
		{
			name:    "unset multiplier behaves like one",
			product: catalog.Product{Baseline: baseline},
			state:   selection.State{SizeID: "unset"},
			want:    baseline,
		},
		{
			name:    "container and options add verbatim",
			product: catalog.Product{Baseline: baseline},
			state: selection.State{
				ContainerID: "cone",
				SizeID:      "large",
				Selections:  map[string][]string{"flavors": {"choc", "berry"}},
			},
			want: catalog.Nutrition{Calories: 450, Protein: 6, Carbs: 10, Fat: 6, Sugar: 26, Fiber: 2},
		},
		{
			name: "unknown ids contribute nothing",
			state: selection.State{
				ContainerID: "waffle",
				Selections:  map[string][]string{"flavors": {"ghost"}, "other": {"choc"}},
			},
			want: catalog.Nutrition{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nutrition.Aggregate(tc.product, rules, tc.state))
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := nutrition.Aggregate(catalog.Product{}, rules, selection.State{
		Selections: map[string][]string{"flavors": {"choc", "berry"}},
	})
	b := nutrition.Aggregate(catalog.Product{}, rules, selection.State{
		Selections: map[string][]string{"flavors": {"berry", "choc"}},
	})

	assert.Equal(t, a, b)
}
