package testutils

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Fixture product IDs
const (
	ProductSundae = "sundae"
	ProductJuice  = "juice"
)

// Money parses a decimal literal and panics on malformed input
func Money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// SundaeProduct is an additive product offering containers, sizes and a
// required multi-select group
func SundaeProduct() *catalog.Product {
	return &catalog.Product{
		ID:          ProductSundae,
		Name:        catalog.LocalizedName{En: "Sundae", Ar: "صنداي"},
		BasePrice:   Money("50"),
		PricingMode: catalog.PricingModeAdditive,
		Baseline:    catalog.Nutrition{Calories: 200, Sugar: 20},
		TemplateID:  "template_3",
	}
}

// SundaeRules returns the rules that go with SundaeProduct
func SundaeRules() *catalog.Rules {
	return &catalog.Rules{
		Containers: []catalog.ContainerOption{
			{ID: "cup", Name: "Cup", PriceModifier: Money("5"), MaxSizes: 1},
			{ID: "tub", Name: "Tub", PriceModifier: Money("8"), Nutrition: catalog.Nutrition{Calories: 10}},
		},
		Sizes: []catalog.SizeOption{
			{ID: "regular", Name: "Regular", PriceModifier: Money("10"), NutritionMultiplier: 1},
			{ID: "large", Name: "Large", PriceModifier: Money("60"), NutritionMultiplier: 1.5},
		},
		Groups: []catalog.CustomizationGroup{
			{
				GroupID:       "flavors",
				Name:          "Flavors",
				IsRequired:    true,
				MinSelections: 2,
				MaxSelections: 3,
				Options: []catalog.Option{
					{ID: "vanilla", Name: catalog.LocalizedName{En: "Vanilla"}, Price: Money("3"), Nutrition: catalog.Nutrition{Calories: 50}},
					{ID: "mango", Name: catalog.LocalizedName{En: "Mango"}, Price: Money("4"), Nutrition: catalog.Nutrition{Calories: 50}},
					{ID: "pistachio", Name: catalog.LocalizedName{En: "Pistachio"}, Price: Money("6")},
				},
			},
			{
				GroupID:       "sauce",
				Name:          "Sauce",
				MaxSelections: 1,
				Options: []catalog.Option{
					{ID: "caramel", Name: catalog.LocalizedName{En: "Caramel"}, Price: Money("1")},
					{ID: "chocolate", Name: catalog.LocalizedName{En: "Chocolate"}, Price: Money("2")},
				},
			},
		},
	}
}

// JuiceProduct is a simple product without containers or sizes
func JuiceProduct() *catalog.Product {
	return &catalog.Product{
		ID:          ProductJuice,
		Name:        catalog.LocalizedName{En: "Orange juice"},
		BasePrice:   Money("12.50"),
		PricingMode: catalog.PricingModeAdditive,
		Baseline:    catalog.Nutrition{Calories: 110, Sugar: 21},
	}
}

// JuiceRules returns the rules that go with JuiceProduct
func JuiceRules() *catalog.Rules {
	return &catalog.Rules{
		Groups: []catalog.CustomizationGroup{
			{
				GroupID:       "ice",
				Name:          "Ice",
				MaxSelections: 1,
				Options: []catalog.Option{
					{ID: "no-ice", Name: catalog.LocalizedName{En: "No ice"}},
					{ID: "extra-ice", Name: catalog.LocalizedName{En: "Extra ice"}},
				},
			},
		},
	}
}
