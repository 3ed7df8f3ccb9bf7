package render_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/render"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

func newEngine(t *testing.T, templateID string) *engine.Engine {
	t.Helper()

	e, err := engine.New(&engine.Config{
		Product: catalog.Product{
			ID:          "shake",
			BasePrice:   decimal.NewFromInt(20),
			PricingMode: catalog.PricingModeAdditive,
			TemplateID:  templateID,
		},
		Rules: &catalog.Rules{
			Containers: []catalog.ContainerOption{{ID: "glass", Name: "Glass", PriceModifier: decimal.NewFromInt(2)}},
			Groups: []catalog.CustomizationGroup{
				{
					GroupID:       "fruit",
					Name:          "Fruit",
					MaxSelections: 2,
					Options: []catalog.Option{
						{ID: "banana", Name: catalog.LocalizedName{En: "Banana"}, Price: decimal.NewFromInt(1)},
						{ID: "kiwi", Name: catalog.LocalizedName{En: "Kiwi"}, Price: decimal.NewFromInt(2)},
					},
				},
				{
					GroupID:       "boost",
					Name:          "Boost",
					MaxSelections: 1,
					Options: []catalog.Option{
						{ID: "whey", Name: catalog.LocalizedName{En: "Whey"}, Price: decimal.NewFromInt(5)},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	e.SetContainer("glass")
	e.ToggleOption("fruit", "kiwi")
	e.ToggleOption("fruit", "banana")
	e.ToggleOption("boost", "whey")
	return e
}

func TestFor(t *testing.T) {
	for _, tmpl := range templates.All {
		assert.Equal(t, tmpl, render.For(tmpl).Template())
	}
	assert.Equal(t, templates.Simple, render.For("grid").Template())
}

func TestRenderersShareEngineOutput(t *testing.T) {
	for _, id := range []string{"template_1", "template_2", "template_3"} {
		t.Run(id, func(t *testing.T) {
			snap := newEngine(t, id).Snapshot()
			view := render.Snapshot(snap)

			assert.Equal(t, snap.Template, view.Template)
			assert.Equal(t, "30.00", view.Total)
			assert.True(t, view.CanCheckout)
			assert.Empty(t, view.Messages)
		})
	}
}

func TestSimpleRenderer(t *testing.T) {
	view := render.Snapshot(newEngine(t, "template_simple").Snapshot())

	require.Len(t, view.Sections, 1)
	labels := make([]string, 0)
	for _, l := range view.Sections[0].Lines {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"Base price", "Glass", "Kiwi", "Banana", "Whey"}, labels)
}

func TestMediumRendererNumbersExtras(t *testing.T) {
	view := render.Snapshot(newEngine(t, "template_medium").Snapshot())

	require.Len(t, view.Sections, 2)
	extras := view.Sections[1].Lines
	require.Len(t, extras, 3)
	assert.Equal(t, 3, extras[2].Number)
	assert.Equal(t, "5.00", extras[2].Amount)
}

func TestComplexRendererGroupsPicks(t *testing.T) {
	view := render.Snapshot(newEngine(t, "template_complex").Snapshot())

	headings := make([]string, 0, len(view.Sections))
	for _, s := range view.Sections {
		headings = append(headings, s.Heading)
	}
	assert.Equal(t, []string{"Base", "Fruit", "Boost", "Nutrition"}, headings)

	fruit := view.Sections[1].Lines
	assert.Equal(t, "Kiwi", fruit[0].Label)
	assert.Equal(t, 1, fruit[0].Number)
	assert.Equal(t, 2, fruit[1].Number)
}

// lineSum adds every priced line outside the nutrition section
func lineSum(t *testing.T, view render.View) decimal.Decimal {
	t.Helper()

	sum := decimal.Zero
	for _, section := range view.Sections {
		if section.Heading == "Nutrition" {
			continue
		}
		for _, l := range section.Lines {
			sum = sum.Add(decimal.RequireFromString(l.Amount))
		}
	}
	return sum
}

func TestPricedLinesAddUpToTotal(t *testing.T) {
	groups := newEngine(t, "template_complex").Rules().Groups
	for _, mode := range []catalog.PricingMode{catalog.PricingModeAdditive, catalog.PricingModeSizeAsTotal} {
		t.Run(string(mode), func(t *testing.T) {
			e, err := engine.New(&engine.Config{
				Product: catalog.Product{
					ID:          "frozen-yogurt",
					BasePrice:   decimal.NewFromInt(7),
					PricingMode: mode,
					TemplateID:  "template_medium",
				},
				Rules: &catalog.Rules{
					Containers: []catalog.ContainerOption{{ID: "cup", Name: "Cup", PriceModifier: decimal.RequireFromString("1.50")}},
					Sizes:      []catalog.SizeOption{{ID: "large", Name: "Large", PriceModifier: decimal.NewFromInt(30)}},
					Groups:     groups,
				},
			})
			require.NoError(t, err)
			e.SetContainer("cup")
			e.SetSize("large")
			e.ToggleOption("fruit", "kiwi")

			snap := e.Snapshot()
			// the simple template lists option names without amounts
			for _, tmpl := range []templates.Template{templates.Medium, templates.Complex} {
				view := render.For(tmpl).Render(snap)
				assert.True(t, snap.TotalPrice.Equal(lineSum(t, view)), "%s: lines %s, total %s", tmpl, lineSum(t, view), snap.TotalPrice)
			}
		})
	}
}

func TestSizeAsTotalShowsSizeAsBase(t *testing.T) {
	e, err := engine.New(&engine.Config{
		Product: catalog.Product{
			ID:          "frozen-yogurt",
			PricingMode: catalog.PricingModeSizeAsTotal,
			TemplateID:  "template_medium",
		},
		Rules: &catalog.Rules{
			Sizes: []catalog.SizeOption{{ID: "large", Name: "Large", PriceModifier: decimal.NewFromInt(30)}},
		},
	})
	require.NoError(t, err)

	view := render.Snapshot(e.Snapshot())
	require.Len(t, view.Sections[0].Lines, 1)
	assert.Equal(t, render.Line{Label: "Base price", Amount: "0.00"}, view.Sections[0].Lines[0])

	e.SetSize("large")
	view = render.Snapshot(e.Snapshot())
	assert.Equal(t, []render.Line{{Label: "Large", Amount: "30.00"}}, view.Sections[0].Lines)
	assert.Equal(t, "30.00", view.Total)
}
