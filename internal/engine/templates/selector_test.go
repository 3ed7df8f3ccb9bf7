package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name       string
		templateID string
		layoutMode string
		want       templates.Template
	}{
		{"template id wins over layout mode", "template_1", "complex", templates.Simple},
		{"template_simple", "template_simple", "", templates.Simple},
		{"template_2", "template_2", "", templates.Medium},
		{"template_medium wins over builder", "template_medium", "builder", templates.Medium},
		{"template_3", "template_3", "", templates.Complex},
		{"template_complex", "template_complex", "selector", templates.Complex},
		{"legacy builder", "", "builder", templates.Complex},
		{"legacy selector", "", "selector", templates.Simple},
		{"legacy composer", "", "composer", templates.Medium},
		{"legacy standard", "", "standard", templates.Medium},
		{"layout simple", "", "simple", templates.Simple},
		{"layout medium", "", "medium", templates.Medium},
		{"layout complex", "", "complex", templates.Complex},
		{"unknown template id falls back to layout", "template_9", "builder", templates.Complex},
		{"nothing set defaults to simple", "", "", templates.Simple},
		{"unknown everything defaults to simple", "fancy", "grid", templates.Simple},
		{"matching is case sensitive", "TEMPLATE_3", "Builder", templates.Simple},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := templates.Resolve(catalog.Product{TemplateID: tc.templateID, LayoutMode: tc.layoutMode})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTemplate_Valid(t *testing.T) {
	assert.True(t, templates.Complex.Valid())
	assert.False(t, templates.Template("grid").Valid())
}
