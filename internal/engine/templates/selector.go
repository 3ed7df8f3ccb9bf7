// Package templates decides which render template a product uses
package templates

import (
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

// Template identifies a rendering style. Every template renders the same
// engine snapshot; none of them computes prices or validation.
type Template string

const (
	Simple  Template = "simple"
	Medium  Template = "medium"
	Complex Template = "complex"
)

// All lists the templates in increasing order of richness
var All = []Template{Simple, Medium, Complex}

var byTemplateID = map[string]Template{
	"template_1":       Simple,
	"template_simple":  Simple,
	"template_2":       Medium,
	"template_medium":  Medium,
	"template_3":       Complex,
	"template_complex": Complex,
}

// byLayoutMode includes the legacy layout names still stored on older products
var byLayoutMode = map[string]Template{
	"simple":   Simple,
	"selector": Simple,
	"medium":   Medium,
	"composer": Medium,
	"standard": Medium,
	"complex":  Complex,
	"builder":  Complex,
}

// Resolve maps product metadata to a template. A recognised TemplateID always
// wins over LayoutMode; when neither is recognised the product is Simple.
func Resolve(product catalog.Product) Template {
	return ResolveIDs(product.TemplateID, product.LayoutMode)
}

// ResolveIDs is Resolve for callers holding only the raw identifiers
func ResolveIDs(templateID, layoutMode string) Template {
	if t, ok := byTemplateID[templateID]; ok {
		return t
	}
	if t, ok := byLayoutMode[layoutMode]; ok {
		return t
	}
	return Simple
}

// Valid reports whether t is a known template
func (t Template) Valid() bool {
	for _, known := range All {
		if t == known {
			return true
		}
	}
	return false
}
