// Package render turns an engine snapshot into a display model. Renderers
// only read the snapshot; prices and validation come from the engine.
package render

import (
	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
	"github.com/KirkDiggler/configurator-api/internal/entities/catalog"
)

const baseLabel = "Base price"

// Renderer builds a View for one template
type Renderer interface {
	Template() templates.Template
	Render(snap *engine.Snapshot) View
}

// View is a template-specific display model of a snapshot
type View struct {
	Template    templates.Template `json:"template"`
	Sections    []Section          `json:"sections"`
	Total       string             `json:"total"`
	CanCheckout bool               `json:"can_checkout"`
	Messages    []string           `json:"messages,omitempty"`
}

// Section is a titled list of lines
type Section struct {
	Heading string `json:"heading"`
	Lines   []Line `json:"lines"`
}

// Line is one row of a section. Number is the pick number, 0 when unnumbered.
type Line struct {
	Number int    `json:"number,omitempty"`
	Label  string `json:"label"`
	Amount string `json:"amount,omitempty"`
}

var renderers = map[templates.Template]Renderer{
	templates.Simple:  simpleRenderer{},
	templates.Medium:  mediumRenderer{},
	templates.Complex: complexRenderer{},
}

// For returns the renderer of a template, falling back to the simple one
func For(t templates.Template) Renderer {
	if r, ok := renderers[t]; ok {
		return r
	}
	return renderers[templates.Simple]
}

// Snapshot renders a snapshot with the renderer of its own template
func Snapshot(snap *engine.Snapshot) View {
	return For(snap.Template).Render(snap)
}

func newView(t templates.Template, snap *engine.Snapshot) View {
	return View{
		Template:    t,
		Total:       snap.TotalPrice.StringFixed(2),
		CanCheckout: snap.Validation.IsValid,
		Messages:    snap.Validation.Errors,
	}
}

// baseLines lists what the options are added to. Under size_as_total the
// chosen size carries the base price, so it gets no line of its own.
func baseLines(snap *engine.Snapshot) []Line {
	sizeIsBase := snap.PricingMode == catalog.PricingModeSizeAsTotal && snap.SelectedSize != nil

	var lines []Line
	if !sizeIsBase {
		lines = append(lines, Line{
			Label:  baseLabel,
			Amount: snap.Price.Base.StringFixed(2),
		})
	}
	if snap.SelectedContainer != nil {
		lines = append(lines, Line{
			Label:  snap.SelectedContainer.Name,
			Amount: snap.Price.Container.StringFixed(2),
		})
	}
	if snap.SelectedSize != nil {
		amount := snap.Price.Size
		if sizeIsBase {
			amount = snap.Price.Base
		}
		lines = append(lines, Line{
			Label:  snap.SelectedSize.Name,
			Amount: amount.StringFixed(2),
		})
	}
	return lines
}
