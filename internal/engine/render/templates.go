package render

import (
	"fmt"

	"github.com/KirkDiggler/configurator-api/internal/engine"
	"github.com/KirkDiggler/configurator-api/internal/engine/templates"
)

// simpleRenderer lists everything in one section
type simpleRenderer struct{}

func (simpleRenderer) Template() templates.Template { return templates.Simple }

func (r simpleRenderer) Render(snap *engine.Snapshot) View {
	view := newView(r.Template(), snap)

	lines := baseLines(snap)
	for _, opt := range snap.SelectedOptionsFlat {
		lines = append(lines, Line{Label: opt.Name.String()})
	}
	view.Sections = []Section{{Heading: "Your order", Lines: lines}}
	return view
}

// mediumRenderer splits the base from the numbered extras
type mediumRenderer struct{}

func (mediumRenderer) Template() templates.Template { return templates.Medium }

func (r mediumRenderer) Render(snap *engine.Snapshot) View {
	view := newView(r.Template(), snap)

	extras := make([]Line, 0, len(snap.SelectedOptionsFlat))
	for i, opt := range snap.SelectedOptionsFlat {
		extras = append(extras, Line{
			Number: i + 1,
			Label:  opt.Name.String(),
			Amount: opt.Price.StringFixed(2),
		})
	}

	view.Sections = []Section{
		{Heading: "Base", Lines: baseLines(snap)},
		{Heading: "Extras", Lines: extras},
	}
	return view
}

// complexRenderer gives every group its own section and appends nutrition
type complexRenderer struct{}

func (complexRenderer) Template() templates.Template { return templates.Complex }

func (r complexRenderer) Render(snap *engine.Snapshot) View {
	view := newView(r.Template(), snap)
	view.Sections = append(view.Sections, Section{Heading: "Base", Lines: baseLines(snap)})

	index := make(map[string]int)
	for _, opt := range snap.SelectedOptionsFlat {
		i, ok := index[opt.GroupID]
		if !ok {
			view.Sections = append(view.Sections, Section{Heading: opt.GroupName})
			i = len(view.Sections) - 1
			index[opt.GroupID] = i
		}
		view.Sections[i].Lines = append(view.Sections[i].Lines, Line{
			Number: opt.Position,
			Label:  opt.Name.String(),
			Amount: opt.Price.StringFixed(2),
		})
	}

	n := snap.TotalNutrition
	view.Sections = append(view.Sections, Section{
		Heading: "Nutrition",
		Lines: []Line{
			{Label: "Calories", Amount: fmt.Sprintf("%.0f", n.Calories)},
			{Label: "Protein", Amount: fmt.Sprintf("%.1fg", n.Protein)},
			{Label: "Carbs", Amount: fmt.Sprintf("%.1fg", n.Carbs)},
			{Label: "Fat", Amount: fmt.Sprintf("%.1fg", n.Fat)},
			{Label: "Sugar", Amount: fmt.Sprintf("%.1fg", n.Sugar)},
			{Label: "Fiber", Amount: fmt.Sprintf("%.1fg", n.Fiber)},
		},
	})
	return view
}
