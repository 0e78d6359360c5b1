package searchbox

import (
	"bytes"
	"html/template"
)

type ElementKind string

const (
	ElementInput ElementKind = "input"
	ElementIcon  ElementKind = "icon"
)

// Element is one node inside the search box container.
type Element struct {
	Kind        ElementKind
	InputType   string
	Placeholder string
	Value       string
	Glyph       string
	Interactive bool
}

// View is the rendered search box: a flex container with a leading search
// glyph and a single text input.
type View struct {
	Layout   string
	Elements []Element
}

func (b *SearchBox) Render() View {
	return View{
		Layout: "flex",
		Elements: []Element{
			{Kind: ElementIcon, Glyph: "search"},
			{
				Kind:        ElementInput,
				InputType:   "text",
				Placeholder: Placeholder,
				Value:       b.Value(),
				Interactive: true,
			},
		},
	}
}

func (v View) Input() (Element, bool) {
	for _, e := range v.Elements {
		if e.Kind == ElementInput {
			return e, true
		}
	}
	return Element{}, false
}

var viewTemplate = template.Must(template.New("searchbox").Parse(
	`<div class="search-box" style="display:{{.Layout}}">` +
		`{{range .Elements}}` +
		`{{if eq .Kind "icon"}}<span class="search-icon" aria-hidden="true" data-glyph="{{.Glyph}}"></span>{{end}}` +
		`{{if eq .Kind "input"}}<input type="{{.InputType}}" placeholder="{{.Placeholder}}" value="{{.Value}}">{{end}}` +
		`{{end}}` +
		`</div>`,
))

func (v View) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := viewTemplate.Execute(&buf, v); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
