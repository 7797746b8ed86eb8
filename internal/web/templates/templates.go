package templates

import (
	"context"
	_ "embed"
	"html/template"
	"io"

	"github.com/Conceptual-Machines/promptarchitect-api/internal/models"
	"github.com/a-h/templ"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Option is one entry of a select box
type Option struct {
	Value    string
	Selected bool
}

// PageData is everything the prompt form page renders
type PageData struct {
	ModelLabel       string
	Idea             string
	Tones            []Option
	Formats          []Option
	IncludeReasoning bool
	Busy             bool
	Examples         []models.ExampleIdea
	Result           *models.GeneratedResult
	ErrorMessage     string
}

// NewPageData fills the select boxes for the given configuration
func NewPageData(idea string, cfg models.Configuration) PageData {
	data := PageData{
		Idea:             idea,
		IncludeReasoning: cfg.IncludeReasoning,
		Examples:         models.ExampleIdeas(),
	}
	for _, tone := range models.Tones {
		data.Tones = append(data.Tones, Option{Value: string(tone), Selected: tone == cfg.Tone})
	}
	for _, format := range models.Formats {
		data.Formats = append(data.Formats, Option{Value: string(format), Selected: format == cfg.Format})
	}
	return data
}

// PromptPage renders the prompt form with the optional result or error
func PromptPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return pageTemplate.Execute(w, data)
	})
}
