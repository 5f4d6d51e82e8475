package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fiscalite/taxsim/internal/domain"
)

// HTMLFormatter renders the report sections as a standalone page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"notFirst": func(i int) bool { return i > 0 },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(out *domain.SimulationOutcome) ([]byte, error) {
	sections, err := Summarize(out)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	data := struct {
		Title       string
		Headline    []string
		Sections    []Section
		Assumptions []string
	}{Title(out), Headline(out), sections, Assumptions(out)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
