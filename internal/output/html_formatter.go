package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// HTMLFormatter produces a standalone HTML page for a report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":   FormatPercentage,
	"years": FormatYears,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}

	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Money       Money
		Assumptions []string
	}{report, NewMoney(report.Currency), Assumptions(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
