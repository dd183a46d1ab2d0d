// Package renderer turns portfolio reports into markdown documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/eportfolio"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// Trade is the outcome of a buy or a sell.
type Trade struct {
	Sold     bool
	Symbol   string
	Quantity int
	Price    decimal.Decimal
	// Gain is the realized gain of a sell.
	Gain decimal.Decimal
	// Holding is the state of the holding after the trade, nil once it has been sold entirely.
	Holding *eportfolio.Investment
}

// ReportMarkdown renders the full state of a portfolio.
func ReportMarkdown(r *eportfolio.Report) string {
	partials := map[string]string{
		"report_title":    "report_title.md",
		"report_holdings": "report_holdings.md",
		"report_totals":   "report_totals.md",
	}
	return renderTemplate("report", "report.md", partials, r.Currency, r)
}

// GainMarkdown renders the totals of a portfolio only.
func GainMarkdown(r *eportfolio.Report) string {
	return renderTemplate("report_totals", "report_totals.md", nil, r.Currency, r)
}

// QueryMarkdown renders the result of a search.
func QueryMarkdown(found []*eportfolio.Investment, currency string) string {
	return renderTemplate("query", "query.md", nil, currency, found)
}

// TradeMarkdown renders the outcome of a buy or a sell.
func TradeMarkdown(t *Trade, currency string) string {
	return renderTemplate("trade", "trade.md", nil, currency, t)
}

// funcs returns the template functions, formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return Money(d, currency) },
		"cell":  escapeCell,
	}
}

// escapeCell makes a text safe to use inside a markdown table cell.
func escapeCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, currency string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(currency)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
