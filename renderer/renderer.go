// Package renderer turns tool results into grounded, plain text answers.
package renderer

import (
	"cmp"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/folio"
)

//go:embed templates/*.md
var templates embed.FS

// MaxHoldings is the number of holdings listed in a summary.
const MaxHoldings = 10

// Render returns the answer text for res and whether every figure the
// grounding checks look for literally appears in it. The text always ends
// with the disclaimer, appended once.
//
// A failed result renders the error message and is never grounded.
func Render(res folio.ToolResult) (text string, grounded bool) {
	if !res.Success {
		return folio.WithDisclaimer(renderTemplate("failure", "failure.md", nil, res.ErrorMessage())), false
	}

	switch p := res.Data.(type) {
	case *folio.Summary:
		text = renderTemplate("summary", "summary.md", map[string]string{"holding": "holding.md"}, p)
		grounded = contains(text, fmt.Sprintf("%d holdings", p.HoldingsCount), p.TotalValue.String())
	case *folio.Performance:
		text = renderTemplate("performance", "performance.md", nil, p)
		grounded = contains(text, p.ReturnPct.String(), p.AbsoluteGain.String())
	case *folio.Comparison:
		if p.Summary == nil || p.Performance == nil {
			return Render(folio.Fail(folio.Errorf(folio.ToolExecutionFailed, "incomplete comparison data")))
		}
		text = renderTemplate("comparison", "comparison.md", nil, p)
		grounded = contains(text, p.Summary.TotalValue.String(), p.Performance.ReturnPct.String(), p.Performance.AbsoluteGain.String())
	case *folio.Transactions:
		text = renderTemplate("transactions", "transactions.md", nil, p)
		grounded = len(p.Transactions) == 0 || contains(text, fmt.Sprintf("%d most recent transactions", p.TotalCount))
	case *folio.Accounts:
		text, grounded = renderTemplate("accounts", "accounts.md", nil, p), true
	case *folio.MarketData:
		text, grounded = renderTemplate("market_data", "market_data.md", nil, p), true
	case *folio.Allocation:
		text, grounded = renderTemplate("allocation", "allocation.md", nil, p), true
	case *folio.RiskReport:
		text, grounded = renderTemplate("risk", "risk.md", nil, p), true
	default:
		// Raw and any payload without a dedicated template.
		text, grounded = renderTemplate("raw", "raw.md", nil, p), true
	}
	return folio.WithDisclaimer(text), grounded
}

// contains reports whether all parts are substrings of s.
func contains(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

var funcs = template.FuncMap{
	"upper": func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
	"join":  strings.Join,
	"top":   top,
	"shares": func(shares []folio.Share) string {
		parts := make([]string, len(shares))
		for i, s := range shares {
			parts[i] = s.Name + ": " + s.Pct.Short()
		}
		return strings.Join(parts, ", ")
	},
	"json": func(v any) (string, error) {
		data, err := json.MarshalIndent(v, "", "  ")
		return string(data), err
	},
}

// top returns the MaxHoldings holdings of largest value, largest first.
func top(holdings []folio.Holding) []folio.Holding {
	sorted := slices.Clone(holdings)
	slices.SortStableFunc(sorted, func(a, b folio.Holding) int {
		return cmp.Compare(b.Value.Decimal().InexactFloat64(), a.Value.Decimal().InexactFloat64())
	})
	if len(sorted) > MaxHoldings {
		sorted = sorted[:MaxHoldings]
	}
	return sorted
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
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
	return strings.TrimSpace(b.String())
}
