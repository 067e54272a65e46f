package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/tools"
)

// printMarkdown renders md for the terminal, or prints it as is when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

func check(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// responseMarkdown formats a response and its verification record.
func responseMarkdown(resp folio.Response) string {
	var b strings.Builder
	b.WriteString(resp.Response)
	b.WriteString("\n\n")

	calls := make([]string, len(resp.ToolCalls))
	for i, c := range resp.ToolCalls {
		calls[i] = "`" + string(c) + "`"
	}
	if len(calls) == 0 {
		calls = append(calls, "none")
	}
	v := resp.Verification
	fmt.Fprintf(&b, "| Check | Result |\n|---|---|\n")
	fmt.Fprintf(&b, "| Tool calls | %s |\n", strings.Join(calls, ", "))
	fmt.Fprintf(&b, "| Confidence | %.2f (%s) |\n", resp.Confidence, v.ConfidenceLevel)
	fmt.Fprintf(&b, "| Grounded | %s |\n", check(v.FactGrounded))
	fmt.Fprintf(&b, "| Disclaimer | %s |\n", check(v.DisclaimerPresent))
	fmt.Fprintf(&b, "| No trade advice | %s |\n", check(v.NoTradeAdvice))
	fmt.Fprintf(&b, "| Stale data | %s |\n", check(v.StaleDataWarning))
	if v.TradeAdviceRefused {
		b.WriteString("| Trade advice refused | yes |\n")
	}
	if v.PromptInjectionBlocked {
		b.WriteString("| Prompt injection blocked | yes |\n")
	}
	for _, w := range v.OutputWarnings {
		fmt.Fprintf(&b, "| Warning | %s |\n", w)
	}
	return b.String()
}

// catalogMarkdown formats the tool catalog.
func catalogMarkdown(catalog []tools.Spec) string {
	var b strings.Builder
	b.WriteString("# Tools\n")
	for _, s := range catalog {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Name, s.Description)
		if len(s.Params) == 0 {
			b.WriteString("\nNo parameters.\n")
			continue
		}
		b.WriteString("\n| Parameter | Type | Required | Description |\n|---|---|---|---|\n")
		for _, p := range s.Params {
			desc := p.Description
			if len(p.Enum) > 0 {
				desc += " One of " + strings.Join(p.Enum, ", ") + "."
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", p.Name, p.Type, check(p.Required), desc)
		}
	}
	return b.String()
}
