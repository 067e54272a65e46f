// Package safety classifies raw user queries before any routing happens and
// sanitizes the ones that are allowed through.
package safety

import (
	"regexp"
	"strings"

	"github.com/etnz/folio"
)

// Verdict is the outcome of classifying a raw query.
type Verdict int

const (
	// Allowed queries proceed to routing.
	Allowed Verdict = iota
	// TradeAdvice queries ask for buy, sell or investment recommendations.
	TradeAdvice
	// Injection queries try to override the assistant instructions.
	Injection
)

func (v Verdict) String() string {
	switch v {
	case TradeAdvice:
		return "trade_advice"
	case Injection:
		return "prompt_injection"
	default:
		return "allowed"
	}
}

// Fixed refusals. Both end with the disclaimer.
var (
	TradeAdviceRefusal = folio.WithDisclaimer("I'm not able to provide buy, sell, or investment recommendations. " +
		"I can only help you understand your existing portfolio data, performance, and allocation. " +
		"Please consult a licensed financial advisor for trade advice.")

	InjectionRefusal = folio.WithDisclaimer("I'm sorry, but I can't comply with that request. " +
		"I'm a portfolio assistant and can only help with portfolio-related queries.")
)

var tradeAdvicePatterns = compile(
	`\bshould\s+i\s+(buy|sell|invest|trade|short|long)\b`,
	`\b(buy|sell|invest\s+in|short|long)\s+(this|that|it|them|some|more)\b`,
	`\brecommend\b.*(stock|etf|fund|bond|crypto|invest|buy|sell)`,
	`\b(what|which)\s+(stock|etf|fund|bond|crypto|investment)s?\s+(should|to\s+buy|to\s+sell|to\s+invest)\b`,
	`\bgive\s+me\s+(trade|investment|buy|sell)\s+(advice|recommendation|tip)\b`,
	`\b(is\s+it\s+a\s+good\s+time\s+to|when\s+should\s+i)\s+(buy|sell|invest)\b`,
)

var injectionPatterns = compile(
	`ignore\s+(previous|prior|above|all)\s+(instructions|rules|prompts)`,
	`disregard\s+(previous|prior|above|all)\s+(instructions|rules|prompts)`,
	`forget\s+(previous|prior|above|all|your)\s+(instructions|rules|prompts|programming)`,
	`you\s+are\s+now\s+(a|an|in)\b`,
	`new\s+(instruction|rule|prompt|persona|role)`,
	`system\s*:\s*`,
	`<\s*system\s*>`,
	`act\s+as\s+(a|an|if|in)\b`,
	`pretend\s+(you|to\s+be)\b`,
	`(reveal|show|output|print|display)\s+(your|the)\s+(system|initial|original)\s*(prompt|instructions|rules)`,
)

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+e))
	}
	return res
}

func matchAny(patterns []*regexp.Regexp, query string) bool {
	q := strings.ToLower(query)
	for _, p := range patterns {
		if p.MatchString(q) {
			return true
		}
	}
	return false
}

// IsTradeAdvice reports whether query asks for trade advice.
func IsTradeAdvice(query string) bool { return matchAny(tradeAdvicePatterns, query) }

// IsInjection reports whether query attempts a prompt injection.
func IsInjection(query string) bool { return matchAny(injectionPatterns, query) }

// Classify tests the raw query for trade advice first, then for injection.
func Classify(query string) Verdict {
	switch {
	case IsTradeAdvice(query):
		return TradeAdvice
	case IsInjection(query):
		return Injection
	default:
		return Allowed
	}
}

// Refusal returns the fixed response for a blocked verdict. Allowed queries
// get the zero Response and false.
func Refusal(v Verdict) (folio.Response, bool) {
	r := folio.Response{
		ToolCalls:    []folio.ToolName{},
		Confidence:   0.95,
		SelectedTool: folio.ToolSummary,
		Verification: folio.Verification{
			FactGrounded:      true,
			DisclaimerPresent: true,
			NoTradeAdvice:     true,
			ConfidenceLevel:   folio.High,
		},
	}
	switch v {
	case TradeAdvice:
		r.Response = TradeAdviceRefusal
		r.Verification.TradeAdviceRefused = true
	case Injection:
		r.Response = InjectionRefusal
		r.Verification.PromptInjectionBlocked = true
	default:
		return folio.Response{}, false
	}
	return r, true
}

var systemTag = regexp.MustCompile(`(?i)<\s*/?\s*system\s*>`)

// Sanitize strips <system> wrapper tags and NUL characters, then trims
// surrounding whitespace.
func Sanitize(query string) string {
	q := systemTag.ReplaceAllString(query, "")
	q = strings.ReplaceAll(q, "\x00", "")
	return strings.TrimSpace(q)
}
