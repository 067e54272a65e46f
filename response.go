package folio

import "strings"

// Disclaimer is appended verbatim to every response. Callers check for it by
// substring, so its text is a compatibility contract.
const Disclaimer = "Disclaimer: This is not financial advice and is provided for informational purposes only."

// HasDisclaimer reports whether text carries the disclaimer.
func HasDisclaimer(text string) bool { return strings.Contains(text, Disclaimer) }

// WithDisclaimer appends the disclaimer to text unless it is already there.
func WithDisclaimer(text string) string {
	if HasDisclaimer(text) {
		return text
	}
	return text + "\n\n" + Disclaimer
}

// ConfidenceLevel is the confidence tier of a response.
type ConfidenceLevel string

const (
	High   ConfidenceLevel = "high"
	Medium ConfidenceLevel = "medium"
	Low    ConfidenceLevel = "low"
)

// Verification is the audit trail of the checks run on a response.
type Verification struct {
	FactGrounded           bool            `json:"fact_grounded"`
	DisclaimerPresent      bool            `json:"disclaimer_present"`
	NoTradeAdvice          bool            `json:"no_trade_advice"`
	StaleDataWarning       bool            `json:"stale_data_warning"`
	ConfidenceLevel        ConfidenceLevel `json:"confidence_level"`
	TradeAdviceRefused     bool            `json:"trade_advice_refused,omitempty"`
	PromptInjectionBlocked bool            `json:"prompt_injection_blocked,omitempty"`
	OutputWarnings         []string        `json:"output_warnings,omitempty"`
}

// Response is the final answer of the assistant to one query.
type Response struct {
	Response     string       `json:"response"`
	ToolCalls    []ToolName   `json:"tool_calls"`
	Verification Verification `json:"verification"`
	Confidence   float64      `json:"confidence"`
	SelectedTool ToolName     `json:"selected_tool"`
}
