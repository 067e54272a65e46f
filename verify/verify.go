// Package verify checks rendered answers: data freshness, output sanity and
// the resulting confidence.
package verify

import (
	"fmt"
	"math"
	"time"

	"github.com/etnz/folio"
)

// MaxAge is the age beyond which time-sensitive data is stale.
const MaxAge = 6 * time.Hour

// StaleWarning is appended to answers built on stale data.
const StaleWarning = "Warning: Market data timestamp is missing, invalid, or older than 6 hours and may be stale."

// timestamp layouts tried in order. Layouts without a zone are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// lastUpdated returns the data timestamp of p, "" when it has none.
func lastUpdated(p folio.Payload) string {
	switch p := p.(type) {
	case *folio.Performance:
		return p.LastUpdated
	case *folio.Comparison:
		if p.Performance != nil {
			return p.Performance.LastUpdated
		}
	case folio.Raw:
		if s, ok := p["last_updated"].(string); ok {
			return s
		}
		if perf, ok := p["performance"].(map[string]any); ok {
			if s, ok := perf["last_updated"].(string); ok {
				return s
			}
		}
	}
	return ""
}

// IsStale reports whether the data of a time-sensitive tool is missing a
// timestamp, has an unparsable one, or is older than MaxAge at now.
// Other tools are never stale.
func IsStale(tool folio.ToolName, p folio.Payload, now time.Time) bool {
	if tool != folio.ToolPerformance && tool != folio.ToolCompare {
		return false
	}
	ts := lastUpdated(p)
	if ts == "" {
		return true
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return now.UTC().Sub(t) > MaxAge
		}
	}
	return true
}

// allocationTolerance is the accepted gap, in percentage points, between
// the allocation sum and 100.
const allocationTolerance = 5

// CheckOutput returns advisory warnings about the data of summary and
// allocation results. It never alters the answer.
func CheckOutput(tool folio.ToolName, p folio.Payload) []string {
	var holdings []folio.Holding
	switch p := p.(type) {
	case *folio.Summary:
		if tool == folio.ToolSummary {
			holdings = p.Holdings
		}
	case *folio.Allocation:
		if tool == folio.ToolAllocation {
			holdings = p.Holdings
		}
	}

	var sum folio.Percent
	for _, h := range holdings {
		sum += h.Allocation()
	}
	var warnings []string
	if sum > 0 && math.Abs(float64(sum)-100) > allocationTolerance {
		warnings = append(warnings, fmt.Sprintf("allocation_sum_mismatch:%.1f%%", float64(sum)))
	}
	return warnings
}

// Score derives the confidence from the tool outcome: high when the answer
// is successful, grounded and fresh, medium when only freshness is missing,
// low otherwise.
func Score(success, grounded, stale bool) (float64, folio.ConfidenceLevel) {
	switch {
	case success && grounded && !stale:
		return 0.9, folio.High
	case success && grounded:
		return 0.65, folio.Medium
	default:
		return 0.4, folio.Low
	}
}

// Input gathers what Verify needs about one answered query.
type Input struct {
	Tool     folio.ToolName
	Result   folio.ToolResult
	Text     string // rendered answer, disclaimer included
	Grounded bool
	// NoTradeAdvice is the negated trade advice classification of the
	// sanitized query.
	NoTradeAdvice bool
	Now           time.Time
}

// Verify scores the answer and returns the final text, with the stale
// warning appended when relevant, and its verification record.
func Verify(in Input) (string, folio.Verification, float64) {
	stale := IsStale(in.Tool, in.Result.Data, in.Now)
	confidence, level := Score(in.Result.Success, in.Grounded, stale)

	text := in.Text
	if level == folio.Medium {
		text += "\n\n" + StaleWarning
	}

	var warnings []string
	if in.Result.Success {
		warnings = CheckOutput(in.Tool, in.Result.Data)
	}
	return text, folio.Verification{
		FactGrounded:      in.Grounded,
		DisclaimerPresent: folio.HasDisclaimer(text),
		NoTradeAdvice:     in.NoTradeAdvice,
		StaleDataWarning:  stale,
		ConfidenceLevel:   level,
		OutputWarnings:    warnings,
	}, confidence
}
