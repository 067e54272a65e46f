package router

import (
	"testing"

	"github.com/etnz/folio"
	"github.com/google/go-cmp/cmp"
)

func TestDeterministic(t *testing.T) {
	tests := []struct {
		query string
		want  folio.Route
	}{
		{"How has my portfolio performed this year?", folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("ytd")}}},
		{"What is my 5 year return?", folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("5y")}}},
		{"Compare my holdings performance this year", folio.Route{Tool: folio.ToolCompare, Args: folio.Args{Range: folio.Ref("ytd")}}},
		{"compare portfolio gains all time", folio.Route{Tool: folio.ToolCompare, Args: folio.Args{Range: folio.Ref("max")}}},
		{"Show my brokerage accounts", folio.Route{Tool: folio.ToolAccounts}},
		{"What is the price of MSFT and VTI?", folio.Route{Tool: folio.ToolMarketData, Args: folio.Args{Symbols: []string{"MSFT", "VTI"}}}},
		{"give me a quote", folio.Route{Tool: folio.ToolMarketData, Args: folio.Args{Symbols: []string{"AAPL"}}}},
		{"What is my sector exposure?", folio.Route{Tool: folio.ToolAllocation}},
		{"Is my portfolio balanced?", folio.Route{Tool: folio.ToolRiskRules}},
		{"Show recent activity", folio.Route{Tool: folio.ToolTransactions, Args: folio.Args{Limit: folio.Ref(5)}}},
		{"How much did I gain today?", folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("1d")}}},
		{"Hello", folio.Route{Tool: folio.ToolSummary}},
		{"What about last year?", folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("1y")}}},
	}
	for _, tt := range tests {
		got := Deterministic(tt.query, nil)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Deterministic(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestDeterministic_FollowUp(t *testing.T) {
	history := folio.History{
		{Role: folio.User, Content: "How has my portfolio performed this year?"},
		{Role: folio.Assistant, Content: "Your YTD portfolio return is 9.80%", Tool: folio.ToolPerformance},
		{Role: folio.User, Content: "thanks"},
		{Role: folio.Assistant, Content: "You're welcome", Tool: folio.ToolSummary},
	}
	tests := []struct {
		query   string
		history folio.History
		want    folio.Route
	}{
		{"What about last year?", history, folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("1y")}}},
		{"And for five years?", history, folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("5y")}}},
		{"How about my holdings?", history[2:], folio.Route{Tool: folio.ToolSummary}},
		{"how about the sector breakdown", nil, folio.Route{Tool: folio.ToolAllocation}},
	}
	for _, tt := range tests {
		got := Deterministic(tt.query, tt.history)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Deterministic(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}

	compare := folio.History{{Role: folio.Assistant, Tool: folio.ToolCompare}}
	if got := Deterministic("what about the max?", compare); got.Tool != folio.ToolPerformance || got.Args.RangeOrDefault() != "max" {
		t.Errorf("Deterministic() after compare = %+v", got)
	}
}

func TestExtractRange(t *testing.T) {
	tests := []struct {
		query string
		want  folio.Range
	}{
		{"today", folio.Range1D},
		{"over ONE DAY", folio.Range1D},
		{"five year view", folio.Range5Y},
		{"last year", folio.Range1Y},
		{"over 1 year", folio.Range1Y},
		{"all-time", folio.RangeMax},
		{"this year", folio.RangeYTD},
		{"", folio.RangeYTD},
	}
	for _, tt := range tests {
		if got := ExtractRange(tt.query); got != tt.want {
			t.Errorf("ExtractRange(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestExtractSymbols(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"What is the price of AAPL and GOOGL?", []string{"AAPL", "GOOGL"}},
		{"HOW ARE THE ETF prices for VTI", []string{"VTI"}},
		{"no tickers here", nil},
		{"TOOLONGX is not one", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ExtractSymbols(tt.query)); diff != "" {
			t.Errorf("ExtractSymbols(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestNewRequest(t *testing.T) {
	var h folio.History
	for i := 0; i < 10; i++ {
		h = append(h, folio.Turn{Role: folio.User, Content: string(rune('a' + i))})
	}
	req := NewRequest("policy", "q", h)
	if len(req.History) != HistoryWindow || req.History[0].Content != "e" {
		t.Errorf("NewRequest().History = %v", req.History)
	}
	if len(req.Catalog) != 7 {
		t.Errorf("NewRequest().Catalog has %d tools, want 7", len(req.Catalog))
	}
}
