// Package router maps a sanitized query and the session history to a tool
// and its arguments.
//
// Deterministic is total and always available. An Automated router may be
// tried first; callers fall back to Deterministic when it fails.
package router

import (
	"context"
	"regexp"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/tools"
)

// DefaultSymbol is the ticker used for market data when the query names
// none.
const DefaultSymbol = "AAPL"

// HistoryWindow is the number of most recent turns given to an Automated
// router.
const HistoryWindow = 6

// bucket routes queries containing any of its words to a tool.
type bucket struct {
	words []string
	route func(query string) folio.Route
}

func fixed(tool folio.ToolName, args folio.Args) func(string) folio.Route {
	return func(string) folio.Route { return folio.Route{Tool: tool, Args: args} }
}

func performance(query string) folio.Route {
	return folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref(string(ExtractRange(query)))}}
}

func marketData(query string) folio.Route {
	symbols := ExtractSymbols(query)
	if len(symbols) == 0 {
		symbols = []string{DefaultSymbol}
	}
	return folio.Route{Tool: folio.ToolMarketData, Args: folio.Args{Symbols: symbols}}
}

// buckets are tested in order, first match wins.
var buckets = []bucket{
	{[]string{"account", "brokerage", "cash balance", "platform"}, fixed(folio.ToolAccounts, folio.Args{})},
	{[]string{"price", "quote", "market data", "current price"}, marketData},
	{[]string{"allocation", "diversif", "sector", "region", "breakdown", "break down", "exposure"}, fixed(folio.ToolAllocation, folio.Args{})},
	{[]string{"risk", "health check", "balanced", "concentration"}, fixed(folio.ToolRiskRules, folio.Args{})},
	{[]string{"transaction", "buy", "sell", "activity"}, fixed(folio.ToolTransactions, folio.Args{Limit: folio.Ref(folio.DefaultLimit)})},
	{[]string{"perform", "return", "ytd", "year", "gain"}, performance},
}

var (
	followUps        = []string{"what about", "and for", "how about"}
	compareSubjects  = []string{"holding", "holdings", "portfolio"}
	compareMeasures  = []string{"perform", "performance", "return", "gain"}
	performanceTools = map[folio.ToolName]bool{folio.ToolPerformance: true, folio.ToolCompare: true}
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Deterministic routes the query with fixed keyword rules. It never fails.
//
// A follow-up ("what about", "and for", "how about") after a performance
// answer stays on performance. A comparison of holdings and performance
// routes to ToolCompare. Otherwise keyword buckets apply, and the summary is
// the default.
func Deterministic(query string, history folio.History) folio.Route {
	q := strings.ToLower(query)

	if containsAny(q, followUps) {
		for i := len(history) - 1; i >= 0; i-- {
			if performanceTools[history[i].Tool] {
				return performance(query)
			}
		}
	}

	if strings.Contains(q, "compare") && containsAny(q, compareSubjects) && containsAny(q, compareMeasures) {
		return folio.Route{Tool: folio.ToolCompare, Args: folio.Args{Range: folio.Ref(string(ExtractRange(query)))}}
	}

	for _, b := range buckets {
		if containsAny(q, b.words) {
			return b.route(query)
		}
	}
	return folio.Route{Tool: folio.ToolSummary}
}

// rangePhrases are tested in order, first match wins.
var rangePhrases = []struct {
	r       folio.Range
	phrases []string
}{
	{folio.Range1D, []string{"1d", "today", "1-day", "one day"}},
	{folio.Range5Y, []string{"5y", "five year", "5 year"}},
	{folio.Range1Y, []string{"1y", "last year", "one year", "1 year"}},
	{folio.RangeMax, []string{"max", "all time", "all-time"}},
}

// ExtractRange returns the performance range named in the query, ytd when
// none is.
func ExtractRange(query string) folio.Range {
	q := strings.ToLower(query)
	for _, rp := range rangePhrases {
		if containsAny(q, rp.phrases) {
			return rp.r
		}
	}
	return folio.RangeYTD
}

var ticker = regexp.MustCompile(`\b[A-Z]{2,5}\b`)

var stopwords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`THE AND FOR ARE BUT NOT YOU ALL CAN HER WAS ONE OUR OUT HOW HAS
		ITS GET WHO DID LET SAY SHE HIM HIS MAY NEW NOW OLD SEE WAY DAY TOO USE ETF`) {
		stopwords[w] = true
	}
}

// ExtractSymbols returns the upper-case words of 2 to 5 letters that look
// like tickers, in order of appearance.
func ExtractSymbols(query string) []string {
	var res []string
	for _, t := range ticker.FindAllString(query, -1) {
		if !stopwords[t] {
			res = append(res, t)
		}
	}
	return res
}

// Request is what an Automated router is given.
type Request struct {
	Policy  string
	Catalog []tools.Spec
	History folio.History // at most HistoryWindow turns
	Query   string
}

// NewRequest returns a Request for query, keeping the most recent turns of
// history only.
func NewRequest(policy, query string, history folio.History) Request {
	return Request{
		Policy:  policy,
		Catalog: tools.Catalog,
		History: history.Last(HistoryWindow),
		Query:   query,
	}
}

// Outcome is the answer of an Automated router: either a Route or a
// free-form Text.
type Outcome struct {
	Route *folio.Route
	Text  string
}

// Automated is a fallible router, typically backed by a language model.
type Automated interface {
	Route(ctx context.Context, req Request) (Outcome, error)
}
