package folio

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToolName identifies one of the read-only tools the assistant can invoke.
//
// The set is closed, but a ToolName may still carry an unrecognized value
// when it comes from an automated router; Known reports that.
type ToolName string

const (
	ToolSummary      ToolName = "get_portfolio_summary"
	ToolPerformance  ToolName = "get_performance"
	ToolTransactions ToolName = "get_transactions"
	ToolAccounts     ToolName = "get_account_details"
	ToolMarketData   ToolName = "get_market_data"
	ToolAllocation   ToolName = "analyze_allocation"
	ToolRiskRules    ToolName = "check_risk_rules"

	// ToolCompare is the composite "compare holdings performance" request,
	// executed as ToolSummary followed by ToolPerformance.
	ToolCompare ToolName = "compare_holdings_performance"
)

// Tools lists the plain tools in catalog order. ToolCompare is not part of it.
var Tools = []ToolName{
	ToolSummary,
	ToolPerformance,
	ToolTransactions,
	ToolAccounts,
	ToolMarketData,
	ToolAllocation,
	ToolRiskRules,
}

// Known reports whether t is one of the plain tools or the composite one.
func (t ToolName) Known() bool {
	if t == ToolCompare {
		return true
	}
	for _, n := range Tools {
		if n == t {
			return true
		}
	}
	return false
}

func (t ToolName) String() string { return string(t) }

// DefaultLimit is the number of transactions returned when no limit is set.
const DefaultLimit = 5

// Args holds the arguments of a tool invocation. Each tool only reads the
// fields of its own parameter set.
type Args struct {
	AccountID string   `json:"account_id,omitempty"`
	Range     *string  `json:"query_range,omitempty"`
	Symbol    string   `json:"symbol,omitempty"`
	TxType    string   `json:"tx_type,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
	Symbols   []string `json:"symbols,omitempty"`
}

// Ref returns a pointer to v, to set optional arguments.
func Ref[T any](v T) *T { return &v }

// RangeOrDefault returns the performance range, "ytd" when unset. A range
// set to "" stays "".
func (a Args) RangeOrDefault() string {
	if a.Range == nil {
		return string(RangeYTD)
	}
	return *a.Range
}

// LimitOrDefault returns the transactions limit, DefaultLimit when unset. A
// limit set to 0 stays 0.
func (a Args) LimitOrDefault() int {
	if a.Limit == nil {
		return DefaultLimit
	}
	return *a.Limit
}

// ArgsFromMap decodes loosely typed arguments, as produced by a function
// calling model. Unknown keys are ignored.
func ArgsFromMap(m map[string]any) (Args, error) {
	var a Args
	for k, v := range m {
		switch k {
		case "account_id":
			a.AccountID = asString(v)
		case "query_range", "range":
			a.Range = Ref(asString(v))
		case "symbol":
			a.Symbol = asString(v)
		case "tx_type":
			a.TxType = asString(v)
		case "limit":
			n, err := asInt(v)
			if err != nil {
				return a, fmt.Errorf("argument %q: %w", k, err)
			}
			a.Limit = &n
		case "symbols":
			switch s := v.(type) {
			case []string:
				a.Symbols = s
			case []any:
				for _, x := range s {
					a.Symbols = append(a.Symbols, asString(x))
				}
			case string:
				a.Symbols = strings.Split(s, ",")
			default:
				return a, fmt.Errorf("argument %q is not a list but %T", k, v)
			}
		}
	}
	return a, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// Route is the routing decision: one tool and its arguments.
type Route struct {
	Tool ToolName `json:"tool"`
	Args Args     `json:"args"`
}
