package tools

import "github.com/etnz/folio"

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	String  ParamType = "string"
	Integer ParamType = "integer"
	Array   ParamType = "array" // of strings
)

// Param describes one tool parameter.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Description string    `json:"description"`
	Required    bool      `json:"required,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
}

// Spec describes a tool to an automated router.
type Spec struct {
	Name        folio.ToolName `json:"name"`
	Description string         `json:"description"`
	Params      []Param        `json:"parameters"`
}

func ranges() []string {
	res := make([]string, len(folio.Ranges))
	for i, r := range folio.Ranges {
		res[i] = string(r)
	}
	return res
}

// Catalog lists the seven tools in order, with their parameters.
var Catalog = []Spec{
	{
		Name: folio.ToolSummary,
		Description: "Get the user's current portfolio summary including total value, currency, " +
			"number of holdings, and details of each holding (symbol, name, allocation %, " +
			"value, performance %). Use this when the user asks about their portfolio value, " +
			"holdings, or wants a general overview.",
		Params: []Param{
			{Name: "account_id", Type: String, Description: "Optional account ID to filter by"},
		},
	},
	{
		Name: folio.ToolPerformance,
		Description: "Get portfolio performance metrics for a specific time range. Returns return " +
			"percentage, absolute gain/loss, and currency. Valid ranges: '1d' (today), " +
			"'ytd' (year-to-date), '1y' (one year), '5y' (five years), 'max' (all time). " +
			"Use this when the user asks about returns, gains, losses, or performance.",
		Params: []Param{
			{Name: "query_range", Type: String, Enum: ranges(),
				Description: "Time range for performance data. Must be one of: '1d', 'ytd', '1y', '5y', 'max'. Defaults to 'ytd'."},
		},
	},
	{
		Name: folio.ToolTransactions,
		Description: "Get recent transaction history (buys, sells). Can filter by symbol or " +
			"transaction type. Use this when the user asks about their trades, " +
			"recent buys/sells, or transaction activity.",
		Params: []Param{
			{Name: "symbol", Type: String, Description: "Optional stock symbol to filter by (e.g., 'AAPL')"},
			{Name: "tx_type", Type: String, Description: "Optional transaction type filter: 'BUY' or 'SELL'"},
			{Name: "limit", Type: Integer, Description: "Maximum number of transactions to return (default: 5)"},
		},
	},
	{
		Name: folio.ToolAccounts,
		Description: "Get details of the user's linked brokerage accounts including account name, " +
			"balance, currency, and platform. Use this when the user asks about their " +
			"accounts, cash balances, or which brokerages they use.",
		Params: []Param{
			{Name: "account_id", Type: String, Description: "Optional account ID for a specific account"},
		},
	},
	{
		Name: folio.ToolMarketData,
		Description: "Look up current market data (price, daily change) for specific stock or ETF " +
			"symbols. Use this when the user asks about current prices, market quotes, " +
			"or how specific symbols are doing in the market.",
		Params: []Param{
			{Name: "symbols", Type: Array, Required: true, Description: "List of stock/ETF symbols to look up (e.g., ['AAPL', 'MSFT'])"},
		},
	},
	{
		Name: folio.ToolAllocation,
		Description: "Analyze the portfolio's asset allocation broken down by sector, region, " +
			"and asset class. Also identifies risk flags like high concentration or " +
			"low diversification. Use this when the user asks about their allocation, " +
			"diversification, sector exposure, or wants a portfolio breakdown.",
	},
	{
		Name: folio.ToolRiskRules,
		Description: "Run risk assessment rules against the portfolio. Checks for concentration " +
			"risk (>30% in single holding), low diversification (<5 holdings), and " +
			"asset class concentration (>80% in one class). Returns triggered rules " +
			"with severity levels. Use this when the user asks about portfolio risk, " +
			"whether their portfolio is balanced, or wants a health check.",
	},
}

// SpecOf returns the Spec of name.
func SpecOf(name folio.ToolName) (Spec, bool) {
	for _, s := range Catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}
