package folio

import "github.com/etnz/folio/date"

// Payload is the data of a successful tool result. It is a closed sum type:
// the renderer switches over the concrete records below, and Raw is the
// catch-all for data without a dedicated record.
type Payload interface {
	payload()
}

func (*Summary) payload()      {}
func (*Performance) payload()  {}
func (*Transactions) payload() {}
func (*Accounts) payload()     {}
func (*MarketData) payload()   {}
func (*Allocation) payload()   {}
func (*RiskReport) payload()   {}
func (*Comparison) payload()   {}
func (Raw) payload()           {}

// Holding is one position of the portfolio.
type Holding struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	AllocationPct  *Percent `json:"allocation_pct"`
	Value          Money    `json:"value"`
	PerformancePct *Percent `json:"performance_pct"`
	Sector         string   `json:"sector,omitempty"`
	Region         string   `json:"region,omitempty"`
	AssetClass     string   `json:"asset_class,omitempty"`
}

// Allocation returns the allocation percentage, 0 when unknown.
func (h Holding) Allocation() Percent {
	if h.AllocationPct == nil {
		return 0
	}
	return *h.AllocationPct
}

// Summary is the result of ToolSummary.
type Summary struct {
	TotalValue    Money     `json:"total_value"`
	HoldingsCount int       `json:"holdings_count"`
	Holdings      []Holding `json:"holdings"`
}

// Currency of the portfolio valuation.
func (s *Summary) Currency() string { return s.TotalValue.Currency() }

// Performance is the result of ToolPerformance.
type Performance struct {
	Range        string  `json:"range"`
	ReturnPct    Percent `json:"return_pct"`
	AbsoluteGain Money   `json:"absolute_gain"`
	// LastUpdated is the raw ISO-8601 timestamp of the data, kept verbatim so
	// that freshness can tell a missing value from an unparsable one.
	LastUpdated string `json:"last_updated,omitempty"`
}

// Transaction is one buy or sell activity.
type Transaction struct {
	Date      date.Date `json:"date"`
	Type      string    `json:"type"`
	Symbol    string    `json:"symbol"`
	Quantity  Quantity  `json:"quantity"`
	UnitPrice Money     `json:"unit_price"`
	Fee       Money     `json:"fee"`
}

// Transactions is the result of ToolTransactions.
type Transactions struct {
	Transactions []Transaction `json:"transactions"`
	TotalCount   int           `json:"total_count"`
}

// Account is a linked brokerage account.
type Account struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Balance    Money  `json:"balance"`
	Platform   string `json:"platform"`
	IsExcluded bool   `json:"is_excluded"`
}

// Accounts is the result of ToolAccounts.
type Accounts struct {
	Accounts     []Account `json:"accounts"`
	AccountCount int       `json:"account_count"`
	TotalBalance Money     `json:"total_balance"`
}

// Quote is the latest market data of a symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     Money   `json:"price"`
	ChangePct Percent `json:"change_pct"`
}

// MarketData is the result of ToolMarketData. Quotes keep the requested order.
type MarketData struct {
	Quotes         []Quote  `json:"quotes"`
	SymbolsMissing []string `json:"symbols_missing"`
}

// Share is the weight of one group (sector, region, asset class).
type Share struct {
	Name string  `json:"name"`
	Pct  Percent `json:"pct"`
}

// Allocation is the result of ToolAllocation. Shares keep the order in which
// groups first appear among the holdings.
type Allocation struct {
	HoldingsCount int       `json:"holdings_count"`
	BySector      []Share   `json:"by_sector"`
	ByRegion      []Share   `json:"by_region"`
	ByAssetClass  []Share   `json:"by_asset_class"`
	RiskFlags     []string  `json:"risk_flags"`
	Holdings      []Holding `json:"holdings"`
}

// Severity of a triggered risk rule.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RiskRule is a triggered risk rule.
type RiskRule struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Symbol   string   `json:"symbol,omitempty"`
}

// RiskReport is the result of ToolRiskRules.
type RiskReport struct {
	RulesTriggered []RiskRule `json:"rules_triggered"`
	RiskLevel      Severity   `json:"risk_level"`
}

// Comparison is the result of the composite ToolCompare.
type Comparison struct {
	Summary     *Summary     `json:"summary"`
	Performance *Performance `json:"performance"`
}

// Raw is untyped tool data without a dedicated record.
type Raw map[string]any
