// Package mock provides a fixed, in-memory portfolio used for demos and
// tests.
package mock

import (
	"context"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Provider serves the fixed dataset. The zero value is ready to use.
type Provider struct {
	// Now stamps performance data. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Provider stamping performance data with the current time.
func New() *Provider { return &Provider{} }

const currency = "USD"

func usd[T float64 | int](v T) folio.Money { return folio.M(v, currency) }

func holdings() []folio.Holding {
	return []folio.Holding{
		{Symbol: "AAPL", Name: "Apple Inc.", AllocationPct: folio.Percent(42.5).Ptr(), Value: usd(21250.0),
			PerformancePct: folio.Percent(12.4).Ptr(), Sector: "Technology", Region: "North America", AssetClass: "Equity"},
		{Symbol: "MSFT", Name: "Microsoft Corp.", AllocationPct: folio.Percent(32.5).Ptr(), Value: usd(16250.0),
			PerformancePct: folio.Percent(8.2).Ptr(), Sector: "Technology", Region: "North America", AssetClass: "Equity"},
		{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", AllocationPct: folio.Percent(25.0).Ptr(), Value: usd(12500.0),
			PerformancePct: folio.Percent(6.1).Ptr(), Sector: "Diversified", Region: "North America", AssetClass: "ETF"},
	}
}

var performances = map[folio.Range]struct {
	ret  folio.Percent
	gain float64
}{
	folio.Range1D:  {0.3, 150},
	folio.RangeYTD: {9.8, 4900},
	folio.Range1Y:  {15.2, 7600},
	folio.Range5Y:  {58.1, 29050},
	folio.RangeMax: {75.0, 37500},
}

func transactions() []folio.Transaction {
	return []folio.Transaction{
		{Date: date.New(2026, time.February, 20), Type: "BUY", Symbol: "AAPL", Quantity: folio.Q(10), UnitPrice: usd(184.0), Fee: usd(0)},
		{Date: date.New(2026, time.January, 15), Type: "BUY", Symbol: "MSFT", Quantity: folio.Q(5), UnitPrice: usd(405.0), Fee: usd(0)},
		{Date: date.New(2025, time.December, 11), Type: "SELL", Symbol: "VTI", Quantity: folio.Q(3), UnitPrice: usd(280.0), Fee: usd(1.0)},
	}
}

func accounts() []folio.Account {
	return []folio.Account{
		{ID: "acc-1", Name: "Main Brokerage", Balance: usd(5420.50), Platform: "Interactive Brokers"},
		{ID: "acc-2", Name: "Retirement 401k", Balance: usd(32150.00), Platform: "Fidelity"},
		{ID: "acc-3", Name: "Savings", Balance: usd(12429.50), Platform: "Vanguard"},
	}
}

var quotes = map[string]folio.Quote{
	"AAPL": {Symbol: "AAPL", Name: "Apple Inc.", Price: usd(184.0), ChangePct: 1.2},
	"MSFT": {Symbol: "MSFT", Name: "Microsoft Corp.", Price: usd(405.0), ChangePct: -0.3},
	"VTI":  {Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Price: usd(280.0), ChangePct: 0.5},
}

// Summary ignores accountID: the mock portfolio has a single set of holdings.
func (p *Provider) Summary(_ context.Context, _ string) (*folio.Summary, error) {
	hs := holdings()
	total := usd(0)
	for _, h := range hs {
		total = total.Add(h.Value)
	}
	return &folio.Summary{TotalValue: total, HoldingsCount: len(hs), Holdings: hs}, nil
}

func (p *Provider) Performance(_ context.Context, r folio.Range) (*folio.Performance, error) {
	perf, ok := performances[r]
	if !ok {
		return nil, folio.Errorf(folio.InvalidInput, "Unsupported range '%s'", r)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return &folio.Performance{
		Range:        string(r),
		ReturnPct:    perf.ret,
		AbsoluteGain: usd(perf.gain),
		LastUpdated:  now().UTC().Format(time.RFC3339Nano),
	}, nil
}

func (p *Provider) Transactions(context.Context) ([]folio.Transaction, error) {
	return transactions(), nil
}

func (p *Provider) Accounts(context.Context) ([]folio.Account, error) {
	return accounts(), nil
}

func (p *Provider) Quotes(_ context.Context, symbols []string) (map[string]folio.Quote, error) {
	res := make(map[string]folio.Quote)
	for _, s := range symbols {
		if q, ok := quotes[s]; ok {
			res[s] = q
		}
	}
	return res, nil
}
