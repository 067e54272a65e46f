package ghostfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

const defaultCurrency = "USD"

// Quoter is a source of market quotes.
type Quoter interface {
	Quotes(ctx context.Context, symbols []string) (map[string]folio.Quote, error)
}

// Provider serves portfolio data from a Ghostfolio instance. Market quotes,
// which Ghostfolio does not serve, come from an optional Quoter.
type Provider struct {
	client *Client
	quotes Quoter
}

// NewProvider returns a Provider reading from c and quoting with q, which
// may be nil.
func NewProvider(c *Client, q Quoter) *Provider {
	return &Provider{client: c, quotes: q}
}

func optionalPct(v any, paths ...string) *folio.Percent {
	f, ok := number(v, paths...)
	if !ok {
		return nil
	}
	return folio.Percent(f).Ptr()
}

// Summary implements tools.Provider.
func (p *Provider) Summary(ctx context.Context, accountID string) (*folio.Summary, error) {
	resp, err := p.client.Holdings(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items, ok := list(resp, "$.holdings")
	if !ok {
		return nil, errors.New("expected holdings list or {holdings: [...]} from Ghostfolio API")
	}

	currency := defaultCurrency
	if len(items) > 0 {
		if c := text(items[0], "$.currency"); c != "" {
			currency = c
		}
	}

	s := &folio.Summary{TotalValue: folio.M(0, currency)}
	for i, item := range items {
		if _, isObject := item.(map[string]any); !isObject {
			return nil, fmt.Errorf("holding at index %d must be an object", i)
		}
		symbol, name := text(item, "$.symbol"), text(item, "$.name")
		if symbol == "" || name == "" {
			return nil, fmt.Errorf("holding at index %d is missing required symbol or name", i)
		}
		value, ok := number(item, "$.marketValue", "$.valueInBaseCurrency")
		if !ok {
			return nil, fmt.Errorf("holding at index %d has invalid required numeric field 'marketValue/valueInBaseCurrency'", i)
		}
		h := folio.Holding{
			Symbol:         symbol,
			Name:           name,
			AllocationPct:  optionalPct(item, "$.allocationInPercentage"),
			Value:          folio.M(value, currency),
			PerformancePct: optionalPct(item, "$.performanceInPercentage", "$.netPerformancePercentage"),
			Sector:         text(item, "$.sector", "$.sectors[0].name"),
			Region:         text(item, "$.region", "$.countries[0].continent"),
			AssetClass:     text(item, "$.assetClass"),
		}
		s.Holdings = append(s.Holdings, h)
		s.TotalValue = s.TotalValue.Add(h.Value)
	}
	s.HoldingsCount = len(s.Holdings)
	return s, nil
}

// Performance implements tools.Provider. It accepts the current
// {performance: {...}} payload and the legacy {performance: n, value: n}
// one.
func (p *Provider) Performance(ctx context.Context, r folio.Range) (*folio.Performance, error) {
	resp, err := p.client.Performance(ctx, string(r))
	if err != nil {
		return nil, err
	}
	if _, isObject := resp.(map[string]any); !isObject {
		return nil, errors.New("expected performance object from Ghostfolio API")
	}
	perf := &folio.Performance{
		Range:       string(r),
		LastUpdated: text(resp, "$.lastUpdated", "$.performance.lastUpdated"),
	}

	if detail, ok := lookup(resp, "$.performance"); ok {
		if _, isObject := detail.(map[string]any); isObject {
			ret, ok := number(detail, "$.netPerformancePercentage", "$.netPerformancePercentageWithCurrencyEffect")
			if !ok {
				return nil, errors.New("performance payload has invalid required numeric field " +
					"'performance.netPerformancePercentage/netPerformancePercentageWithCurrencyEffect'")
			}
			gain, ok := number(detail, "$.netPerformance", "$.netPerformanceWithCurrencyEffect")
			if !ok {
				current, okCurrent := number(detail, "$.currentValueInBaseCurrency", "$.currentNetWorth")
				investment, okInvestment := number(detail, "$.totalInvestment", "$.totalInvestmentValueWithCurrencyEffect")
				if !okCurrent || !okInvestment {
					return nil, errors.New("performance payload has invalid required numeric field " +
						"'performance.netPerformance/netPerformanceWithCurrencyEffect'")
				}
				gain = current - investment
			}
			perf.ReturnPct = folio.Percent(ret)
			perf.AbsoluteGain = folio.M(gain, defaultCurrency)
			return perf, nil
		}
	}

	ret, ok := number(resp, "$.performance")
	if !ok {
		return nil, errors.New("performance payload has invalid required numeric field 'performance'")
	}
	gain, ok := number(resp, "$.value")
	if !ok {
		return nil, errors.New("performance payload has invalid required numeric field 'value'")
	}
	perf.ReturnPct = folio.Percent(ret)
	perf.AbsoluteGain = folio.M(gain, defaultCurrency)
	return perf, nil
}

// Transactions implements tools.Provider.
func (p *Provider) Transactions(ctx context.Context) ([]folio.Transaction, error) {
	resp, err := p.client.Orders(ctx)
	if err != nil {
		return nil, err
	}
	items, ok := list(resp, "$.activities")
	if !ok {
		return nil, errors.New("expected transaction list or {activities: [...]} from Ghostfolio API")
	}

	res := make([]folio.Transaction, 0, len(items))
	for i, item := range items {
		if _, isObject := item.(map[string]any); !isObject {
			return nil, fmt.Errorf("transaction at index %d must be an object", i)
		}
		currency := text(item, "$.currency", "$.SymbolProfile.currency")
		if currency == "" {
			currency = defaultCurrency
		}
		day, _ := date.Parse(text(item, "$.date")) // zero when missing
		qty, _ := number(item, "$.quantity")
		price, _ := number(item, "$.unitPrice")
		fee, _ := number(item, "$.fee")
		res = append(res, folio.Transaction{
			Date:      day,
			Type:      strings.ToUpper(text(item, "$.type")),
			Symbol:    text(item, "$.symbol", "$.SymbolProfile.symbol"),
			Quantity:  folio.Q(qty),
			UnitPrice: folio.M(price, currency),
			Fee:       folio.M(fee, currency),
		})
	}
	return res, nil
}

// Accounts implements tools.Provider.
func (p *Provider) Accounts(ctx context.Context) ([]folio.Account, error) {
	resp, err := p.client.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	items, ok := list(resp, "$.accounts")
	if !ok {
		return nil, errors.New("expected account list or {accounts: [...]} from Ghostfolio API")
	}

	res := make([]folio.Account, 0, len(items))
	for i, item := range items {
		id := text(item, "$.id")
		if id == "" {
			return nil, fmt.Errorf("account at index %d is missing required id", i)
		}
		currency := text(item, "$.currency")
		if currency == "" {
			currency = defaultCurrency
		}
		balance, _ := number(item, "$.balance")
		res = append(res, folio.Account{
			ID:         id,
			Name:       text(item, "$.name"),
			Balance:    folio.M(balance, currency),
			Platform:   text(item, "$.platform.name", "$.platform"),
			IsExcluded: boolean(item, "$.isExcluded"),
		})
	}
	return res, nil
}

// Quotes implements tools.Provider.
func (p *Provider) Quotes(ctx context.Context, symbols []string) (map[string]folio.Quote, error) {
	if p.quotes == nil {
		return nil, folio.Errorf(folio.InvalidInput, "Market data is unavailable: no quote source is configured")
	}
	return p.quotes.Quotes(ctx, symbols)
}
