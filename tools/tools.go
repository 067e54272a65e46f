package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/etnz/folio"
)

// toolset binds the tool implementations to a Provider.
type toolset struct {
	p Provider
}

// errNoData is returned when a provider answers without data nor error.
var errNoData = errors.New("provider returned no data")

func (t toolset) summary(ctx context.Context, args folio.Args) (folio.Payload, error) {
	s, err := t.p.Summary(ctx, args.AccountID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNoData
	}
	return s, nil
}

func (t toolset) performance(ctx context.Context, args folio.Args) (folio.Payload, error) {
	r, err := folio.ParseRange(args.RangeOrDefault())
	if err != nil {
		return nil, err
	}
	perf, err := t.p.Performance(ctx, r)
	if err != nil {
		return nil, err
	}
	if perf == nil {
		return nil, errNoData
	}
	return perf, nil
}

func (t toolset) transactions(ctx context.Context, args folio.Args) (folio.Payload, error) {
	all, err := t.p.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	limit := max(args.LimitOrDefault(), 1)

	res := make([]folio.Transaction, 0, limit)
	for _, tx := range all {
		if len(res) == limit {
			break
		}
		if args.Symbol != "" && !strings.EqualFold(tx.Symbol, args.Symbol) {
			continue
		}
		if args.TxType != "" && !strings.EqualFold(tx.Type, args.TxType) {
			continue
		}
		res = append(res, tx)
	}
	return &folio.Transactions{Transactions: res, TotalCount: len(res)}, nil
}

func (t toolset) accounts(ctx context.Context, args folio.Args) (folio.Payload, error) {
	all, err := t.p.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	accounts := all
	if args.AccountID != "" {
		accounts = nil
		for _, a := range all {
			if a.ID == args.AccountID {
				accounts = append(accounts, a)
			}
		}
		if len(accounts) == 0 {
			return nil, folio.Errorf(folio.NotFound, "Account '%s' not found", args.AccountID)
		}
	}

	currency := "USD"
	if len(accounts) > 0 {
		currency = accounts[0].Balance.Currency()
	}
	total := folio.M(0, currency)
	for _, a := range accounts {
		total = total.Add(a.Balance.WithCurrency(currency))
	}
	return &folio.Accounts{Accounts: accounts, AccountCount: len(accounts), TotalBalance: total}, nil
}

func (t toolset) marketData(ctx context.Context, args folio.Args) (folio.Payload, error) {
	var symbols []string
	for _, s := range args.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return nil, folio.Errorf(folio.InvalidInput, "At least one symbol is required")
	}

	found, err := t.p.Quotes(ctx, symbols)
	if err != nil {
		return nil, err
	}
	md := &folio.MarketData{Quotes: []folio.Quote{}, SymbolsMissing: []string{}}
	for _, s := range symbols {
		if q, ok := found[s]; ok {
			md.Quotes = append(md.Quotes, q)
		} else {
			md.SymbolsMissing = append(md.SymbolsMissing, s)
		}
	}
	return md, nil
}

func (t toolset) allocation(ctx context.Context, _ folio.Args) (folio.Payload, error) {
	s, err := t.p.Summary(ctx, "")
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNoData
	}
	return Analyze(s), nil
}

func (t toolset) riskRules(ctx context.Context, _ folio.Args) (folio.Payload, error) {
	s, err := t.p.Summary(ctx, "")
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNoData
	}
	return Assess(s), nil
}
