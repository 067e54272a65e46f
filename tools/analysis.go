package tools

import (
	"fmt"

	"github.com/etnz/folio"
)

// Risk thresholds, in percent of the portfolio.
const (
	ConcentrationLimit = 30.0
	MinHoldings        = 5
	AssetClassLimit    = 80.0
)

const (
	ruleConcentration     = "concentration"
	ruleDiversification   = "diversification"
	ruleAssetConcentrated = "asset_class_concentration"
)

// unknownGroup names holdings without a sector, region or asset class.
const unknownGroup = "Unknown"

// weight of h in the portfolio: its allocation when reported, its value
// share otherwise.
func weight(h folio.Holding, total folio.Money) folio.Percent {
	if h.AllocationPct != nil {
		return *h.AllocationPct
	}
	return folio.Percent(h.Value.Ratio(total) * 100)
}

// shares groups the holdings by key and returns each group value share, in
// order of first appearance.
func shares(holdings []folio.Holding, total folio.Money, key func(folio.Holding) string) []folio.Share {
	res := []folio.Share{}
	index := make(map[string]int)
	for _, h := range holdings {
		k := key(h)
		if k == "" {
			k = unknownGroup
		}
		i, ok := index[k]
		if !ok {
			i = len(res)
			index[k] = i
			res = append(res, folio.Share{Name: k})
		}
		res[i].Pct += folio.Percent(h.Value.Ratio(total) * 100)
	}
	return res
}

func total(s *folio.Summary) folio.Money {
	if !s.TotalValue.IsZero() {
		return s.TotalValue
	}
	t := folio.M(0, s.Currency())
	for _, h := range s.Holdings {
		t = t.Add(h.Value)
	}
	return t
}

// Analyze breaks the summary down by sector, region and asset class and
// flags concentration risks.
func Analyze(s *folio.Summary) *folio.Allocation {
	t := total(s)
	a := &folio.Allocation{
		HoldingsCount: len(s.Holdings),
		BySector:      shares(s.Holdings, t, func(h folio.Holding) string { return h.Sector }),
		ByRegion:      shares(s.Holdings, t, func(h folio.Holding) string { return h.Region }),
		ByAssetClass:  shares(s.Holdings, t, func(h folio.Holding) string { return h.AssetClass }),
		RiskFlags:     []string{},
		Holdings:      s.Holdings,
	}
	for _, h := range s.Holdings {
		if w := weight(h, t); w > ConcentrationLimit {
			a.RiskFlags = append(a.RiskFlags, fmt.Sprintf("High concentration: %s at %s", h.Symbol, w.Short()))
		}
	}
	if n := len(s.Holdings); n < MinHoldings {
		a.RiskFlags = append(a.RiskFlags, fmt.Sprintf("Low diversification: only %d holdings", n))
	}
	for _, c := range a.ByAssetClass {
		if c.Pct > AssetClassLimit {
			a.RiskFlags = append(a.RiskFlags, fmt.Sprintf("Asset class concentration: %s at %s", c.Name, c.Pct.Short()))
		}
	}
	return a
}

// Assess runs the risk rules against the summary. The overall level is the
// highest severity triggered, low when none is.
func Assess(s *folio.Summary) *folio.RiskReport {
	t := total(s)
	r := &folio.RiskReport{RulesTriggered: []folio.RiskRule{}, RiskLevel: folio.SeverityLow}
	for _, h := range s.Holdings {
		if w := weight(h, t); w > ConcentrationLimit {
			r.RulesTriggered = append(r.RulesTriggered, folio.RiskRule{
				Rule:     ruleConcentration,
				Severity: folio.SeverityHigh,
				Message:  fmt.Sprintf("%s represents %s of the portfolio (above %.0f%% threshold)", h.Symbol, w.Short(), ConcentrationLimit),
				Symbol:   h.Symbol,
			})
		}
	}
	if n := len(s.Holdings); n < MinHoldings {
		r.RulesTriggered = append(r.RulesTriggered, folio.RiskRule{
			Rule:     ruleDiversification,
			Severity: folio.SeverityMedium,
			Message:  fmt.Sprintf("Portfolio has only %d holdings (fewer than %d)", n, MinHoldings),
		})
	}
	for _, c := range shares(s.Holdings, t, func(h folio.Holding) string { return h.AssetClass }) {
		if c.Pct > AssetClassLimit {
			r.RulesTriggered = append(r.RulesTriggered, folio.RiskRule{
				Rule:     ruleAssetConcentrated,
				Severity: folio.SeverityMedium,
				Message:  fmt.Sprintf("%s makes up %s of the portfolio (above %.0f%% threshold)", c.Name, c.Pct.Short(), AssetClassLimit),
			})
		}
	}
	for _, rule := range r.RulesTriggered {
		switch {
		case rule.Severity == folio.SeverityHigh:
			r.RiskLevel = folio.SeverityHigh
		case rule.Severity == folio.SeverityMedium && r.RiskLevel == folio.SeverityLow:
			r.RiskLevel = folio.SeverityMedium
		}
	}
	return r
}
