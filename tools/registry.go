package tools

import (
	"context"
	"maps"

	"github.com/etnz/folio"
)

// Func executes one tool.
type Func func(ctx context.Context, args folio.Args) (folio.Payload, error)

// Registry is the immutable dispatch table from tool name to Func.
type Registry struct {
	funcs map[folio.ToolName]Func
}

// NewRegistry returns the registry of the seven tools backed by p.
func NewRegistry(p Provider) *Registry {
	t := toolset{p}
	return &Registry{funcs: map[folio.ToolName]Func{
		folio.ToolSummary:      t.summary,
		folio.ToolPerformance:  t.performance,
		folio.ToolTransactions: t.transactions,
		folio.ToolAccounts:     t.accounts,
		folio.ToolMarketData:   t.marketData,
		folio.ToolAllocation:   t.allocation,
		folio.ToolRiskRules:    t.riskRules,
	}}
}

// RegistryOf returns a registry with the given funcs, copied.
func RegistryOf(funcs map[folio.ToolName]Func) *Registry {
	return &Registry{funcs: maps.Clone(funcs)}
}

// Lookup returns the Func registered for name.
func (r *Registry) Lookup(name folio.ToolName) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}
