package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/telemetry"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Orchestrator executes routing decisions against a Registry. It is safe for
// concurrent use.
type Orchestrator struct {
	registry *Registry
}

// NewOrchestrator returns an Orchestrator over r.
func NewOrchestrator(r *Registry) *Orchestrator {
	return &Orchestrator{registry: r}
}

// Execute runs the route and returns its result together with the tools
// invoked, in invocation order. It never panics nor returns an error: every
// failure is a failed ToolResult.
//
// ToolCompare runs ToolSummary and ToolPerformance concurrently. Both are
// always attempted and both are listed; the summary failure wins over the
// performance one.
func (o *Orchestrator) Execute(ctx context.Context, route folio.Route) (folio.ToolResult, []folio.ToolName) {
	if route.Tool != folio.ToolCompare {
		return o.invoke(ctx, route.Tool, route.Args), []folio.ToolName{route.Tool}
	}

	var summary, perf folio.ToolResult
	var g errgroup.Group
	g.Go(func() error {
		summary = o.invoke(ctx, folio.ToolSummary, route.Args)
		return nil
	})
	g.Go(func() error {
		perf = o.invoke(ctx, folio.ToolPerformance, route.Args)
		return nil
	})
	_ = g.Wait() // sub-calls report failures as results

	calls := []folio.ToolName{folio.ToolSummary, folio.ToolPerformance}
	switch {
	case !summary.Success:
		return summary, calls
	case !perf.Success:
		return perf, calls
	}
	s, ok1 := summary.Data.(*folio.Summary)
	p, ok2 := perf.Data.(*folio.Performance)
	if !ok1 || !ok2 {
		return folio.Fail(folio.Errorf(folio.ToolExecutionFailed, "unexpected data %T and %T", summary.Data, perf.Data)), calls
	}
	return folio.Ok(&folio.Comparison{Summary: s, Performance: p}), calls
}

// invoke runs one plain tool with the arguments of its parameter set.
func (o *Orchestrator) invoke(ctx context.Context, name folio.ToolName, args folio.Args) (res folio.ToolResult) {
	log := zerolog.Ctx(ctx)
	start := time.Now()
	defer func() {
		status := "success"
		if !res.Success {
			status = string(res.Err.Code)
		}
		telemetry.RecordToolCall(string(name), status)
		log.Info().
			Str("event", "tool_executed").
			Str("tool", string(name)).
			Str("status", status).
			Interface("args", loggedArgs(args)).
			Dur("duration", time.Since(start)).
			Msg("tool executed")
	}()

	f, ok := o.registry.Lookup(name)
	if !ok {
		return folio.Fail(folio.Errorf(folio.UnknownTool, "Unknown tool: %s", name))
	}
	args = scope(name, args)
	if name == folio.ToolPerformance {
		if _, err := folio.ParseRange(args.RangeOrDefault()); err != nil {
			return folio.Fail(folio.AsToolError(err))
		}
	}
	return call(ctx, f, args)
}

// call recovers panics of f into failed results.
func call(ctx context.Context, f Func, args folio.Args) (res folio.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			res = folio.Fail(folio.Errorf(folio.ToolExecutionFailed, "%v", r))
		}
	}()
	p, err := f(ctx, args)
	if err != nil {
		return folio.Fail(folio.AsToolError(err))
	}
	if p == nil {
		return folio.Fail(folio.Errorf(folio.ToolExecutionFailed, "%v", errNoData))
	}
	return folio.Ok(p)
}

// loggedArgs returns args as logged: set fields only, secrets masked.
func loggedArgs(args folio.Args) any {
	var m map[string]any
	b, err := json.Marshal(args)
	if err != nil || json.Unmarshal(b, &m) != nil {
		return nil
	}
	return telemetry.RedactValue("", m)
}

// scope keeps only the arguments declared by the tool parameters.
func scope(name folio.ToolName, a folio.Args) folio.Args {
	spec, ok := SpecOf(name)
	if !ok {
		return a
	}
	var s folio.Args
	for _, p := range spec.Params {
		switch p.Name {
		case "account_id":
			s.AccountID = a.AccountID
		case "query_range":
			s.Range = a.Range
		case "symbol":
			s.Symbol = a.Symbol
		case "tx_type":
			s.TxType = a.TxType
		case "limit":
			s.Limit = a.Limit
		case "symbols":
			s.Symbols = a.Symbols
		}
	}
	return s
}
