package tools

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/etnz/folio"
	"github.com/etnz/folio/mock"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestOrchestrator_Compare(t *testing.T) {
	o := NewOrchestrator(NewRegistry(mock.New()))
	res, calls := o.Execute(context.Background(), folio.Route{Tool: folio.ToolCompare, Args: folio.Args{Range: folio.Ref("1y")}})

	if diff := cmp.Diff([]folio.ToolName{folio.ToolSummary, folio.ToolPerformance}, calls); diff != "" {
		t.Errorf("Execute() calls mismatch (-want +got):\n%s", diff)
	}
	if !res.Success {
		t.Fatalf("Execute() failed: %v", res.ErrorMessage())
	}
	c, ok := res.Data.(*folio.Comparison)
	if !ok {
		t.Fatalf("Execute() data = %T, want *folio.Comparison", res.Data)
	}
	if c.Performance.Range != "1y" || c.Summary.HoldingsCount != 3 {
		t.Errorf("Execute() comparison = %+v / %+v", c.Summary, c.Performance)
	}
}

func TestOrchestrator_CompareFailurePriority(t *testing.T) {
	summaryErr := folio.Errorf(folio.ToolExecutionFailed, "summary down")
	perfErr := folio.Errorf(folio.ToolExecutionFailed, "performance down")
	ok := mock.New()

	tests := []struct {
		name        string
		summary     error
		performance error
		want        string
	}{
		{"both fail", summaryErr, perfErr, "summary down"},
		{"performance fails", nil, perfErr, "performance down"},
		{"summary fails", summaryErr, nil, "summary down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var invoked atomic.Int32
			r := RegistryOf(map[folio.ToolName]Func{
				folio.ToolSummary: func(ctx context.Context, a folio.Args) (folio.Payload, error) {
					invoked.Add(1)
					if tt.summary != nil {
						return nil, tt.summary
					}
					return ok.Summary(ctx, a.AccountID)
				},
				folio.ToolPerformance: func(ctx context.Context, a folio.Args) (folio.Payload, error) {
					invoked.Add(1)
					if tt.performance != nil {
						return nil, tt.performance
					}
					return ok.Performance(ctx, folio.Range(a.RangeOrDefault()))
				},
			})
			res, calls := NewOrchestrator(r).Execute(context.Background(), folio.Route{Tool: folio.ToolCompare})
			if res.Success || res.ErrorMessage() != tt.want {
				t.Errorf("Execute() = %+v, want failure %q", res, tt.want)
			}
			if len(calls) != 2 || invoked.Load() != 2 {
				t.Errorf("Execute() calls = %v, invoked %d, want both", calls, invoked.Load())
			}
		})
	}
}

func TestOrchestrator_CompareInvalidRange(t *testing.T) {
	o := NewOrchestrator(NewRegistry(mock.New()))
	res, calls := o.Execute(context.Background(), folio.Route{Tool: folio.ToolCompare, Args: folio.Args{Range: folio.Ref("2w")}})
	if res.Success || res.Err.Code != folio.InvalidInput {
		t.Errorf("Execute() = %+v, want %s", res, folio.InvalidInput)
	}
	if len(calls) != 2 {
		t.Errorf("Execute() calls = %v, want both sub-calls", calls)
	}
}

func TestOrchestrator_UnknownTool(t *testing.T) {
	o := NewOrchestrator(NewRegistry(mock.New()))
	res, calls := o.Execute(context.Background(), folio.Route{Tool: "delete_portfolio"})
	if res.Success || res.Err.Code != folio.UnknownTool || res.Err.Message != "Unknown tool: delete_portfolio" {
		t.Errorf("Execute() = %+v", res)
	}
	if diff := cmp.Diff([]folio.ToolName{"delete_portfolio"}, calls); diff != "" {
		t.Errorf("Execute() calls mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_InvalidRangeNotInvoked(t *testing.T) {
	invoked := false
	r := RegistryOf(map[folio.ToolName]Func{
		folio.ToolPerformance: func(context.Context, folio.Args) (folio.Payload, error) {
			invoked = true
			return &folio.Performance{}, nil
		},
	})
	res, _ := NewOrchestrator(r).Execute(context.Background(), folio.Route{Tool: folio.ToolPerformance, Args: folio.Args{Range: folio.Ref("10y")}})
	if res.Success || res.Err.Code != folio.InvalidInput || res.Err.Message != "Unsupported range '10y'" {
		t.Errorf("Execute() = %+v", res)
	}
	if invoked {
		t.Error("performance tool invoked with an unsupported range")
	}
}

func TestOrchestrator_RecoversPanics(t *testing.T) {
	r := RegistryOf(map[folio.ToolName]Func{
		folio.ToolSummary: func(context.Context, folio.Args) (folio.Payload, error) {
			panic("index out of range")
		},
		folio.ToolAccounts: func(context.Context, folio.Args) (folio.Payload, error) {
			return nil, errors.New("timeout")
		},
		folio.ToolRiskRules: func(context.Context, folio.Args) (folio.Payload, error) {
			return nil, nil
		},
	})
	o := NewOrchestrator(r)
	for name, want := range map[folio.ToolName]string{
		folio.ToolSummary:   "index out of range",
		folio.ToolAccounts:  "timeout",
		folio.ToolRiskRules: "provider returned no data",
	} {
		res, _ := o.Execute(context.Background(), folio.Route{Tool: name})
		if res.Success || res.Err.Code != folio.ToolExecutionFailed || res.Err.Message != want {
			t.Errorf("Execute(%s) = %+v, want %q", name, res, want)
		}
	}
}

func TestOrchestrator_ScopesArgs(t *testing.T) {
	var got folio.Args
	r := RegistryOf(map[folio.ToolName]Func{
		folio.ToolTransactions: func(_ context.Context, a folio.Args) (folio.Payload, error) {
			got = a
			return &folio.Transactions{}, nil
		},
	})
	args := folio.Args{Symbol: "AAPL", Limit: folio.Ref(2), Range: folio.Ref("1y"), Symbols: []string{"X"}, AccountID: "acc-1"}
	NewOrchestrator(r).Execute(context.Background(), folio.Route{Tool: folio.ToolTransactions, Args: args})
	if diff := cmp.Diff(folio.Args{Symbol: "AAPL", Limit: folio.Ref(2)}, got); diff != "" {
		t.Errorf("transactions args mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_LogsArgs(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	o := NewOrchestrator(NewRegistry(mock.New()))
	o.Execute(ctx, folio.Route{Tool: folio.ToolTransactions, Args: folio.Args{Symbol: "Bearer abc.def", Limit: folio.Ref(0)}})

	got := buf.String()
	for _, want := range []string{`"event":"tool_executed"`, `"limit":0`, `"symbol":"Bearer [REDACTED]"`} {
		if !strings.Contains(got, want) {
			t.Errorf("tool_executed log = %s, want it to contain %s", got, want)
		}
	}
	if strings.Contains(got, "abc.def") {
		t.Errorf("tool_executed log = %s, leaks the token", got)
	}
}
