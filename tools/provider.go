// Package tools implements the read-only portfolio tools, their catalog and
// the orchestrator that executes a routing decision against them.
package tools

import (
	"context"

	"github.com/etnz/folio"
)

// Provider is a source of portfolio data behind the tools.
//
// Errors returned by a Provider become tool_execution_failed results unless
// they carry a *folio.ToolError.
type Provider interface {
	// Summary returns the holdings, optionally restricted to one account.
	Summary(ctx context.Context, accountID string) (*folio.Summary, error)
	// Performance returns the portfolio return over r.
	Performance(ctx context.Context, r folio.Range) (*folio.Performance, error)
	// Transactions returns the activities, most recent first.
	Transactions(ctx context.Context) ([]folio.Transaction, error)
	// Accounts returns the linked accounts.
	Accounts(ctx context.Context) ([]folio.Account, error)
	// Quotes returns the quotes found for the upper-cased symbols, keyed by
	// symbol. Symbols without a quote are simply absent.
	Quotes(ctx context.Context, symbols []string) (map[string]folio.Quote, error)
}
