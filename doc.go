// Package folio provides the values exchanged by the portfolio assistant:
// the closed set of read-only tools it can invoke, their typed results, the
// conversation history it reads and the verified response it produces.
//
// The assistant answers natural-language questions about an investment
// portfolio. It never gives trade advice and it never states a number that
// does not literally come from a tool result:
//   - Safety: trade-advice requests and prompt-injection attempts are refused
//     before anything else happens (package safety).
//   - Routing: a query is mapped to exactly one tool and its arguments
//     (package router), optionally by an automated model with a total
//     deterministic fallback.
//   - Execution: tools are dispatched through an immutable registry built
//     over a data provider (package tools).
//   - Verification: the rendered text is checked for grounding, freshness and
//     allocation sanity and scored into a confidence tier (packages renderer
//     and verify).
//
// Package agent sequences those stages into a single Ask call.
package folio
