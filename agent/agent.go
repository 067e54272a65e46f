// Package agent answers portfolio questions.
//
// Each query goes through a fixed sequence of states: the safety check
// (INIT) may answer right away with a refusal, otherwise the query is
// sanitized, routed to a tool, executed, and the rendered answer is verified
// and scored. No state is revisited and nothing is retried.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/router"
	"github.com/etnz/folio/safety"
	"github.com/etnz/folio/telemetry"
	"github.com/etnz/folio/tools"
	"github.com/etnz/folio/verify"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// Routing modes.
const (
	Deterministic = "deterministic"
	Automated     = "automated"
)

// Confidence of a free-form answer of the automated router.
const freeFormConfidence = 0.6

// Agent is the assistant pipeline. It holds no per-request state and is safe
// for concurrent use.
type Agent struct {
	orchestrator *tools.Orchestrator
	automated    router.Automated
	policy       string
	logger       zerolog.Logger
	now          func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithAutomated tries r before the deterministic router. policy is the
// system text given to r.
func WithAutomated(r router.Automated, policy string) Option {
	return func(a *Agent) {
		a.automated = r
		a.policy = policy
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithClock sets the clock used to check data freshness.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// New returns an Agent executing tools with o.
func New(o *tools.Orchestrator, opts ...Option) *Agent {
	a := &Agent{
		orchestrator: o,
		logger:       zerolog.Nop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Info().Str("event", "agent_mode").Str("mode", a.Mode()).Msg("agent ready")
	return a
}

// Mode returns Automated when an automated router is configured,
// Deterministic otherwise.
func (a *Agent) Mode() string {
	if a.automated != nil {
		return Automated
	}
	return Deterministic
}

// Ask answers query given the prior turns of the session. It always returns
// a complete response: failures are reported in the answer, never as errors.
func (a *Agent) Ask(ctx context.Context, query string, history folio.History) folio.Response {
	start := time.Now()
	ctx = a.withLogger(ctx)
	logger := zerolog.Ctx(ctx)

	// INIT
	if resp, refused := a.screen(ctx, query); refused {
		telemetry.RecordRequest("refused", start)
		telemetry.RecordConfidence(string(resp.Verification.ConfidenceLevel))
		return resp
	}

	// SANITIZE
	_, span := telemetry.StartSpan(ctx, "agent.sanitize")
	clean := safety.Sanitize(query)
	span.SetAttributes(attribute.Int("removed", len(query)-len(clean)))
	span.End()

	// ROUTE
	d := a.route(ctx, clean, history)
	if d.freeForm {
		resp := freeForm(d.text, clean)
		logger.Info().
			Str("event", "response_verified").
			Str("mode", "freeform").
			Float64("confidence", resp.Confidence).
			Msg("free-form answer")
		telemetry.RecordRequest("freeform", start)
		telemetry.RecordConfidence(string(resp.Verification.ConfidenceLevel))
		return resp
	}

	// EXECUTE
	res, calls := a.execute(ctx, d.route)

	// VERIFY
	resp := a.verify(ctx, clean, d.route.Tool, res)
	resp.ToolCalls = calls
	telemetry.RecordRequest("answered", start)
	telemetry.RecordConfidence(string(resp.Verification.ConfidenceLevel))
	return resp
}

// withLogger returns ctx with a request scoped logger, unless the caller
// already attached one.
func (a *Agent) withLogger(ctx context.Context) context.Context {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return ctx
	}
	return a.logger.With().Str("request_id", telemetry.NewRequestID()).Logger().WithContext(ctx)
}

// screen runs the safety classification on the raw query.
func (a *Agent) screen(ctx context.Context, query string) (folio.Response, bool) {
	ctx, span := telemetry.StartSpan(ctx, "agent.init")
	defer span.End()

	verdict := safety.Classify(query)
	span.SetAttributes(attribute.String("verdict", verdict.String()))
	resp, refused := safety.Refusal(verdict)
	if refused {
		zerolog.Ctx(ctx).Info().
			Str("event", "query_refused").
			Str("reason", verdict.String()).
			Msg("query refused")
	}
	return resp, refused
}

// decision is the outcome of the ROUTE state: either a route or a free-form
// text.
type decision struct {
	route    folio.Route
	text     string
	freeForm bool
}

// route tries the automated router first, if any, and falls back to the
// deterministic one on any failure.
func (a *Agent) route(ctx context.Context, query string, history folio.History) decision {
	ctx, span := telemetry.StartSpan(ctx, "agent.route")
	defer span.End()
	logger := zerolog.Ctx(ctx)

	if a.automated != nil {
		out, err := routeSafely(ctx, a.automated, router.NewRequest(a.policy, query, history))
		switch {
		case err != nil:
			span.RecordError(err)
			logger.Warn().
				Str("event", "automated_router_failed").
				Str("error", telemetry.Redact(err.Error())).
				Msg("falling back to deterministic routing")
		case out.Route != nil:
			span.SetAttributes(attribute.String("source", Automated), attribute.String("tool", string(out.Route.Tool)))
			logger.Info().
				Str("event", "route_selected").
				Str("source", Automated).
				Str("tool", string(out.Route.Tool)).
				Msg("route selected")
			return decision{route: *out.Route}
		case out.Text != "":
			span.SetAttributes(attribute.String("source", "freeform"))
			return decision{text: out.Text, freeForm: true}
		default:
			logger.Warn().
				Str("event", "automated_router_failed").
				Str("error", "empty outcome").
				Msg("falling back to deterministic routing")
		}
	}

	r := router.Deterministic(query, history)
	span.SetAttributes(attribute.String("source", Deterministic), attribute.String("tool", string(r.Tool)))
	logger.Info().
		Str("event", "route_selected").
		Str("source", Deterministic).
		Str("tool", string(r.Tool)).
		Msg("route selected")
	return decision{route: r}
}

// routeSafely calls r, turning a panic into an error.
func routeSafely(ctx context.Context, r router.Automated, req router.Request) (out router.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = router.Outcome{}, fmt.Errorf("automated router panicked: %v", p)
		}
	}()
	return r.Route(ctx, req)
}

func (a *Agent) execute(ctx context.Context, route folio.Route) (folio.ToolResult, []folio.ToolName) {
	ctx, span := telemetry.StartSpan(ctx, "agent.execute", attribute.String("tool", string(route.Tool)))
	defer span.End()

	res, calls := a.orchestrator.Execute(ctx, route)
	if !res.Success && res.Err != nil {
		telemetry.RecordError(span, res.Err)
	}
	return res, calls
}

// verify renders the result and scores the answer.
func (a *Agent) verify(ctx context.Context, query string, tool folio.ToolName, res folio.ToolResult) folio.Response {
	ctx, span := telemetry.StartSpan(ctx, "agent.verify", attribute.String("tool", string(tool)))
	defer span.End()

	text, grounded := renderer.Render(res)
	final, v, confidence := verify.Verify(verify.Input{
		Tool:          tool,
		Result:        res,
		Text:          text,
		Grounded:      grounded,
		NoTradeAdvice: !safety.IsTradeAdvice(query),
		Now:           a.now(),
	})
	span.SetAttributes(
		attribute.Float64("confidence", confidence),
		attribute.String("confidence_level", string(v.ConfidenceLevel)),
		attribute.Bool("stale", v.StaleDataWarning),
	)
	zerolog.Ctx(ctx).Info().
		Str("event", "response_verified").
		Str("tool", string(tool)).
		Bool("grounded", grounded).
		Bool("stale", v.StaleDataWarning).
		Strs("warnings", v.OutputWarnings).
		Float64("confidence", confidence).
		Msg("response verified")

	return folio.Response{
		Response:     final,
		Verification: v,
		Confidence:   confidence,
		SelectedTool: tool,
	}
}

// freeForm is the response to a free-form answer of the automated router.
func freeForm(text, query string) folio.Response {
	final := folio.WithDisclaimer(text)
	return folio.Response{
		Response:  final,
		ToolCalls: []folio.ToolName{},
		Verification: folio.Verification{
			DisclaimerPresent: folio.HasDisclaimer(final),
			NoTradeAdvice:     !safety.IsTradeAdvice(query),
			ConfidenceLevel:   folio.Medium,
		},
		Confidence:   freeFormConfidence,
		SelectedTool: folio.ToolSummary,
	}
}
