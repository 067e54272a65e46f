// Package server exposes the assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/session"
	"github.com/etnz/folio/telemetry"
	"github.com/rs/zerolog"
)

// DefaultSession is the session of requests that name none.
const DefaultSession = "default"

// Asker answers a query given the session history.
type Asker interface {
	Ask(ctx context.Context, query string, history folio.History) folio.Response
}

// Server serves the chat API. Each data source has its own Asker.
type Server struct {
	askers        map[string]Asker
	defaultSource string
	store         session.Store
	logger        zerolog.Logger
}

// New returns a Server answering with askers, keyed by data source, and
// keeping histories in store.
func New(askers map[string]Asker, defaultSource string, store session.Store, logger zerolog.Logger) *Server {
	return &Server{
		askers:        askers,
		defaultSource: defaultSource,
		store:         store,
		logger:        logger,
	}
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.Handle("GET /metrics", telemetry.MetricsHandler())
	return s.logRequests(mux)
}

// Run serves the API on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("api server listening")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests attaches a request scoped logger to the context and logs one
// line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = telemetry.NewRequestID()
		}
		logger := s.logger.With().Str("request_id", id).Logger()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		logger.Info().
			Str("event", "http_request").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message    string `json:"message"`
	SessionID  string `json:"session_id"`
	DataSource string `json:"data_source,omitempty"`
}

// ChatResponse is the answer of POST /chat.
type ChatResponse struct {
	SessionID    string             `json:"session_id"`
	Response     string             `json:"response"`
	ToolCalls    []folio.ToolName   `json:"tool_calls"`
	Confidence   float64            `json:"confidence"`
	Verification folio.Verification `json:"verification"`
}

// POST /chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid body: %v", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusUnprocessableEntity, "message must not be empty")
		return
	}
	if req.SessionID == "" {
		req.SessionID = DefaultSession
	}
	source := req.DataSource
	if source == "" {
		source = s.defaultSource
	}
	asker, ok := s.askers[source]
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("data source %q is not available", source))
		return
	}

	history, err := s.store.History(ctx, req.SessionID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("session_id", req.SessionID).Msg("read session")
		writeError(w, http.StatusInternalServerError, "cannot read the session history")
		return
	}

	resp := asker.Ask(ctx, req.Message, history)

	if err := s.store.Append(ctx, req.SessionID,
		folio.Turn{Role: folio.User, Content: req.Message},
		folio.Turn{Role: folio.Assistant, Content: resp.Response, Tool: resp.SelectedTool},
	); err != nil {
		// the answer is still worth returning
		zerolog.Ctx(ctx).Error().Err(err).Str("session_id", req.SessionID).Msg("append session")
	}

	if resp.ToolCalls == nil {
		resp.ToolCalls = []folio.ToolName{}
	}
	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID:    req.SessionID,
		Response:     resp.Response,
		ToolCalls:    resp.ToolCalls,
		Confidence:   resp.Confidence,
		Verification: resp.Verification,
	})
}
