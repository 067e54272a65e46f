// Package telemetry holds the logging, tracing and metrics setup shared by
// the assistant and its hosts.
package telemetry

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets the global level and logger and returns it.
//
// Unknown levels fall back to info. When pretty is true the output is a
// human readable console format instead of JSON lines.
func InitLogger(level string, pretty bool) zerolog.Logger {
	return initLogger(os.Stderr, level, pretty)
}

func initLogger(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// NewRequestID returns a fresh identifier to correlate the log lines of one
// request.
func NewRequestID() string {
	return uuid.New().String()
}

// Redacted replaces secrets.
const Redacted = "[REDACTED]"

var bearer = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._\-]+`)

// sensitive field names, compared lower-cased.
var sensitive = map[string]bool{
	"authorization":    true,
	"access_token":     true,
	"ghostfolio_token": true,
	"authtoken":        true,
	"token":            true,
	"api_key":          true,
	"api_token":        true,
}

// Redact masks bearer tokens in s.
func Redact(s string) string {
	return bearer.ReplaceAllString(s, "Bearer "+Redacted)
}

// RedactValue masks v when field names a secret, and bearer tokens in any
// string nested in v.
func RedactValue(field string, v any) any {
	if sensitive[strings.ToLower(field)] {
		return Redacted
	}
	switch x := v.(type) {
	case string:
		return Redact(x)
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, val := range x {
			res[k] = RedactValue(k, val)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, val := range x {
			res[i] = RedactValue("", val)
		}
		return res
	default:
		return v
	}
}
