// Package ghostfolio reads portfolio data from a Ghostfolio instance.
package ghostfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/folio/telemetry"
	"golang.org/x/time/rate"
)

// Defaults of a Client.
const (
	DefaultBaseURL   = "https://ghostfol.io"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client is a minimal Ghostfolio API client returning loosely typed JSON.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit limits requests to rps per second. A non positive rps
// disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// WithTransport sets the transport of the underlying http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// New returns a Client for the instance at baseURL, authenticated with the
// bearer token when it is not empty.
func New(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(DefaultRateLimit, DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET on path and decodes the JSON answer.
func (c *Client) get(ctx context.Context, path string, query url.Values) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	addr := c.baseURL + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, c.redact(fmt.Errorf("GET %s: %w", path, err))
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.redact(fmt.Errorf("GET %s: %w", path, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	var v any
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return v, nil
}

// redact masks the token in err.
func (c *Client) redact(err error) error {
	msg := telemetry.Redact(err.Error())
	if c.token != "" {
		msg = strings.ReplaceAll(msg, c.token, telemetry.Redacted)
	}
	if msg == err.Error() {
		return err
	}
	return errors.New(msg)
}

// Holdings returns the holdings, optionally restricted to one account.
func (c *Client) Holdings(ctx context.Context, accountID string) (any, error) {
	var q url.Values
	if accountID != "" {
		q = url.Values{"accountId": {accountID}}
	}
	return c.get(ctx, "/api/v2/portfolio/holdings", q)
}

// Performance returns the portfolio performance over a range ("1d", "ytd",
// "1y", "5y", "max").
func (c *Client) Performance(ctx context.Context, r string) (any, error) {
	return c.get(ctx, "/api/v2/portfolio/performance", url.Values{"range": {r}})
}

// Orders returns the activities.
func (c *Client) Orders(ctx context.Context) (any, error) {
	return c.get(ctx, "/api/v1/order", nil)
}

// Accounts returns the accounts.
func (c *Client) Accounts(ctx context.Context) (any, error) {
	return c.get(ctx, "/api/v1/account", nil)
}
