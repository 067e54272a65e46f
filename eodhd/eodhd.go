// Package eodhd fetches market quotes from the EOD Historical Data API.
package eodhd

import (
	"net/http"
	"sync"
	"time"
)

// DefaultBaseURL of the EODHD API.
const DefaultBaseURL = "https://eodhd.com"

// Client queries the EODHD API. It is safe for concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	exchange string
	http     *http.Client

	mu    sync.Mutex
	names map[string]string // symbol -> security name
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithExchange sets the EODHD exchange code of plain symbols ("US" by
// default).
func WithExchange(code string) Option { return func(c *Client) { c.exchange = code } }

// New returns a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		exchange: "US",
		http:     &http.Client{Timeout: 10 * time.Second},
		names:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
