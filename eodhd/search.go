package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Country  string `json:"Country"`
	Currency string `json:"Currency"`
	ISIN     string `json:"ISIN"`
}

// Search searches for securities matching term.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/api/search/%s?api_token=%s&fmt=json", c.baseURL, url.PathEscape(term), url.QueryEscape(c.apiKey))

	var results []SearchResult
	if err := c.jwget(ctx, addr, &results); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return results, nil
}

// name returns the security name of symbol on the client exchange, the
// symbol itself when the search does not find it. Names are cached.
func (c *Client) name(ctx context.Context, symbol string) string {
	c.mu.Lock()
	n, ok := c.names[symbol]
	c.mu.Unlock()
	if ok {
		return n
	}

	n = symbol
	results, err := c.Search(ctx, symbol)
	if err != nil {
		// not cached, a later call may succeed
		return n
	}
	for _, r := range results {
		if strings.EqualFold(r.Code, symbol) && strings.EqualFold(r.Exchange, c.exchange) {
			n = r.Name
			break
		}
	}
	c.mu.Lock()
	c.names[symbol] = n
	c.mu.Unlock()
	return n
}
