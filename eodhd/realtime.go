package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/etnz/folio"
)

// currencies of the exchanges quoted here, USD for any other.
var currencies = map[string]string{
	"US":    "USD",
	"LSE":   "GBP",
	"XETRA": "EUR",
	"PA":    "EUR",
	"AS":    "EUR",
	"TO":    "CAD",
	"SW":    "CHF",
}

// realTime is one item of the real-time API response.
type realTime struct {
	Code    string `json:"code"`
	Close   value  `json:"close"`
	ChangeP value  `json:"change_p"`
}

// ticker returns the EODHD ticker of symbol: "SYM.EXCHANGE".
func (c *Client) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + c.exchange
}

// symbol is the inverse of ticker.
func (c *Client) symbol(ticker string) (symbol, exchange string) {
	ticker = strings.ToUpper(ticker)
	i := strings.LastIndex(ticker, ".")
	if i < 0 {
		return ticker, c.exchange
	}
	exchange = ticker[i+1:]
	if strings.EqualFold(exchange, c.exchange) {
		return ticker[:i], exchange
	}
	return ticker, exchange
}

// Quotes returns the latest quote of each symbol, keyed by upper-cased
// symbol. Symbols the API does not know, or reports without a price, are
// absent.
func (c *Client) Quotes(ctx context.Context, symbols []string) (map[string]folio.Quote, error) {
	res := make(map[string]folio.Quote)
	if len(symbols) == 0 {
		return res, nil
	}
	tickers := make([]string, len(symbols))
	for i, s := range symbols {
		tickers[i] = c.ticker(s)
	}

	// https://eodhd.com/api/real-time/AAPL.US?s=VTI.US,MSFT.US&fmt=json
	// a single ticker answers an object, several answer a list:
	// {"code":"AAPL.US","timestamp":1700000000,"close":184.0,"change_p":1.2, ...}
	addr := fmt.Sprintf("%s/api/real-time/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(tickers[0]), url.QueryEscape(c.apiKey))
	if len(tickers) > 1 {
		addr += "&s=" + url.QueryEscape(strings.Join(tickers[1:], ","))
	}
	var raw json.RawMessage
	if err := c.jwget(ctx, addr, &raw); err != nil {
		return nil, fmt.Errorf("real-time quotes: %w", err)
	}

	var items []realTime
	if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("real-time quotes: %w", err)
		}
	} else {
		var item realTime
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("real-time quotes: %w", err)
		}
		items = append(items, item)
	}

	for _, it := range items {
		if !it.Close.ok || it.Code == "" {
			continue
		}
		sym, exchange := c.symbol(it.Code)
		cur, ok := currencies[exchange]
		if !ok {
			cur = "USD"
		}
		res[sym] = folio.Quote{
			Symbol:    sym,
			Name:      c.name(ctx, sym),
			Price:     folio.M(it.Close.Decimal, cur),
			ChangePct: folio.Percent(it.ChangeP.InexactFloat64()),
		}
	}
	return res, nil
}
