package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/etnz/folio/telemetry"
	"github.com/shopspring/decimal"
)

// jwget performs an HTTP GET request to addr and unmarshals the JSON
// response body into data.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return c.redact(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return c.redact(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("decode %v: %w", resp.Request.URL.Path, err)
	}
	return nil
}

// redact removes the api key from err, transport errors quote the URL.
func (c *Client) redact(err error) error {
	if c.apiKey == "" || !strings.Contains(err.Error(), c.apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, telemetry.Redacted))
}

// value is a number the API may report as "NA".
type value struct {
	decimal.Decimal
	ok bool
}

func (v *value) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		*v = value{}
		return nil
	}
	*v = value{d, true}
	return nil
}
