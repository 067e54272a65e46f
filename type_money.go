package folio

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// amountFormatter renders minor units with a thousands separator and two
// decimals, without any currency grapheme: 2125000 -> "21,250.00".
var amountFormatter = money.NewFormatter(2, ".", ",", "", "1")

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of value in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Currency returns the money's ISO currency code.
func (m Money) Currency() string { return m.cur }

// Decimal returns the exact amount in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) Sub(n Money) Money           { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Add(n Money) Money           { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) WithCurrency(c string) Money { return Money{value: m.value, cur: c} }

// Ratio returns m/total, or 0 when total is zero.
func (m Money) Ratio(total Money) float64 {
	if total.value.IsZero() {
		return 0
	}
	return m.value.Div(total.value).InexactFloat64()
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	return a.cur
}

// Amount returns the value rounded to cents with thousands separators, "21,250.00".
func (m Money) Amount() string {
	cents := m.value.Round(2).Shift(2).IntPart()
	return amountFormatter.Format(cents)
}

// String returns the currency code followed by the amount, "USD 21,250.00".
//
// This exact form is what grounding checks look for in rendered text.
func (m Money) String() string {
	return m.cur + " " + m.Amount()
}

type moneyJSON struct {
	Currency string          `json:"currency,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Currency string      `json:"currency,omitempty"`
		Amount   json.Number `json:"amount"`
	}{m.cur, json.Number(m.value.String())})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.value, m.cur = v.Amount, v.Currency
	return nil
}
