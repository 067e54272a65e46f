package folio

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(50000.0, "USD"), "USD 50,000.00"},
		{M(21250, "USD"), "USD 21,250.00"},
		{M(5420.5, "USD"), "USD 5,420.50"},
		{M(0.3, "EUR"), "EUR 0.30"},
		{M(1234567.891, "USD"), "USD 1,234,567.89"},
		{M(-4900.0, "USD"), "USD -4,900.00"},
		{M(150, "USD"), "USD 150.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Money.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoney_Add(t *testing.T) {
	got := M(0, "").Add(M(21250, "USD")).Add(M(16250, "USD"))
	if want := M(37500, "USD"); !got.Equal(want) {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestMoney_Ratio(t *testing.T) {
	if got := M(25, "USD").Ratio(M(100, "USD")); got != 0.25 {
		t.Errorf("Ratio() = %v, want 0.25", got)
	}
	if got := M(25, "USD").Ratio(M(0, "USD")); got != 0 {
		t.Errorf("Ratio() on zero total = %v, want 0", got)
	}
}

func TestMoney_JSON(t *testing.T) {
	m := M(184.5, "USD")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"currency":"USD","amount":184.5}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
	var back Money
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Equal(m) {
		t.Errorf("Unmarshal() = %v, want %v", back, m)
	}
}

func TestPercent(t *testing.T) {
	p := Percent(9.8)
	if got := p.String(); got != "9.80%" {
		t.Errorf("String() = %q, want %q", got, "9.80%")
	}
	if got := Percent(42.5).Short(); got != "42.5%" {
		t.Errorf("Short() = %q, want %q", got, "42.5%")
	}
	if got := Percent(-0.3).SignedShort(); got != "-0.3%" {
		t.Errorf("SignedShort() = %q, want %q", got, "-0.3%")
	}
	if got := Percent(1.2).SignedShort(); got != "+1.2%" {
		t.Errorf("SignedShort() = %q, want %q", got, "+1.2%")
	}
}
