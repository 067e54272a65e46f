package renderer

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/etnz/folio"
)

var fixGolden = flag.Bool("fix-golden", false, "if true, update failing golden .md files with the received output")

func TestFixGoldenIsOff(t *testing.T) {
	if *fixGolden {
		t.Fatal("-fix-golden is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

func TestRender_Golden(t *testing.T) {
	testCases := []struct {
		name     string
		dataType folio.Payload
	}{
		{"summary", &folio.Summary{}},
		{"transactions", &folio.Transactions{}},
		{"accounts", &folio.Accounts{}},
		{"market_data", &folio.MarketData{}},
		{"allocation", &folio.Allocation{}},
		{"allocation_none", &folio.Allocation{}},
		{"risk", &folio.RiskReport{}},
		{"risk_none", &folio.RiskReport{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			structFile := "testdata/" + tc.name + ".json"
			goldenFile := "testdata/" + tc.name + ".md"

			data, err := os.ReadFile(structFile)
			if err != nil {
				t.Fatalf("failed to read %s: %v", structFile, err)
			}
			if err := json.Unmarshal(data, tc.dataType); err != nil {
				t.Fatalf("failed to unmarshal %s: %v", structFile, err)
			}

			got, grounded := Render(folio.Ok(tc.dataType))
			if !grounded {
				t.Errorf("Render() not grounded")
			}

			want, err := os.ReadFile(goldenFile)
			if err != nil {
				t.Fatalf("failed to read %s: %v", goldenFile, err)
			}
			if got != strings.TrimSuffix(string(want), "\n") {
				if *fixGolden {
					if err := os.WriteFile(goldenFile, []byte(got+"\n"), 0644); err != nil {
						t.Fatalf("failed to fix %s: %v", goldenFile, err)
					}
					return
				}
				t.Errorf("Render() mismatch for %s:\ngot:\n%s\n\nwant:\n%s", goldenFile, got, want)
			}
		})
	}
}

func TestRender_Performance(t *testing.T) {
	p := &folio.Performance{Range: "ytd", ReturnPct: 9.8, AbsoluteGain: folio.M(4900, "USD")}
	got, grounded := Render(folio.Ok(p))
	want := "Your YTD portfolio return is 9.80% (USD 4,900.00 absolute).\n\n" + folio.Disclaimer
	if got != want || !grounded {
		t.Errorf("Render() = %q, %v, want %q, true", got, grounded, want)
	}
}

func TestRender_Comparison(t *testing.T) {
	c := &folio.Comparison{
		Summary:     &folio.Summary{TotalValue: folio.M(50000, "USD"), HoldingsCount: 3},
		Performance: &folio.Performance{Range: "1y", ReturnPct: 15.2, AbsoluteGain: folio.M(7600, "USD")},
	}
	got, grounded := Render(folio.Ok(c))
	want := "Compared to your total portfolio value of USD 50,000.00 across 3 holdings, " +
		"your 1Y return is 15.20% (USD 7,600.00 absolute).\n\n" + folio.Disclaimer
	if got != want || !grounded {
		t.Errorf("Render() = %q, %v, want %q, true", got, grounded, want)
	}
	if !strings.Contains(strings.ToLower(got), "compared to your total portfolio value") {
		t.Errorf("Render() = %q does not mention the comparison", got)
	}

	if _, grounded := Render(folio.Ok(&folio.Comparison{})); grounded {
		t.Error("Render() of an incomplete comparison is grounded")
	}
}

func TestRender_Failure(t *testing.T) {
	got, grounded := Render(folio.Fail(folio.Errorf(folio.UnknownTool, "Unknown tool: foo")))
	want := "I could not complete that request due to a tool error: Unknown tool: foo\n\n" + folio.Disclaimer
	if got != want || grounded {
		t.Errorf("Render() = %q, %v, want %q, false", got, grounded, want)
	}
}

func TestRender_Empty(t *testing.T) {
	tests := []struct {
		data folio.Payload
		want string
	}{
		{&folio.Transactions{}, "I did not find matching recent transactions."},
		{&folio.Accounts{}, "No accounts found."},
		{&folio.MarketData{}, "No market data found for the requested symbols."},
		{&folio.Summary{TotalValue: folio.M(0, "USD")}, "Your portfolio value is USD 0.00 across 0 holdings."},
	}
	for _, tt := range tests {
		got, grounded := Render(folio.Ok(tt.data))
		if want := tt.want + "\n\n" + folio.Disclaimer; got != want || !grounded {
			t.Errorf("Render(%T) = %q, %v, want %q, true", tt.data, got, grounded, want)
		}
	}
}

func TestRender_Raw(t *testing.T) {
	got, grounded := Render(folio.Ok(folio.Raw{"status": "ok"}))
	want := "Here is the data I retrieved:\n{\n  \"status\": \"ok\"\n}\n\n" + folio.Disclaimer
	if got != want || !grounded {
		t.Errorf("Render() = %q, %v, want %q, true", got, grounded, want)
	}
}

func TestRender_TopHoldings(t *testing.T) {
	s := &folio.Summary{TotalValue: folio.M(0, "USD")}
	for i := 1; i <= 12; i++ {
		s.Holdings = append(s.Holdings, folio.Holding{Symbol: "S" + string(rune('A'+i)), Value: folio.M(i, "USD")})
		s.TotalValue = s.TotalValue.Add(folio.M(i, "USD"))
	}
	s.HoldingsCount = len(s.Holdings)
	got, grounded := Render(folio.Ok(s))
	if !grounded {
		t.Errorf("Render() not grounded: %q", got)
	}
	if n := strings.Count(got, "\n  - "); n != MaxHoldings {
		t.Errorf("Render() lists %d holdings, want %d", n, MaxHoldings)
	}
	if !strings.Contains(got, "Top holdings:\n  - SM (): USD 12.00") {
		t.Errorf("Render() does not list the largest holding first: %q", got)
	}
}

func TestRender_DisclaimerOnce(t *testing.T) {
	got, _ := Render(folio.Ok(folio.Raw{"note": folio.Disclaimer}))
	if n := strings.Count(got, folio.Disclaimer); n != 1 {
		t.Errorf("Render() contains the disclaimer %d times, want 1", n)
	}
}
