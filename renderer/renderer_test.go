package renderer

import (
	"strings"
	"testing"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
)

func TestDashboardMarkdown(t *testing.T) {
	s := &finly.Snapshot{
		Date:         date.MustParse("2025-06-01"),
		BaseCurrency: "PLN",
		Rows: []finly.HoldingRow{
			{Asset: "PZU.WA", Category: "Stock", Currency: "PLN", Quantity: 100,
				AvgCostLocal: 40, PriceLocal: 50, ValueBase: 5000, ProfitBase: 1000, ProfitPct: 25},
		},
		Cash:        1500,
		TotalValue:  6500,
		TotalProfit: 1000,
	}

	out := DashboardMarkdown(s)

	for _, want := range []string{"# Portfolio on 2025-06-01", "PZU.WA", "25.00%", "Total value"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "degraded") {
		t.Error("fault note rendered without faults")
	}
}

func TestDashboardMarkdownFaults(t *testing.T) {
	s := &finly.Snapshot{
		Date:         date.MustParse("2025-06-01"),
		BaseCurrency: "PLN",
		Rows: []finly.HoldingRow{
			{Asset: "XYZ", Fault: &finly.Fault{Kind: finly.FaultTransient, Symbol: "XYZ"}},
		},
		Faults: []*finly.Fault{{Kind: finly.FaultTransient, Symbol: "XYZ"}},
	}

	out := DashboardMarkdown(s)
	if !strings.Contains(out, "transient") {
		t.Errorf("degraded row not flagged:\n%s", out)
	}
	if !strings.Contains(out, "1 lookup(s) degraded") {
		t.Errorf("fault note missing:\n%s", out)
	}
}

func TestBondsMarkdown(t *testing.T) {
	lots := []finly.BondLot{{
		Series:       "EDO0129",
		Type:         finly.FixedRate,
		PurchaseDate: date.MustParse("2024-01-01"),
		MaturityDate: date.MustParse("2029-01-01"),
		Quantity:     10,
		FaceValue:    100,
		AnnualRate:   5,
	}}
	accruals, totals := finly.AccrueAll(lots, date.MustParse("2024-07-01"))

	out := BondsMarkdown(lots, accruals, totals, "PLN")
	for _, want := range []string{"EDO0129", "182/1826", "Total value"} {
		if !strings.Contains(out, want) {
			t.Errorf("bonds report missing %q:\n%s", want, out)
		}
	}

	empty := BondsMarkdown(nil, nil, finly.BondTotals{}, "PLN")
	if !strings.Contains(empty, "No bond lots") {
		t.Errorf("empty report = %q", empty)
	}
}

func TestDividendsMarkdown(t *testing.T) {
	dividends := []finly.EnrichedDividend{{
		DividendRecord: finly.DividendRecord{
			Asset: "PZU.WA", ExDate: date.MustParse("2025-05-10"), PayDate: date.MustParse("2025-06-01"),
			Amount: 2.5, Currency: "PLN", Shares: 100, Status: finly.StatusSynced,
		},
		TotalNet: 202.5,
		YieldPct: 5.2,
		Upcoming: true,
	}}

	out := DividendsMarkdown(dividends)
	for _, want := range []string{"PZU.WA", "2025-05-10", "upcoming", "5.20%"} {
		if !strings.Contains(out, want) {
			t.Errorf("dividends report missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryMarkdownSampling(t *testing.T) {
	var series finly.ProfitSeries
	start := date.MustParse("2025-01-01")
	for i := 0; i < 10; i++ {
		series = append(series, finly.ProfitPoint{Date: start.Add(i), Profit: float64(i)})
	}

	out := HistoryMarkdown(series, "PLN", 7)

	if !strings.Contains(out, "2025-01-01") {
		t.Errorf("first day missing:\n%s", out)
	}
	if !strings.Contains(out, "2025-01-10") {
		t.Errorf("final day must always render:\n%s", out)
	}
	if strings.Contains(out, "2025-01-03") {
		t.Errorf("sampled-out day rendered:\n%s", out)
	}
}

func TestTrimQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0.5, "0.5"},
		{3.333333, "3.333333"},
		{100.10, "100.1"},
	}
	for _, test := range tests {
		if got := trimQuantity(test.in); got != test.want {
			t.Errorf("trimQuantity(%v) = %q, want %q", test.in, got, test.want)
		}
	}
}
