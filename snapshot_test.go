package finly

import (
	"errors"
	"math"
	"testing"

	"github.com/aroods/finly/date"
)

func TestBuildSnapshot(t *testing.T) {
	txs := []Transaction{
		tx(1, "2024-01-01", "XYZ", Buy, 10, 100),
	}
	provider := &stubProvider{quotes: map[string]Quote{
		"XYZ": {Price: 120, Currency: "PLN"},
	}}
	gw := NewGateway(provider, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(txs, 500, nil, gw)

	if len(snapshot.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(snapshot.Rows))
	}
	row := snapshot.Rows[0]
	if row.ValueBase != 1200 {
		t.Errorf("ValueBase = %v, want 1200", row.ValueBase)
	}
	if row.ProfitBase != 200 {
		t.Errorf("ProfitBase = %v, want 200", row.ProfitBase)
	}
	if math.Abs(row.ProfitPct-20) > 1e-9 {
		t.Errorf("ProfitPct = %v, want 20", row.ProfitPct)
	}
	if snapshot.TotalValue != 1700 {
		t.Errorf("TotalValue = %v, want positions 1200 + cash 500", snapshot.TotalValue)
	}
	if snapshot.TotalProfit != 200 {
		t.Errorf("TotalProfit = %v, want 200", snapshot.TotalProfit)
	}
}

func TestBuildSnapshotFXConversion(t *testing.T) {
	txs := []Transaction{
		{ID: 1, Date: date.MustParse("2024-01-01"), Asset: "ACME", Category: "Stock",
			Side: Buy, Quantity: 10, Price: 100, Currency: "USD"},
	}
	provider := &stubProvider{
		quotes: map[string]Quote{"ACME": {Price: 110, Currency: "USD"}},
		rates:  map[string]float64{"USDPLN": 4.0},
	}
	gw := NewGateway(provider, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(txs, 0, nil, gw)
	row := snapshot.Rows[0]

	if row.ValueBase != 4400 {
		t.Errorf("ValueBase = %v, want 110*10*4", row.ValueBase)
	}
	if row.CostBase != 4000 {
		t.Errorf("CostBase = %v, want 1000*4", row.CostBase)
	}
	if row.PriceBase != 440 {
		t.Errorf("PriceBase = %v, want 440", row.PriceBase)
	}
}

func TestBuildSnapshotMisquoteHeuristic(t *testing.T) {
	// Provider reports 12050 against an average cost of 120: treated as a
	// minor-unit misquote and rescaled.
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 120)}
	provider := &stubProvider{quotes: map[string]Quote{
		"XYZ": {Price: 12050, Currency: "PLN"},
	}}
	gw := NewGateway(provider, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(txs, 0, nil, gw)
	if got := snapshot.Rows[0].PriceLocal; got != 120.50 {
		t.Errorf("PriceLocal = %v, want rescaled 120.50", got)
	}
}

func TestBuildSnapshotDegradedRow(t *testing.T) {
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}
	provider := &stubProvider{err: errors.New("unreachable")}
	gw := NewGateway(provider, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(txs, 0, nil, gw)

	row := snapshot.Rows[0]
	if row.Fault == nil {
		t.Fatal("degraded row carries no fault")
	}
	if row.ValueBase != 0 {
		t.Errorf("ValueBase = %v, want 0 on degraded price", row.ValueBase)
	}
	if len(snapshot.Faults) == 0 {
		t.Error("snapshot collects no faults")
	}
	// Degraded quote has no currency, so the position currency wins.
	if row.Currency != "PLN" {
		t.Errorf("Currency = %q, want position currency PLN", row.Currency)
	}
}

func TestBuildSnapshotBonds(t *testing.T) {
	lots := []BondLot{fixedLot()}
	gw := NewGateway(&stubProvider{}, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(nil, 0, lots, gw)

	_, wantTotals := AccrueAll(lots, snapshot.Date)
	if snapshot.Bonds != wantTotals {
		t.Errorf("Bonds = %+v, want %+v", snapshot.Bonds, wantTotals)
	}
	if snapshot.TotalValue != wantTotals.Value {
		t.Errorf("TotalValue = %v, want bond value %v", snapshot.TotalValue, wantTotals.Value)
	}
	if snapshot.TotalProfit != wantTotals.AccruedNet {
		t.Errorf("TotalProfit = %v, want net accrual %v", snapshot.TotalProfit, wantTotals.AccruedNet)
	}
}

func TestBuildSnapshotClosedPositionsExcluded(t *testing.T) {
	txs := []Transaction{
		tx(1, "2024-01-01", "XYZ", Buy, 10, 100),
		tx(2, "2024-02-01", "XYZ", Sell, 10, 150),
	}
	gw := NewGateway(&stubProvider{}, NewMemoryCache(), "PLN")

	snapshot := BuildSnapshot(txs, 0, nil, gw)
	if len(snapshot.Rows) != 0 {
		t.Errorf("Rows = %v, want none for a closed position", snapshot.Rows)
	}
}

func TestCurrentPricesFor(t *testing.T) {
	snapshot := &Snapshot{Rows: []HoldingRow{
		{Asset: "A", PriceLocal: 12.5},
		{Asset: "B", PriceLocal: 99},
	}}
	prices := snapshot.CurrentPricesFor()
	if prices["A"] != 12.5 || prices["B"] != 99 {
		t.Errorf("prices = %v", prices)
	}
}
