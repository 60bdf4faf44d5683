package finly

import (
	"math"
	"testing"

	"github.com/aroods/finly/date"
)

func TestBuildProfitSeriesDayCoverage(t *testing.T) {
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}
	end := date.MustParse("2024-01-10")

	series := buildProfitSeriesThrough(txs, nil, nil, map[string]float64{"XYZ": 100}, end)

	if len(series) != 10 {
		t.Fatalf("len(series) = %d, want 10 consecutive days", len(series))
	}
	for i, p := range series {
		if want := date.MustParse("2024-01-01").Add(i); p.Date != want {
			t.Errorf("series[%d].Date = %s, want %s", i, p.Date, want)
		}
	}
}

func TestBuildProfitSeriesCarryForward(t *testing.T) {
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}
	history := new(date.History)
	history.Append(date.MustParse("2024-01-01"), 100)
	history.Append(date.MustParse("2024-01-05"), 110)

	series := buildProfitSeriesThrough(txs,
		map[string]*date.History{"XYZ": history},
		nil, nil, date.MustParse("2024-01-06"))

	// Days 1 through 4 carry the 100 close, days 5 and 6 the 110 close.
	wants := []float64{0, 0, 0, 0, 100, 100}
	for i, want := range wants {
		if series[i].Profit != want {
			t.Errorf("series[%d].Profit = %v, want %v", i, series[i].Profit, want)
		}
	}
}

func TestBuildProfitSeriesFallbackPrice(t *testing.T) {
	// No history at all: the fallback current price values every day.
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}

	series := buildProfitSeriesThrough(txs, nil, nil,
		map[string]float64{"XYZ": 120}, date.MustParse("2024-01-03"))

	for i, p := range series {
		if p.Profit != 200 {
			t.Errorf("series[%d].Profit = %v, want 200 from fallback", i, p.Profit)
		}
	}
}

func TestBuildProfitSeriesUnpricedAssetSkipped(t *testing.T) {
	// No history and no fallback: the asset contributes nothing rather
	// than a fictitious loss of its full cost.
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}

	series := buildProfitSeriesThrough(txs, nil, nil, nil, date.MustParse("2024-01-02"))
	for i, p := range series {
		if p.Profit != 0 {
			t.Errorf("series[%d].Profit = %v, want 0 for unpriced asset", i, p.Profit)
		}
	}
}

func TestBuildProfitSeriesRealized(t *testing.T) {
	txs := []Transaction{
		tx(1, "2024-01-01", "XYZ", Buy, 10, 100),
		tx(2, "2024-01-03", "XYZ", Sell, 10, 150),
	}
	history := new(date.History)
	history.Append(date.MustParse("2024-01-01"), 100)

	series := buildProfitSeriesThrough(txs,
		map[string]*date.History{"XYZ": history},
		nil, nil, date.MustParse("2024-01-05"))

	// After the full sell only the realized profit remains, flat to the
	// end.
	for _, p := range series[2:] {
		if p.Profit != 500 {
			t.Errorf("%s: Profit = %v, want realized 500", p.Date, p.Profit)
		}
	}
}

func TestBuildProfitSeriesFXConversion(t *testing.T) {
	txs := []Transaction{tx(1, "2024-01-01", "XYZ", Buy, 10, 100)}
	history := new(date.History)
	history.Append(date.MustParse("2024-01-01"), 110)

	series := buildProfitSeriesThrough(txs,
		map[string]*date.History{"XYZ": history},
		map[string]float64{"XYZ": 4.0},
		nil, date.MustParse("2024-01-01"))

	// (10*110 - 10*100) * 4.0 in base currency.
	if got := series[0].Profit; math.Abs(got-400) > 1e-9 {
		t.Errorf("Profit = %v, want 400", got)
	}
}

func TestBuildProfitSeriesEmptyLog(t *testing.T) {
	if series := BuildProfitSeries(nil, nil, nil, nil); series != nil {
		t.Errorf("series = %v, want nil for empty log", series)
	}
}

func TestBuildProfitSeriesEndBeforeStart(t *testing.T) {
	txs := []Transaction{tx(1, "2024-06-01", "XYZ", Buy, 1, 10)}
	series := buildProfitSeriesThrough(txs, nil, nil, nil, date.MustParse("2024-01-01"))
	if len(series) != 1 || series[0].Date != date.MustParse("2024-06-01") {
		t.Errorf("series = %v, want the single start day", series)
	}
}

func TestSetFinal(t *testing.T) {
	series := ProfitSeries{
		{Date: date.MustParse("2024-01-01"), Profit: 10},
		{Date: date.MustParse("2024-01-02"), Profit: 20},
	}
	series.SetFinal(123.45)
	if series[1].Profit != 123.45 {
		t.Errorf("final point = %v, want 123.45", series[1].Profit)
	}
	if series[0].Profit != 10 {
		t.Errorf("earlier point changed: %v", series[0].Profit)
	}

	var empty ProfitSeries
	empty.SetFinal(1) // must not panic
}

func TestBuildProfitSeriesPure(t *testing.T) {
	txs := []Transaction{
		tx(2, "2024-01-02", "XYZ", Sell, 5, 120),
		tx(1, "2024-01-01", "XYZ", Buy, 10, 100),
	}
	before := make([]Transaction, len(txs))
	copy(before, txs)

	first := buildProfitSeriesThrough(txs, nil, nil, map[string]float64{"XYZ": 100}, date.MustParse("2024-01-05"))
	second := buildProfitSeriesThrough(txs, nil, nil, map[string]float64{"XYZ": 100}, date.MustParse("2024-01-05"))

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replay diverged at %d: %v vs %v", i, first[i], second[i])
		}
	}
	for i := range txs {
		if txs[i] != before[i] {
			t.Fatalf("input slice reordered at %d", i)
		}
	}
}
