package finly

import (
	"github.com/aroods/finly/date"
)

// HoldingRow is one open position valued at current prices, with local and
// base-currency figures side by side.
type HoldingRow struct {
	Asset        string
	Category     string
	Currency     string // display currency of the position
	Quantity     float64
	AvgCostLocal float64
	AvgCostBase  float64
	CostBase     float64 // total investment cost in base currency
	PriceLocal   float64
	PriceBase    float64
	ValueBase    float64
	ProfitBase   float64
	ProfitPct    float64
	Fault        *Fault // non-nil when the row was valued on degraded data
}

// Snapshot is the portfolio valuation at one point in time, in the base
// currency. It is recomputed in full from the transaction log on every
// request, so historical edits and backfills are always consistent.
type Snapshot struct {
	Date         date.Date
	BaseCurrency string
	Rows         []HoldingRow
	Cash         float64
	Bonds        BondTotals
	TotalValue   float64 // positions + cash + bonds
	TotalProfit  float64 // unrealized equity profit + net bond accrual
	Faults       []*Fault
}

// CurrentPricesFor extracts the adjusted local price per asset from a
// snapshot, for use as the fallback price map of the profit series.
func (s *Snapshot) CurrentPricesFor() map[string]float64 {
	prices := make(map[string]float64, len(s.Rows))
	for _, row := range s.Rows {
		prices[row.Asset] = row.PriceLocal
	}
	return prices
}

// BuildSnapshot values every open position of the transaction log at
// current prices, converts everything to the gateway's base currency, and
// folds in the cash balance and bond accruals.
//
// A price wildly above the weighted-average cost (more than 20x) is treated
// as a minor-unit misquote and divided by 100; this complements the
// currency-code normalization in the gateway for providers that misreport
// the unit without flagging it.
func BuildSnapshot(txs []Transaction, cash float64, lots []BondLot, gw *Gateway) *Snapshot {
	snapshot := &Snapshot{
		Date:         date.Today(),
		BaseCurrency: gw.BaseCurrency,
		Cash:         cash,
	}

	open := OpenPositions(Summarize(txs))
	symbols := make([]string, 0, len(open))
	seen := make(map[string]bool)
	for key := range open {
		if !seen[key.Asset] {
			seen[key.Asset] = true
			symbols = append(symbols, key.Asset)
		}
	}

	prices, fxRates, faults := gw.CurrentPrices(symbols)
	snapshot.Faults = faults

	for _, key := range sortedKeys(open) {
		pos := open[key]
		quote := prices[key.Asset]
		rate := fxRates[key.Asset]
		if rate <= 0 {
			rate = 1.0
		}

		avgLocal := pos.AverageCost()
		priceLocal := quote.Price
		if avgLocal > 0 && priceLocal > avgLocal*20 {
			priceLocal /= 100
		}

		costBase := pos.CostBasis * rate
		valueBase := priceLocal * rate * pos.Quantity
		profit := valueBase - costBase
		profitPct := 0.0
		if costBase != 0 {
			profitPct = profit / costBase * 100
		}

		currency := key.Currency
		if currency == "" {
			currency = quote.Currency
		}
		if currency == "" {
			currency = gw.BaseCurrency
		}

		snapshot.Rows = append(snapshot.Rows, HoldingRow{
			Asset:        key.Asset,
			Category:     key.Category,
			Currency:     currency,
			Quantity:     pos.Quantity,
			AvgCostLocal: avgLocal,
			AvgCostBase:  avgLocal * rate,
			CostBase:     costBase,
			PriceLocal:   priceLocal,
			PriceBase:    priceLocal * rate,
			ValueBase:    valueBase,
			ProfitBase:   profit,
			ProfitPct:    profitPct,
			Fault:        faultFor(faults, key.Asset),
		})
		snapshot.TotalValue += valueBase
		snapshot.TotalProfit += profit
	}

	_, totals := AccrueAll(lots, snapshot.Date)
	snapshot.Bonds = totals
	snapshot.TotalValue += totals.Value + cash
	snapshot.TotalProfit += totals.AccruedNet

	snapshot.TotalValue = round2(snapshot.TotalValue)
	snapshot.TotalProfit = round2(snapshot.TotalProfit)
	return snapshot
}

func faultFor(faults []*Fault, symbol string) *Fault {
	for _, f := range faults {
		if f.Symbol == symbol {
			return f
		}
	}
	return nil
}
