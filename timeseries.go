package finly

import (
	"github.com/aroods/finly/date"
)

// ProfitPoint is one day of the cumulative profit curve, in the base
// currency.
type ProfitPoint struct {
	Date   date.Date `json:"date"`
	Profit float64   `json:"profit"`
}

// ProfitSeries is a daily cumulative profit curve, one point per calendar
// day, suitable for direct charting.
type ProfitSeries []ProfitPoint

// SetFinal overwrites the last point with the caller's authoritative
// current total profit, eliminating end-of-series rounding drift from the
// daily replay.
func (s ProfitSeries) SetFinal(total float64) {
	if len(s) > 0 {
		s[len(s)-1].Profit = total
	}
}

// assetState is the running valuation state of one asset during the daily
// replay.
type assetState struct {
	quantity  float64
	costLocal float64
	costBase  float64
}

// BuildProfitSeries replays the transaction log day by day, from the
// earliest transaction date through today inclusive, and returns the
// cumulative profit in the base currency for each day.
//
// Each asset is valued against its ascending historical close series: on a
// day with no newer price the last known price carries forward, and before
// any history exists the asset's fallback current price stands in. Buys add
// quantity and cost in both the local and base currency using the asset's
// FX rate; sells reduce both proportionally to the weighted-average cost
// and feed a running realized-profit accumulator. Transactions are consumed
// at most once, in (date, id) order.
//
// The function is pure: it allocates its own state and never mutates its
// inputs, so the same inputs always reproduce the same curve.
func BuildProfitSeries(txs []Transaction, histories map[string]*date.History, fxRates map[string]float64, fallbackPrices map[string]float64) ProfitSeries {
	return buildProfitSeriesThrough(txs, histories, fxRates, fallbackPrices, date.Today())
}

func buildProfitSeriesThrough(txs []Transaction, histories map[string]*date.History, fxRates map[string]float64, fallbackPrices map[string]float64, end date.Date) ProfitSeries {
	if len(txs) == 0 {
		return nil
	}
	sorted := sortedCopy(txs)

	start := sorted[0].Date
	if end.Before(start) {
		end = start
	}

	states := make(map[string]*assetState)
	var realized float64
	next := 0 // index of the first transaction not applied yet

	fxFor := func(asset string) float64 {
		if rate, ok := fxRates[asset]; ok && rate > 0 {
			return rate
		}
		return 1.0
	}

	series := make(ProfitSeries, 0, end.Sub(start)+1)
	for day := start; !day.After(end); day = day.Add(1) {
		for next < len(sorted) && !sorted[next].Date.After(day) {
			tx := sorted[next]
			next++
			state, ok := states[tx.Asset]
			if !ok {
				state = new(assetState)
				states[tx.Asset] = state
			}
			rate := fxFor(tx.Asset)

			switch tx.Side {
			case Buy:
				state.quantity += tx.Quantity
				state.costLocal += tx.Quantity * tx.Price
				state.costBase += tx.Quantity * tx.Price * rate
			case Sell:
				if state.quantity <= 0 {
					continue
				}
				avgLocal := state.costLocal / state.quantity
				avgBase := state.costBase / state.quantity
				sold := tx.Quantity
				if sold > state.quantity {
					sold = state.quantity
				}
				state.costLocal -= sold * avgLocal
				state.costBase -= sold * avgBase
				state.quantity -= sold
				realized += sold * (tx.Price - avgLocal) * rate

				state.quantity = snapZero(state.quantity)
				state.costLocal = snapZero(state.costLocal)
				state.costBase = snapZero(state.costBase)
			}
		}

		profit := realized
		for asset, state := range states {
			if state.quantity <= 0 {
				continue
			}
			price, ok := 0.0, false
			if history := histories[asset]; history != nil {
				price, ok = history.AsOf(day)
			}
			if !ok {
				price = fallbackPrices[asset]
			}
			if price <= 0 {
				continue
			}
			valueBase := state.quantity * price * fxFor(asset)
			profit += valueBase - state.costBase
		}

		series = append(series, ProfitPoint{Date: day, Profit: round2(profit)})
	}

	return series
}

// BuildProfitSeriesWithBonds layers the daily net bond accrual on top of
// the equity profit curve, then pins the final point to the caller's
// current total profit.
func BuildProfitSeriesWithBonds(txs []Transaction, histories map[string]*date.History, fxRates map[string]float64, fallbackPrices map[string]float64, lots []BondLot, currentTotal float64) ProfitSeries {
	series := BuildProfitSeries(txs, histories, fxRates, fallbackPrices)
	for i := range series {
		var accrued float64
		for _, lot := range lots {
			accrued += Accrue(lot, series[i].Date).InterestNet
		}
		series[i].Profit = round2(series[i].Profit + accrued)
	}
	series.SetFinal(currentTotal)
	return series
}
