// Package renderer turns valuation results into markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/aroods/finly"
)

// DashboardMarkdown renders the portfolio snapshot: holdings, cash, bonds
// and totals.
func DashboardMarkdown(s *finly.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio on %s\n\n", s.Date)

	if len(s.Rows) > 0 {
		fmt.Fprintln(&b, "| Asset | Category | Qty | Avg Cost | Price | Value | Profit | Profit % | |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|:---|")
		for _, row := range s.Rows {
			flag := ""
			if row.Fault != nil {
				flag = "⚠ " + row.Fault.Kind.String()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %.2f%% | %s |\n",
				row.Asset,
				row.Category,
				trimQuantity(row.Quantity),
				finly.FormatMoney(row.AvgCostLocal, row.Currency),
				finly.FormatMoney(row.PriceLocal, row.Currency),
				finly.FormatMoney(row.ValueBase, s.BaseCurrency),
				finly.FormatMoney(row.ProfitBase, s.BaseCurrency),
				row.ProfitPct,
				flag,
			)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "- Cash: %s\n", finly.FormatMoney(s.Cash, s.BaseCurrency))
	fmt.Fprintf(&b, "- Bonds: %s (accrued net %s)\n",
		finly.FormatMoney(s.Bonds.Value, s.BaseCurrency),
		finly.FormatMoney(s.Bonds.AccruedNet, s.BaseCurrency))
	fmt.Fprintf(&b, "- **Total value: %s**\n", finly.FormatMoney(s.TotalValue, s.BaseCurrency))
	fmt.Fprintf(&b, "- **Total profit: %s**\n", finly.FormatMoney(s.TotalProfit, s.BaseCurrency))

	if len(s.Faults) > 0 {
		fmt.Fprintf(&b, "\n> %d lookup(s) degraded; figures above may use stale or default data.\n", len(s.Faults))
	}
	return b.String()
}

// BondsMarkdown renders every lot with its accrual state as of one date.
func BondsMarkdown(lots []finly.BondLot, accruals []finly.Accrual, totals finly.BondTotals, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bonds\n\n")
	if len(lots) == 0 {
		fmt.Fprintln(&b, "No bond lots recorded.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Series | Type | Purchased | Matures | Principal | Rate | Held | Accrued Net | Value |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|---:|---:|")
	for i, lot := range lots {
		a := accruals[i]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.2f%% | %d/%d | %s | %s |\n",
			lot.Series,
			lot.Type,
			lot.PurchaseDate,
			lot.MaturityDate,
			finly.FormatMoney(lot.Principal(), currency),
			a.EffectiveRate,
			a.DaysHeld, a.TotalDays,
			finly.FormatMoney(a.InterestNet, currency),
			finly.FormatMoney(a.CurrentValue, currency),
		)
	}
	fmt.Fprintf(&b, "\n- **Total value: %s** (accrued net %s, gross %s)\n",
		finly.FormatMoney(totals.Value, currency),
		finly.FormatMoney(totals.AccruedNet, currency),
		finly.FormatMoney(totals.AccruedGross, currency))
	return b.String()
}

// DividendsMarkdown renders enriched dividend records, upcoming first when
// the input is so ordered.
func DividendsMarkdown(dividends []finly.EnrichedDividend) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividends\n\n")
	if len(dividends) == 0 {
		fmt.Fprintln(&b, "No dividend records.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Ex-Date | Pay Date | Amount | Shares | Total Net | Yield | Status | |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|:---|:---|")
	for _, d := range dividends {
		upcoming := ""
		if d.Upcoming {
			upcoming = "upcoming"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %.2f%% | %s | %s |\n",
			d.Asset,
			d.ExDate,
			d.PayDate,
			finly.FormatMoney(d.Amount, d.Currency),
			trimQuantity(d.Shares),
			finly.FormatMoney(d.TotalNet, d.Currency),
			d.YieldPct,
			d.Status,
			upcoming,
		)
	}
	return b.String()
}

// HistoryMarkdown renders the daily profit curve. With sample > 1 only
// every sample-th day is shown, the final day always included.
func HistoryMarkdown(series finly.ProfitSeries, baseCurrency string, sample int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profit History\n\n")
	if len(series) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}
	if sample < 1 {
		sample = 1
	}

	fmt.Fprintln(&b, "| Date | Profit |")
	fmt.Fprintln(&b, "|:---|---:|")
	for i, p := range series {
		if i%sample != 0 && i != len(series)-1 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", p.Date, finly.FormatMoney(p.Profit, baseCurrency))
	}
	return b.String()
}

// TransactionsMarkdown renders the transaction log.
func TransactionsMarkdown(txs []finly.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}

	fmt.Fprintln(&b, "| ID | Date | Asset | Category | Side | Qty | Price | Currency |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|:---|---:|---:|:---|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.ID, tx.Date, tx.Asset, tx.Category, tx.Side,
			trimQuantity(tx.Quantity),
			finly.FormatMoney(tx.Price, tx.Currency),
			tx.Currency,
		)
	}
	return b.String()
}

// trimQuantity prints a quantity without trailing fraction zeros.
func trimQuantity(q float64) string {
	s := fmt.Sprintf("%.6f", q)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
