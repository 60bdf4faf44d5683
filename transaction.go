package finly

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aroods/finly/date"
)

// Side is the direction of a transaction.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses a stored side value, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown transaction side %q", s)
	}
}

// Transaction is a single buy or sell recorded in the transaction log.
// Quantity and Price are magnitudes in the transaction's own currency.
// The ordering key is (Date, ID) ascending; insertion order breaks date
// ties.
type Transaction struct {
	ID       int64
	Date     date.Date
	Asset    string
	Category string
	Side     Side
	Quantity float64
	Price    float64
	Currency string
}

// NormalizeSymbol upper-cases and trims an asset or currency symbol.
func NormalizeSymbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// SortTransactions orders transactions chronologically by (Date, ID).
// The sort is stable so equal keys keep their insertion order.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}

// sortedCopy returns the transactions in (Date, ID) order without mutating
// the caller's slice. The engines are pure functions of the log, so they
// never reorder it in place.
func sortedCopy(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	SortTransactions(sorted)
	return sorted
}

// AssetCurrencies maps each asset to the currency of its first recorded
// transaction. Used as the display and FX currency for the asset.
func AssetCurrencies(txs []Transaction) map[string]string {
	m := make(map[string]string)
	for _, tx := range sortedCopy(txs) {
		if tx.Asset == "" {
			continue
		}
		if _, ok := m[tx.Asset]; !ok {
			m[tx.Asset] = tx.Currency
		}
	}
	return m
}

// Assets returns the distinct asset symbols of the log, sorted.
func Assets(txs []Transaction) []string {
	seen := make(map[string]bool)
	var assets []string
	for _, tx := range txs {
		if tx.Asset == "" || seen[tx.Asset] {
			continue
		}
		seen[tx.Asset] = true
		assets = append(assets, tx.Asset)
	}
	sort.Strings(assets)
	return assets
}
