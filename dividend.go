package finly

import (
	"log"
	"math"

	"github.com/aroods/finly/date"
	"github.com/shopspring/decimal"
)

// DividendStatus tells whether a record came from a provider sync or was
// entered by hand.
type DividendStatus string

const (
	StatusSynced DividendStatus = "synced"
	StatusManual DividendStatus = "manual"
)

// DividendRecord is one declared dividend for a held asset. Amount is the
// gross per-share amount in the record's own currency. Shares is the number
// of entitled shares, derived from the transaction log or entered manually;
// zero means the system could not determine holdings.
type DividendRecord struct {
	ID       int64
	Asset    string
	ExDate   date.Date // zero when the provider omitted it
	PayDate  date.Date
	Amount   float64
	Currency string
	Shares   float64
	Gross    float64 // per-share gross, mirrors Amount
	Net      float64 // per-share net of withholding
	Source   string
	Status   DividendStatus
	Notes    string
}

// SharesHeldAsOf replays one asset's transactions up to the target date and
// returns the net quantity held, never negative. With inclusive=false,
// transactions dated exactly on the target date are excluded — the ex-date
// convention; the pay-date convention includes them.
func SharesHeldAsOf(asset string, txs []Transaction, target date.Date, inclusive bool) float64 {
	var net float64
	for _, tx := range sortedCopy(txs) {
		if tx.Asset != asset {
			continue
		}
		if tx.Date.After(target) {
			break
		}
		if tx.Date == target && !inclusive {
			break
		}
		switch tx.Side {
		case Buy:
			net += tx.Quantity
		case Sell:
			net -= tx.Quantity
		}
	}
	if net < 0 {
		net = 0
	}
	// Stored share counts are compared with a 1e-6 tolerance, so keep the
	// derived value at a matching precision.
	return decimal.NewFromFloat(net).Round(6).InexactFloat64()
}

// ShareUpdate is a recomputed share count that differs from the stored one.
type ShareUpdate struct {
	ID     int64
	Shares float64
}

// ReconcileShares recomputes the entitled share count of every synced or
// manual record from the transaction log as of the record's ex-date (or
// pay-date when the ex-date is unknown, inclusively).
//
// It returns the authoritative share count per record id, plus the subset
// whose stored value has to change. A zero recomputation never overwrites a
// previously nonzero value: a manual entry is trusted over a log the system
// could not reconcile.
func ReconcileShares(records []DividendRecord, txs []Transaction) (shares map[int64]float64, updates []ShareUpdate) {
	shares = make(map[int64]float64, len(records))
	for _, rec := range records {
		if rec.Asset == "" {
			continue
		}
		if rec.Status != StatusSynced && rec.Status != StatusManual {
			continue
		}
		target := rec.ExDate
		inclusive := false
		if target.IsZero() {
			target = rec.PayDate
			inclusive = true
		}
		if target.IsZero() {
			continue
		}

		derived := SharesHeldAsOf(rec.Asset, txs, target, inclusive)
		if derived <= zeroTolerance && rec.Shares > 0 {
			// Keep the manually entered value when the recomputation
			// yields nothing usable.
			shares[rec.ID] = rec.Shares
			continue
		}
		shares[rec.ID] = derived
		if math.Abs(rec.Shares-derived) > 1e-6 {
			updates = append(updates, ShareUpdate{ID: rec.ID, Shares: derived})
		}
	}
	return shares, updates
}

// DividendSink persists dividend records. Upserts key on (asset, ex-date,
// source) and must preserve stored shares and notes when the incoming
// record leaves them empty.
type DividendSink interface {
	UpsertDividend(DividendRecord) error
}

// SyncResult summarizes one dividend refresh run.
type SyncResult struct {
	Processed int      `json:"processed"`
	Missing   []string `json:"missing"`
}

const (
	lastSyncKey   = "dividends:last_sync"
	lastResultKey = "dividends:last_result"
)

// SyncDividends refreshes dividend records for the given assets from the
// market-data provider. For each asset it tries the resolver's candidate
// symbols in order until one yields declarations, converts them to records
// (net per share after flat withholding) and upserts them into the sink.
//
// A completed run is remembered in the gateway cache; unless forced, a
// rerun within the dividend TTL returns the remembered result without
// touching the provider.
func SyncDividends(assets []string, resolver *SymbolResolver, gw *Gateway, providerName string, sink DividendSink, force bool) SyncResult {
	var cached SyncResult
	if !force {
		if _, ok := gw.Cache.Get(lastSyncKey, DividendTTL); ok {
			if cacheGet(gw.Cache, lastResultKey, DividendTTL, &cached) {
				return cached
			}
			return SyncResult{}
		}
	}

	var result SyncResult
	log.Printf("refreshing dividends for %d assets (force=%v)", len(assets), force)
	for _, asset := range assets {
		records := fetchDividendsForAsset(asset, resolver, gw, providerName)
		if len(records) == 0 {
			log.Printf("no dividend data returned for %s", asset)
			result.Missing = append(result.Missing, asset)
			continue
		}
		for _, rec := range records {
			if err := sink.UpsertDividend(rec); err != nil {
				log.Printf("dividend upsert failed for %s on %s: %v", rec.Asset, rec.ExDate, err)
				continue
			}
			result.Processed++
		}
	}

	gw.Cache.Set(lastSyncKey, []byte(date.Today().String()))
	cachePut(gw.Cache, lastResultKey, result)
	log.Printf("dividend refresh completed: processed=%d missing=%d", result.Processed, len(result.Missing))
	return result
}

// fetchDividendsForAsset tries each candidate symbol in order and converts
// the first non-empty set of declarations into records for the internal
// asset symbol.
func fetchDividendsForAsset(asset string, resolver *SymbolResolver, gw *Gateway, providerName string) []DividendRecord {
	for _, candidate := range resolver.Candidates(asset, providerName) {
		events, fault := gw.DividendEvents(candidate)
		if fault != nil {
			log.Printf("dividend fetch fell back for %s (%s): %v", asset, candidate, fault)
			continue
		}
		if len(events) == 0 {
			continue
		}
		records := make([]DividendRecord, 0, len(events))
		for _, ev := range events {
			if ev.ExDate.IsZero() || ev.Amount <= 0 {
				continue
			}
			currency := ev.Currency
			if currency == "" {
				currency = "USD"
			}
			payDate := ev.PayDate
			if payDate.IsZero() {
				payDate = ev.ExDate
			}
			records = append(records, DividendRecord{
				Asset:    asset,
				ExDate:   ev.ExDate,
				PayDate:  payDate,
				Amount:   ev.Amount,
				Currency: currency,
				Gross:    ev.Amount,
				Net:      ev.Amount * (1 - WithholdingRate),
				Source:   providerName,
				Status:   StatusSynced,
			})
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

// EnrichedDividend is a dividend record joined with derived market data
// for reporting.
type EnrichedDividend struct {
	DividendRecord
	NetPerShare float64
	TotalNet    float64
	Price       float64 // current price of the asset, zero when degraded
	YieldPct    float64 // gross amount over current price
	Upcoming    bool    // pay date is today or later
}

// EnrichDividends joins dividend records with reconciled share counts and
// current prices. Price lookups degrade per asset; a priceless record
// simply has a zero yield.
func EnrichDividends(records []DividendRecord, txs []Transaction, gw *Gateway, today date.Date) []EnrichedDividend {
	shares, _ := ReconcileShares(records, txs)

	prices := make(map[string]float64)
	for _, rec := range records {
		if _, ok := prices[rec.Asset]; ok {
			continue
		}
		prices[rec.Asset] = gw.CurrentPrice(rec.Asset).Value.Price
	}

	enriched := make([]EnrichedDividend, 0, len(records))
	for _, rec := range records {
		net := rec.Net
		if net == 0 {
			net = rec.Amount * (1 - WithholdingRate)
		}
		held, ok := shares[rec.ID]
		if !ok {
			held = rec.Shares
		}
		rec.Shares = held
		price := prices[rec.Asset]
		yield := 0.0
		if price > 0 {
			yield = rec.Amount / price * 100
		}
		enriched = append(enriched, EnrichedDividend{
			DividendRecord: rec,
			NetPerShare:    net,
			TotalNet:       round2(net * held),
			Price:          price,
			YieldPct:       yield,
			Upcoming:       !rec.PayDate.IsZero() && !rec.PayDate.Before(today),
		})
	}
	return enriched
}
