package finly

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aroods/finly/date"
)

// ErrNoAPIKey is returned by providers that need a credential and were not
// given one. It is a configuration failure: fatal for the call that needs
// the provider, harmless for everything else.
var ErrNoAPIKey = errors.New("provider API key not configured")

// FaultKind classifies why a market-data lookup degraded to its default.
type FaultKind int

const (
	// FaultTransient covers network errors, timeouts and malformed
	// payloads. A later call may succeed.
	FaultTransient FaultKind = iota + 1
	// FaultConfig covers missing credentials or provider configuration.
	// Retrying without operator action will not help.
	FaultConfig
)

func (k FaultKind) String() string {
	switch k {
	case FaultTransient:
		return "transient"
	case FaultConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Fault is the typed failure reason attached to a degraded result, so
// callers can surface partial-failure diagnostics instead of guessing from
// sentinel zeros.
type Fault struct {
	Kind   FaultKind
	Symbol string
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault for %q: %v", f.Kind, f.Symbol, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func classify(symbol string, err error) *Fault {
	kind := FaultTransient
	if errors.Is(err, ErrNoAPIKey) {
		kind = FaultConfig
	}
	return &Fault{Kind: kind, Symbol: symbol, Err: err}
}

// Result carries either a usable value or the value's degraded default
// together with the reason it degraded.
type Result[T any] struct {
	Value T
	Fault *Fault
}

// Failed reports whether the value is a degraded default.
func (r Result[T]) Failed() bool { return r.Fault != nil }

// Quote is a current price in the quote's own currency.
type Quote struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// ClosePrice is one day of a historical close series.
type ClosePrice struct {
	Date  date.Date `json:"date"`
	Close float64   `json:"close"`
}

// DividendEvent is a dividend declaration reported by a provider. Dates may
// be zero when the provider omits them.
type DividendEvent struct {
	ExDate   date.Date `json:"ex_date"`
	PayDate  date.Date `json:"pay_date"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}

// EventCalendar lists upcoming corporate events for a symbol.
type EventCalendar struct {
	NextEarnings date.Date `json:"next_earnings"`
	NextExDate   date.Date `json:"next_ex_date"`
}

// Provider is the external market-data source. Every method is a blocking
// network call with the provider's own timeout as the only temporal
// control, and every method is individually fallible.
type Provider interface {
	Quote(symbol string) (Quote, error)
	Rate(from, to string) (float64, error)
	History(symbol string, from, to date.Date) ([]ClosePrice, error)
	Dividends(symbol string) ([]DividendEvent, error)
	Events(symbol string) (EventCalendar, error)
}

// DefaultPenceTickers lists symbols whose provider misreports minor-unit
// prices under the major-unit currency code. This is provider-specific
// folklore, kept as configuration data rather than logic: it does not
// generalize to other minor-unit currencies.
var DefaultPenceTickers = map[string]bool{
	"NWG.L": true,
}

// Gateway serves current prices, FX rates, historical series and dividend
// declarations out of a TTL cache, falling through to the external provider
// on miss or expiry. Provider failures never propagate: each lookup
// degrades to its documented default and carries a typed Fault instead.
type Gateway struct {
	Provider Provider
	Cache    CacheStore
	// BaseCurrency is the currency aggregate totals are reported in.
	BaseCurrency string
	// PenceTickers overrides DefaultPenceTickers when non-nil.
	PenceTickers map[string]bool
}

// NewGateway wires a provider to a cache. The cache is an explicit
// dependency so tests can isolate the gateway with a MemoryCache.
func NewGateway(provider Provider, cache CacheStore, baseCurrency string) *Gateway {
	return &Gateway{
		Provider:     provider,
		Cache:        cache,
		BaseCurrency: baseCurrency,
		PenceTickers: DefaultPenceTickers,
	}
}

// normalize rewrites minor-unit quotes to their major-unit equivalent:
// GBX/GBp becomes GBP with the price divided by 100, and the same
// correction applies to allow-listed tickers misreported under GBP.
func (g *Gateway) normalize(symbol string, q Quote) Quote {
	switch q.Currency {
	case "GBX", "GBp":
		q.Price /= 100
		q.Currency = "GBP"
	case "GBP":
		if g.PenceTickers[symbol] {
			q.Price /= 100
		}
	}
	return q
}

// cacheGet unmarshals a cached JSON payload. A payload that no longer
// parses counts as a miss.
func cacheGet[T any](cache CacheStore, key string, maxAge time.Duration, out *T) bool {
	payload, ok := cache.Get(key, maxAge)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Printf("cache entry %q is unreadable, refetching: %v", key, err)
		return false
	}
	return true
}

func cachePut(cache CacheStore, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache write for %q skipped: %v", key, err)
		return
	}
	cache.Set(key, payload)
}

// CurrentPrice returns the current quote for a symbol, from cache when
// fresh enough. On provider failure the quote degrades to a zero price
// with an empty currency.
func (g *Gateway) CurrentPrice(symbol string) Result[Quote] {
	key := "price:" + symbol
	var quote Quote
	if cacheGet(g.Cache, key, PriceTTL, &quote) {
		return Result[Quote]{Value: quote}
	}

	quote, err := g.Provider.Quote(symbol)
	if err != nil {
		return Result[Quote]{Fault: classify(symbol, err)}
	}
	quote = g.normalize(symbol, quote)
	cachePut(g.Cache, key, quote)
	return Result[Quote]{Value: quote}
}

// RateToBase returns how many base-currency units one unit of the given
// currency is worth. The degraded default is 1.0, never zero, so a missing
// rate skews a valuation instead of zeroing it.
func (g *Gateway) RateToBase(currency string) Result[float64] {
	if currency == "" || currency == g.BaseCurrency {
		return Result[float64]{Value: 1.0}
	}
	key := "fx:" + currency + g.BaseCurrency
	var rate float64
	if cacheGet(g.Cache, key, FXTTL, &rate) {
		return Result[float64]{Value: rate}
	}

	rate, err := g.Provider.Rate(currency, g.BaseCurrency)
	if err != nil {
		return Result[float64]{Value: 1.0, Fault: classify(currency, err)}
	}
	cachePut(g.Cache, key, rate)
	return Result[float64]{Value: rate}
}

// PriceHistory returns the ascending close series for a symbol over a date
// range, as a History supporting last-known-value lookups. On provider
// failure the history is empty and the Fault explains why.
func (g *Gateway) PriceHistory(symbol string, from, to date.Date) (*date.History, *Fault) {
	key := fmt.Sprintf("history:%s:%s:%s", symbol, from, to)
	var closes []ClosePrice
	if !cacheGet(g.Cache, key, HistoryTTL, &closes) {
		fetched, err := g.Provider.History(symbol, from, to)
		if err != nil {
			return new(date.History), classify(symbol, err)
		}
		closes = fetched
		cachePut(g.Cache, key, closes)
	}

	history := new(date.History)
	for _, c := range closes {
		history.Append(c.Date, c.Close)
	}
	return history, nil
}

// DividendEvents returns the dividend declarations a provider knows for a
// symbol. An empty result with a nil Fault means the provider genuinely has
// nothing; callers fall back to the next symbol candidate on either an
// empty result or a Fault.
func (g *Gateway) DividendEvents(symbol string) ([]DividendEvent, *Fault) {
	key := "dividends:" + symbol
	var events []DividendEvent
	if cacheGet(g.Cache, key, DividendTTL, &events) {
		return events, nil
	}

	events, err := g.Provider.Dividends(symbol)
	if err != nil {
		return nil, classify(symbol, err)
	}
	cachePut(g.Cache, key, events)
	return events, nil
}

// EventDates returns upcoming corporate events for a symbol, cached for a
// day.
func (g *Gateway) EventDates(symbol string) Result[EventCalendar] {
	key := "events:" + symbol
	var calendar EventCalendar
	if cacheGet(g.Cache, key, EventTTL, &calendar) {
		return Result[EventCalendar]{Value: calendar}
	}

	calendar, err := g.Provider.Events(symbol)
	if err != nil {
		return Result[EventCalendar]{Fault: classify(symbol, err)}
	}
	cachePut(g.Cache, key, calendar)
	return Result[EventCalendar]{Value: calendar}
}

// CurrentPrices resolves quotes and FX rates for a list of symbols,
// sequentially, merging results by symbol. Faults are collected per symbol
// instead of aborting the batch.
func (g *Gateway) CurrentPrices(symbols []string) (prices map[string]Quote, fxRates map[string]float64, faults []*Fault) {
	prices = make(map[string]Quote, len(symbols))
	fxRates = make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		res := g.CurrentPrice(symbol)
		if res.Failed() {
			log.Printf("price lookup degraded for %s: %v", symbol, res.Fault)
			faults = append(faults, res.Fault)
		}
		prices[symbol] = res.Value

		rate := g.RateToBase(res.Value.Currency)
		if rate.Failed() {
			log.Printf("fx lookup degraded for %s: %v", res.Value.Currency, rate.Fault)
			faults = append(faults, rate.Fault)
		}
		fxRates[symbol] = rate.Value
	}
	return prices, fxRates, faults
}

// FXRatesForAssets resolves one base-currency rate per asset from the
// asset's transaction currency.
func (g *Gateway) FXRatesForAssets(assetCurrency map[string]string) map[string]float64 {
	rates := make(map[string]float64, len(assetCurrency))
	for asset, currency := range assetCurrency {
		rates[asset] = g.RateToBase(currency).Value
	}
	return rates
}
