// Package twelvedata implements the market-data provider against the
// Twelve Data HTTP API (https://twelvedata.com/docs).
package twelvedata

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
)

// Name identifies this provider in symbol mappings and dividend records.
const Name = "twelvedata"

const apiKeyEnv = "TWELVE_DATA_API_KEY"

var apiKeyFlag = flag.String("twelvedata-api-key", "", "Twelve Data API key for fetching quotes, FX rates and dividends.\n If missing it is read from the environment variable \""+apiKeyEnv+"\". You can get one at https://twelvedata.com/")

// APIKey returns the configured key, flag before environment.
func APIKey() string {
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(apiKeyEnv)
	}
	return *apiKeyFlag
}

// Client talks to the Twelve Data REST API. The zero BaseURL targets the
// public endpoint; tests point it at a local server.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// New returns a client over the configured API key.
func New() *Client {
	return &Client{APIKey: APIKey()}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "https://api.twelvedata.com"
}

func (c *Client) http() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// apiError is the error envelope Twelve Data returns with HTTP 200.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// jwget performs a GET against an API path and unmarshals the JSON
// response, surfacing the in-band error envelope as a Go error.
func (c *Client) jwget(path string, params url.Values, data any) error {
	if c.APIKey == "" {
		return finly.ErrNoAPIKey
	}
	params.Set("apikey", c.APIKey)
	addr := c.base() + path + "?" + params.Encode()

	resp, err := c.http().Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", c.base(), path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}

	var envelope apiError
	if json.Unmarshal(buf.Bytes(), &envelope) == nil && envelope.Status == "error" {
		return fmt.Errorf("twelvedata %s: %s (code %d)", path, envelope.Message, envelope.Code)
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// Quote returns the current price and currency of a symbol.
func (c *Client) Quote(symbol string) (finly.Quote, error) {
	// https://api.twelvedata.com/quote?symbol=AAPL
	// {"symbol":"AAPL","close":"189.84","currency":"USD", ...}
	var payload struct {
		Close    decimal.Decimal `json:"close"`
		Currency string          `json:"currency"`
	}
	params := url.Values{"symbol": {symbol}}
	if err := c.jwget("/quote", params, &payload); err != nil {
		return finly.Quote{}, err
	}
	price := payload.Close.InexactFloat64()
	if price <= 0 {
		return finly.Quote{}, fmt.Errorf("twelvedata returned no price for %q", symbol)
	}
	return finly.Quote{Price: price, Currency: payload.Currency}, nil
}

// Rate returns the conversion rate from one currency to another.
func (c *Client) Rate(from, to string) (float64, error) {
	// https://api.twelvedata.com/exchange_rate?symbol=EUR/PLN
	// {"symbol":"EUR/PLN","rate":4.3012,"timestamp":...}
	var payload struct {
		Rate float64 `json:"rate"`
	}
	params := url.Values{"symbol": {from + "/" + to}}
	if err := c.jwget("/exchange_rate", params, &payload); err != nil {
		return 0, err
	}
	if payload.Rate <= 0 {
		return 0, fmt.Errorf("twelvedata returned no rate for %s/%s", from, to)
	}
	return payload.Rate, nil
}

// History returns the daily close series of a symbol over a date range,
// ascending.
func (c *Client) History(symbol string, from, to date.Date) ([]finly.ClosePrice, error) {
	// https://api.twelvedata.com/time_series?symbol=AAPL&interval=1day
	// {"values":[{"datetime":"2024-01-05","close":"181.18",...},...],"status":"ok"}
	var payload struct {
		Values []struct {
			Datetime string          `json:"datetime"`
			Close    decimal.Decimal `json:"close"`
		} `json:"values"`
	}
	params := url.Values{
		"symbol":     {symbol},
		"interval":   {"1day"},
		"start_date": {from.String()},
		"end_date":   {to.String()},
		"outputsize": {"5000"},
	}
	if err := c.jwget("/time_series", params, &payload); err != nil {
		return nil, err
	}

	closes := make([]finly.ClosePrice, 0, len(payload.Values))
	for _, v := range payload.Values {
		day, err := date.Parse(v.Datetime)
		if err != nil {
			continue
		}
		closes = append(closes, finly.ClosePrice{Date: day, Close: v.Close.InexactFloat64()})
	}
	// The API serves newest first.
	for i, j := 0, len(closes)-1; i < j; i, j = i+1, j-1 {
		closes[i], closes[j] = closes[j], closes[i]
	}
	return closes, nil
}

// Dividends returns the declared dividends of a symbol.
func (c *Client) Dividends(symbol string) ([]finly.DividendEvent, error) {
	// https://api.twelvedata.com/dividends?symbol=AAPL&range=full
	// {"dividends":[{"ex_date":"2024-05-10","payment_date":"2024-05-16","amount":0.25},...]}
	var payload struct {
		Dividends []struct {
			ExDate      string          `json:"ex_date"`
			PaymentDate string          `json:"payment_date"`
			Amount      decimal.Decimal `json:"amount"`
		} `json:"dividends"`
		Meta struct {
			Currency string `json:"currency"`
		} `json:"meta"`
	}
	params := url.Values{"symbol": {symbol}, "range": {"full"}}
	if err := c.jwget("/dividends", params, &payload); err != nil {
		return nil, err
	}

	events := make([]finly.DividendEvent, 0, len(payload.Dividends))
	for _, d := range payload.Dividends {
		ev := finly.DividendEvent{
			Amount:   d.Amount.InexactFloat64(),
			Currency: payload.Meta.Currency,
		}
		if day, err := date.Parse(d.ExDate); err == nil {
			ev.ExDate = day
		}
		if day, err := date.Parse(d.PaymentDate); err == nil {
			ev.PayDate = day
		}
		events = append(events, ev)
	}
	return events, nil
}

var _ finly.Provider = (*Client)(nil)
