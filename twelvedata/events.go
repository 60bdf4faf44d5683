package twelvedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
)

// Events returns the next earnings date and next dividend ex-date known
// for a symbol.
//
// The earnings payload nests its data differently across plan tiers, so it
// is walked with jsonpath instead of a fixed struct.
func (c *Client) Events(symbol string) (finly.EventCalendar, error) {
	var calendar finly.EventCalendar

	// https://api.twelvedata.com/earnings?symbol=AAPL
	// {"earnings":[{"date":"2025-10-30","time":"After Hours",...},...]}
	jobj, err := c.jwgetAny("/earnings", url.Values{"symbol": {symbol}})
	if err != nil {
		return calendar, err
	}
	if day, ok := jsonpathDate(jobj, "$.earnings[0].date"); ok {
		calendar.NextEarnings = day
	}

	// The next ex-date comes from the dividend declarations already
	// fetched for the symbol, so a second endpoint is not needed.
	events, err := c.Dividends(symbol)
	if err != nil {
		return calendar, err
	}
	today := date.Today()
	for _, ev := range events {
		if ev.ExDate.IsZero() || ev.ExDate.Before(today) {
			continue
		}
		if calendar.NextExDate.IsZero() || ev.ExDate.Before(calendar.NextExDate) {
			calendar.NextExDate = ev.ExDate
		}
	}
	return calendar, nil
}

// jwgetAny is jwget into an untyped JSON tree, for jsonpath walking.
func (c *Client) jwgetAny(path string, params url.Values) (any, error) {
	if c.APIKey == "" {
		return nil, finly.ErrNoAPIKey
	}
	params.Set("apikey", c.APIKey)
	addr := c.base() + path + "?" + params.Encode()

	resp, err := c.http().Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", c.base(), path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}

	var envelope apiError
	if json.Unmarshal(buf.Bytes(), &envelope) == nil && envelope.Status == "error" {
		return nil, fmt.Errorf("twelvedata %s: %s (code %d)", path, envelope.Message, envelope.Code)
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}

// jsonpathDate extracts a date-valued string at a jsonpath, tolerating the
// list-or-scalar ambiguity of jsonpath results.
func jsonpathDate(jobj any, path string) (date.Date, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return date.Date{}, false
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return date.Date{}, false
	}
	day, err := date.Parse(s)
	if err != nil {
		return date.Date{}, false
	}
	return day, true
}
