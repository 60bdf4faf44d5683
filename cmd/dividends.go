package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
	"github.com/aroods/finly/renderer"
	"github.com/aroods/finly/twelvedata"
)

type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "list dividend records with derived data" }
func (*dividendsCmd) Usage() string {
	return `fin dividends

  Lists dividend records with reconciled share counts, total net payouts
  and yields against current prices.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	records, err := s.Dividends()
	if err != nil {
		return fail(err)
	}
	txs, err := s.Transactions()
	if err != nil {
		return fail(err)
	}

	enriched := finly.EnrichDividends(records, txs, newGateway(s), date.Today())

	// Persist reconciled share counts so manual exports see them too.
	_, updates := finly.ReconcileShares(records, txs)
	if err := s.UpdateDividendShares(updates); err != nil {
		return fail(err)
	}

	printMarkdown(renderer.DividendsMarkdown(enriched))
	return subcommands.ExitSuccess
}

type dividendSyncCmd struct {
	force bool
}

func (*dividendSyncCmd) Name() string     { return "dividend-sync" }
func (*dividendSyncCmd) Synopsis() string { return "refresh dividend records from the provider" }
func (*dividendSyncCmd) Usage() string {
	return `fin dividend-sync [-force]

  Fetches dividend declarations for every asset in the transaction log and
  upserts them. A completed sync is remembered for 12 hours unless -force.
`
}

func (c *dividendSyncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "sync even when a recent sync is remembered")
}

func (c *dividendSyncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	txs, err := s.Transactions()
	if err != nil {
		return fail(err)
	}

	resolver := finly.NewSymbolResolver(s)
	result := finly.SyncDividends(finly.Assets(txs), resolver, newGateway(s), twelvedata.Name, s, c.force)

	fmt.Printf("Processed %d dividend record(s).\n", result.Processed)
	for _, asset := range result.Missing {
		fmt.Printf("No dividend data found for %s.\n", asset)
	}
	return subcommands.ExitSuccess
}

type dividendAddCmd struct {
	asset    string
	exDate   string
	payDate  string
	amount   float64
	currency string
	shares   float64
	notes    string
}

func (*dividendAddCmd) Name() string     { return "dividend-add" }
func (*dividendAddCmd) Synopsis() string { return "record a dividend manually" }
func (*dividendAddCmd) Usage() string {
	return `fin dividend-add -a <asset> -ex <date> -amount <gross per share> [options]

  Records a dividend the provider does not know about. Manual records are
  reconciled against the transaction log like synced ones.
`
}

func (c *dividendAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "asset symbol")
	f.StringVar(&c.exDate, "ex", "", "ex-dividend date (YYYY-MM-DD)")
	f.StringVar(&c.payDate, "pay", "", "payment date, defaults to the ex-date")
	f.Float64Var(&c.amount, "amount", 0, "gross amount per share")
	f.StringVar(&c.currency, "cur", "PLN", "dividend currency")
	f.Float64Var(&c.shares, "shares", 0, "entitled shares; 0 derives them from the log")
	f.StringVar(&c.notes, "notes", "", "free-form note")
}

func (c *dividendAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.amount <= 0 {
		return fail(fmt.Errorf("-a and a positive -amount are required"))
	}
	exDate, err := date.Parse(c.exDate)
	if err != nil {
		return fail(fmt.Errorf("invalid -ex: %w", err))
	}
	payDate := exDate
	if c.payDate != "" {
		if payDate, err = date.Parse(c.payDate); err != nil {
			return fail(fmt.Errorf("invalid -pay: %w", err))
		}
	}
	if err := finly.ValidateCurrency(c.currency); err != nil {
		return fail(err)
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	err = s.UpsertDividend(finly.DividendRecord{
		Asset:    c.asset,
		ExDate:   exDate,
		PayDate:  payDate,
		Amount:   c.amount,
		Currency: c.currency,
		Shares:   c.shares,
		Gross:    c.amount,
		Net:      c.amount * (1 - finly.WithholdingRate),
		Source:   "manual",
		Status:   finly.StatusManual,
		Notes:    c.notes,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded dividend for %s on %s.\n", finly.NormalizeSymbol(c.asset), exDate)
	return subcommands.ExitSuccess
}
