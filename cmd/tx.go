package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
	"github.com/aroods/finly/renderer"
)

type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all transactions" }
func (*txCmd) Usage() string {
	return `fin tx

  Lists the transaction log in chronological order.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	txs, err := s.Transactions()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.TransactionsMarkdown(txs))
	return subcommands.ExitSuccess
}

// tradeCmd holds the flags shared by buy and sell.
type tradeCmd struct {
	day      string
	asset    string
	category string
	quantity float64
	price    float64
	currency string
}

func (c *tradeCmd) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", date.Today().String(), "transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "asset symbol (e.g. PZU.WA)")
	f.StringVar(&c.category, "c", "Stock", "asset category")
	f.Float64Var(&c.quantity, "q", 0, "quantity")
	f.Float64Var(&c.price, "p", 0, "price per unit, in the transaction currency")
	f.StringVar(&c.currency, "cur", "PLN", "transaction currency")
}

func (c *tradeCmd) record(side finly.Side) subcommands.ExitStatus {
	if c.asset == "" || c.quantity <= 0 || c.price <= 0 {
		return fail(fmt.Errorf("-a, -q and -p are required and must be positive"))
	}
	day, err := date.Parse(c.day)
	if err != nil {
		return fail(err)
	}
	if err := finly.ValidateCurrency(c.currency); err != nil {
		return fail(err)
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	id, err := s.AddTransaction(finly.Transaction{
		Date:     day,
		Asset:    c.asset,
		Category: c.category,
		Side:     side,
		Quantity: c.quantity,
		Price:    c.price,
		Currency: c.currency,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s #%d: %s %g x %g %s on %s\n", side, id,
		finly.NormalizeSymbol(c.asset), c.quantity, c.price, c.currency, day)
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy transaction" }
func (*buyCmd) Usage() string {
	return `fin buy -a <asset> -q <quantity> -p <price> [-d <date>] [-c <category>] [-cur <currency>]

  Appends a buy to the transaction log.
`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(finly.Buy)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell transaction" }
func (*sellCmd) Usage() string {
	return `fin sell -a <asset> -q <quantity> -p <price> [-d <date>] [-c <category>] [-cur <currency>]

  Appends a sell to the transaction log. Selling more than is held realizes
  only the held quantity.
`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }
func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.record(finly.Sell)
}
