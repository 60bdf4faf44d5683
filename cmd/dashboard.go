package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
	"github.com/aroods/finly/renderer"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the current portfolio valuation" }
func (*dashboardCmd) Usage() string {
	return `fin dashboard

  Values every open position at current market prices, converts everything
  to the base currency and folds in cash and bond accruals.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	txs, err := s.Transactions()
	if err != nil {
		return fail(err)
	}
	lots, err := s.Bonds()
	if err != nil {
		return fail(err)
	}
	deposits, err := s.CashDeposits()
	if err != nil {
		return fail(err)
	}

	snapshot := finly.BuildSnapshot(txs, finly.CurrentCash(deposits), lots, newGateway(s))
	printMarkdown(renderer.DashboardMarkdown(snapshot))
	return subcommands.ExitSuccess
}
