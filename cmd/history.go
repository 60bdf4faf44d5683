package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
	"github.com/aroods/finly/renderer"
)

type historyCmd struct {
	sample int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the daily cumulative profit curve" }
func (*historyCmd) Usage() string {
	return `fin history [-sample <n>]

  Replays the transaction log day by day from the first transaction
  through today and shows the cumulative profit, including bond accruals.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.sample, "sample", 7, "show every n-th day (the final day always shows)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	gw := newGateway(s)
	snapshot := finly.BuildSnapshot(txs, finly.CurrentCash(deposits), lots, gw)

	// One close series per asset, over the full span of the log.
	histories := make(map[string]*date.History)
	if len(txs) > 0 {
		from := txs[0].Date
		to := date.Today()
		for _, asset := range finly.Assets(txs) {
			history, fault := gw.PriceHistory(asset, from, to)
			if fault != nil {
				// The day loop falls back to current prices.
				continue
			}
			histories[asset] = history
		}
	}

	fxRates := gw.FXRatesForAssets(finly.AssetCurrencies(txs))
	series := finly.BuildProfitSeriesWithBonds(txs, histories, fxRates,
		snapshot.CurrentPricesFor(), lots, snapshot.TotalProfit)

	printMarkdown(renderer.HistoryMarkdown(series, *baseCurrency, c.sample))
	return subcommands.ExitSuccess
}
