package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
)

type cashCmd struct {
	set  float64
	note string
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "show or update the cash balance" }
func (*cashCmd) Usage() string {
	return `fin cash [-set <amount> [-note <text>]]

  Without flags, lists the cash balance history with deltas. With -set,
  records the new absolute balance.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.set, "set", 0, "record a new absolute cash balance")
	f.StringVar(&c.note, "note", "", "note attached to the new balance")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	if c.set != 0 {
		if _, err := s.AddCashDeposit(c.set, c.note, time.Now()); err != nil {
			return fail(err)
		}
		fmt.Printf("Cash balance set to %s.\n", finly.FormatMoney(c.set, *baseCurrency))
		return subcommands.ExitSuccess
	}

	deposits, err := s.CashDeposits()
	if err != nil {
		return fail(err)
	}
	if len(deposits) == 0 {
		fmt.Println("No cash history recorded.")
		return subcommands.ExitSuccess
	}
	for _, d := range deposits {
		note := ""
		if d.Note != "" {
			note = "  (" + d.Note + ")"
		}
		fmt.Printf("%s  %12s  %+12s%s\n",
			d.CreatedAt.Format("2006-01-02"),
			finly.FormatMoney(d.Amount, *baseCurrency),
			finly.FormatMoney(d.Delta, *baseCurrency),
			note)
	}
	fmt.Printf("Current balance: %s\n", finly.FormatMoney(finly.CurrentCash(deposits), *baseCurrency))
	return subcommands.ExitSuccess
}
