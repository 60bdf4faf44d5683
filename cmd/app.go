// Package cmd implements the CLI application to track and value a
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/aroods/finly"
	"github.com/aroods/finly/store"
	"github.com/aroods/finly/twelvedata"
)

// Commands lists every subcommand of the application. A main package
// registers them on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&dashboardCmd{},
	&historyCmd{},
	&txCmd{},
	&buyCmd{},
	&sellCmd{},
	&bondsCmd{},
	&bondAddCmd{},
	&dividendsCmd{},
	&dividendSyncCmd{},
	&dividendAddCmd{},
	&cashCmd{},
	&cacheStatsCmd{},
	&cacheClearCmd{},
	&mappingsCmd{},
	&mappingAddCmd{},
	&topicCmd{},
}

// As a CLI application with a very short lifecycle, global flags are fine.

var dbFile = flag.String("db", "portfolio.db", "Path to the portfolio database file")
var baseCurrency = flag.String("base-currency", "PLN", "Currency that aggregate totals are reported in")

// openStore opens the portfolio database configured by the -db flag.
func openStore() (*store.Store, error) {
	s, err := store.Open(*dbFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio database: %w", err)
	}
	if err := finly.ValidateCurrency(*baseCurrency); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// newGateway wires the Twelve Data provider to the store's persisted
// cache.
func newGateway(s *store.Store) *finly.Gateway {
	return finly.NewGateway(twelvedata.New(), s.Cache(), *baseCurrency)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
