package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type cacheStatsCmd struct{}

func (*cacheStatsCmd) Name() string     { return "cache-stats" }
func (*cacheStatsCmd) Synopsis() string { return "summarize the market-data cache" }
func (*cacheStatsCmd) Usage() string {
	return `fin cache-stats

  Shows how many entries the market-data cache holds per namespace.
`
}

func (c *cacheStatsCmd) SetFlags(f *flag.FlagSet) {}

func (c *cacheStatsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	stats, err := s.Cache().Stats()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%d cached entr(ies)\n", stats.Entries)
	for _, prefix := range stats.Prefixes() {
		fmt.Printf("  %-10s %d\n", prefix, stats.ByPrefix[prefix])
	}
	if stats.Entries > 0 {
		fmt.Printf("oldest: %s\nnewest: %s\n",
			stats.Oldest.Format("2006-01-02 15:04:05"),
			stats.Newest.Format("2006-01-02 15:04:05"))
	}
	return subcommands.ExitSuccess
}

type cacheClearCmd struct {
	prefix string
}

func (*cacheClearCmd) Name() string     { return "cache-clear" }
func (*cacheClearCmd) Synopsis() string { return "drop market-data cache entries" }
func (*cacheClearCmd) Usage() string {
	return `fin cache-clear [-prefix <p>]

  Drops cache entries, all of them or only those under a key prefix
  (price:, fx:, history:, dividends:, events:).
`
}

func (c *cacheClearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prefix, "prefix", "", "only clear keys starting with this prefix")
}

func (c *cacheClearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	s.Cache().Clear(c.prefix)
	if c.prefix == "" {
		fmt.Println("Cache cleared.")
	} else {
		fmt.Printf("Cache entries under %q cleared.\n", c.prefix)
	}
	return subcommands.ExitSuccess
}
