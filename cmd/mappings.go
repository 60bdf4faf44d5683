package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/aroods/finly/store"
	"github.com/aroods/finly/twelvedata"
)

type mappingsCmd struct{}

func (*mappingsCmd) Name() string     { return "mappings" }
func (*mappingsCmd) Synopsis() string { return "list symbol mappings" }
func (*mappingsCmd) Usage() string {
	return `fin mappings

  Lists the operator-maintained symbol mappings tried before the built-in
  heuristics.
`
}

func (c *mappingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *mappingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	mappings, err := s.AllMappings()
	if err != nil {
		return fail(err)
	}
	if len(mappings) == 0 {
		fmt.Println("No symbol mappings recorded.")
		return subcommands.ExitSuccess
	}
	for _, m := range mappings {
		state := ""
		if !m.Active {
			state = "  (inactive)"
		}
		fmt.Printf("%-10s %-12s -> %-12s priority %d%s\n", m.Asset, m.Provider, m.Symbol, m.Priority, state)
	}
	return subcommands.ExitSuccess
}

type mappingAddCmd struct {
	asset    string
	provider string
	symbol   string
	priority int
}

func (*mappingAddCmd) Name() string     { return "mapping-add" }
func (*mappingAddCmd) Synopsis() string { return "add a symbol mapping" }
func (*mappingAddCmd) Usage() string {
	return `fin mapping-add -a <asset> -s <provider symbol> [-priority <n>]

  Maps an internal asset symbol to the spelling the provider expects.
  Mappings are tried before any heuristic, lowest priority first.
`
}

func (c *mappingAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "internal asset symbol")
	f.StringVar(&c.provider, "provider", twelvedata.Name, "provider the mapping applies to")
	f.StringVar(&c.symbol, "s", "", "symbol the provider understands")
	f.IntVar(&c.priority, "priority", 0, "resolution priority, lowest first")
}

func (c *mappingAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.symbol == "" {
		return fail(fmt.Errorf("-a and -s are required"))
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	err = s.AddMapping(store.SymbolMapping{
		Asset:    c.asset,
		Provider: c.provider,
		Symbol:   c.symbol,
		Priority: c.priority,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Mapped %s -> %s for %s.\n", c.asset, c.symbol, c.provider)
	return subcommands.ExitSuccess
}
