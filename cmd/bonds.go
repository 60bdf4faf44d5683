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

type bondsCmd struct{}

func (*bondsCmd) Name() string     { return "bonds" }
func (*bondsCmd) Synopsis() string { return "list bond lots with accrued interest" }
func (*bondsCmd) Usage() string {
	return `fin bonds

  Lists every bond lot with its interest accrued through today.
`
}

func (c *bondsCmd) SetFlags(f *flag.FlagSet) {}

func (c *bondsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	lots, err := s.Bonds()
	if err != nil {
		return fail(err)
	}
	accruals, totals := finly.AccrueAll(lots, date.Today())
	printMarkdown(renderer.BondsMarkdown(lots, accruals, totals, *baseCurrency))
	return subcommands.ExitSuccess
}

type bondAddCmd struct {
	series         string
	bondType       string
	purchase       string
	maturity       string
	quantity       int
	faceValue      float64
	unitPrice      float64
	rate           float64
	margin         float64
	index          float64
	capitalization bool
	notes          string
}

func (*bondAddCmd) Name() string     { return "bond-add" }
func (*bondAddCmd) Synopsis() string { return "record a bond lot" }
func (*bondAddCmd) Usage() string {
	return `fin bond-add -series <name> -purchase <date> -maturity <date> -q <n> -rate <pct> [options]

  Records a bond lot held to maturity. Indexed lots take -margin and -index
  on top of the base rate; -cap switches to daily compounding.
`
}

func (c *bondAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.series, "series", "", "bond series name (e.g. EDO0129)")
	f.StringVar(&c.bondType, "type", string(finly.FixedRate), "lot type: fixed or indexed")
	f.StringVar(&c.purchase, "purchase", "", "purchase date (YYYY-MM-DD)")
	f.StringVar(&c.maturity, "maturity", "", "maturity date (YYYY-MM-DD)")
	f.IntVar(&c.quantity, "q", 0, "number of face units")
	f.Float64Var(&c.faceValue, "face", 100, "face value per unit")
	f.Float64Var(&c.unitPrice, "price", 100, "purchase price per unit")
	f.Float64Var(&c.rate, "rate", 0, "annual rate in percent")
	f.Float64Var(&c.margin, "margin", 0, "margin in percent (indexed lots)")
	f.Float64Var(&c.index, "index", 0, "current index reading in percent (indexed lots)")
	f.BoolVar(&c.capitalization, "cap", false, "interest compounds instead of accruing linearly")
	f.StringVar(&c.notes, "notes", "", "free-form note")
}

func (c *bondAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.series == "" || c.quantity <= 0 {
		return fail(fmt.Errorf("-series and a positive -q are required"))
	}
	purchase, err := date.Parse(c.purchase)
	if err != nil {
		return fail(fmt.Errorf("invalid -purchase: %w", err))
	}
	maturity, err := date.Parse(c.maturity)
	if err != nil {
		return fail(fmt.Errorf("invalid -maturity: %w", err))
	}
	if maturity.Before(purchase) {
		return fail(fmt.Errorf("maturity %s is before purchase %s", maturity, purchase))
	}
	bondType := finly.BondType(c.bondType)
	if bondType != finly.FixedRate && bondType != finly.IndexedRate {
		return fail(fmt.Errorf("unknown bond type %q", c.bondType))
	}

	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	id, err := s.AddBond(finly.BondLot{
		Series:         c.series,
		Type:           bondType,
		PurchaseDate:   purchase,
		MaturityDate:   maturity,
		Quantity:       c.quantity,
		UnitPrice:      c.unitPrice,
		FaceValue:      c.faceValue,
		AnnualRate:     c.rate,
		Margin:         c.margin,
		IndexRate:      c.index,
		Capitalization: c.capitalization,
		Notes:          c.notes,
	})
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded bond lot #%d: %s %d x %.2f\n", id, c.series, c.quantity, c.faceValue)
	return subcommands.ExitSuccess
}
