package finly

import (
	"math"

	"github.com/aroods/finly/date"
	"github.com/shopspring/decimal"
)

// WithholdingRate is the flat withholding applied to accrued interest and
// dividend income. An approximation, not a tax computation.
const WithholdingRate = 0.19

// BondType distinguishes fixed-rate lots from inflation-indexed ones.
type BondType string

const (
	FixedRate   BondType = "fixed"
	IndexedRate BondType = "indexed"
)

// BondLot is a single purchase of a fixed-income instrument, held to
// maturity. Quantity counts integer face units.
type BondLot struct {
	ID             int64
	Series         string
	Type           BondType
	PurchaseDate   date.Date
	MaturityDate   date.Date
	Quantity       int
	UnitPrice      float64
	FaceValue      float64
	AnnualRate     float64 // percent per annum
	Margin         float64 // percent, applied on top of the index for indexed lots
	IndexRate      float64 // percent, current index reading for indexed lots
	Capitalization bool    // interest compounds instead of accruing linearly
	Notes          string
}

// Principal returns the face amount of the lot.
func (b BondLot) Principal() float64 { return float64(b.Quantity) * b.FaceValue }

// EffectiveRate returns the current annual rate as a ratio. Indexed lots add
// margin and index on top of the base rate.
func (b BondLot) EffectiveRate() float64 {
	rate := b.AnnualRate
	if b.Type == IndexedRate {
		rate += b.Margin + b.IndexRate
	}
	return rate / 100.0
}

// Accrual is the state of a bond lot's interest as of a reference date.
// Money values are rounded to 2 decimal places; the internal math that
// produced them is not.
type Accrual struct {
	DaysHeld      int
	TotalDays     int
	InterestNet   float64 // accrued interest after withholding
	InterestGross float64
	CurrentValue  float64 // principal plus net accrued interest
	EffectiveRate float64 // percent
}

// Accrue computes the accrued interest and current value of a bond lot as
// of a reference date.
//
// Before the purchase date nothing has accrued and the lot is worth its
// principal. Accrual stops at maturity: evaluating past the maturity date
// yields the same result as evaluating on it. Capitalizing lots compound on
// a 365-day year; the rest accrue linearly over the lot's term.
func Accrue(b BondLot, reference date.Date) Accrual {
	principal := b.Principal()
	totalDays := b.MaturityDate.Sub(b.PurchaseDate)
	if totalDays < 1 {
		totalDays = 1
	}

	if reference.Before(b.PurchaseDate) {
		return Accrual{
			TotalDays:     totalDays,
			CurrentValue:  round2(principal),
			EffectiveRate: round2(b.EffectiveRate() * 100),
		}
	}

	daysHeld := reference.Sub(b.PurchaseDate)
	if daysHeld > totalDays {
		daysHeld = totalDays
	}

	rate := b.EffectiveRate()
	var gross float64
	if b.Capitalization {
		gross = principal * (math.Pow(1+rate, float64(daysHeld)/365.0) - 1)
	} else {
		gross = principal * rate * (float64(daysHeld) / float64(totalDays))
	}
	net := gross * (1 - WithholdingRate)

	return Accrual{
		DaysHeld:      daysHeld,
		TotalDays:     totalDays,
		InterestNet:   round2(net),
		InterestGross: round2(gross),
		CurrentValue:  round2(principal + net),
		EffectiveRate: round2(rate * 100),
	}
}

// BondTotals aggregates the accruals of a set of lots as of one date.
type BondTotals struct {
	Value        float64
	AccruedNet   float64
	AccruedGross float64
}

// AccrueAll evaluates every lot as of the reference date and totals the
// results.
func AccrueAll(lots []BondLot, reference date.Date) ([]Accrual, BondTotals) {
	accruals := make([]Accrual, 0, len(lots))
	var totals BondTotals
	for _, lot := range lots {
		a := Accrue(lot, reference)
		accruals = append(accruals, a)
		totals.Value += a.CurrentValue
		totals.AccruedNet += a.InterestNet
		totals.AccruedGross += a.InterestGross
	}
	totals.Value = round2(totals.Value)
	totals.AccruedNet = round2(totals.AccruedNet)
	totals.AccruedGross = round2(totals.AccruedGross)
	return accruals, totals
}

// round2 rounds a money value to 2 decimal places at the output boundary.
func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
