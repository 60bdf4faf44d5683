package finly

import (
	"math"
	"testing"

	"github.com/aroods/finly/date"
)

func fixedLot() BondLot {
	return BondLot{
		Series:       "EDO0129",
		Type:         FixedRate,
		PurchaseDate: date.MustParse("2024-01-01"),
		MaturityDate: date.MustParse("2029-01-01"),
		Quantity:     1,
		FaceValue:    1000,
		AnnualRate:   5.0,
	}
}

func TestAccrueLinear(t *testing.T) {
	// 182 days into a 1826-day term at 5% on 1000 face.
	a := Accrue(fixedLot(), date.MustParse("2024-07-01"))

	if a.DaysHeld != 182 {
		t.Errorf("DaysHeld = %d, want 182", a.DaysHeld)
	}
	if a.TotalDays != 1826 {
		t.Errorf("TotalDays = %d, want 1826", a.TotalDays)
	}
	wantGross := round2(1000 * 0.05 * 182.0 / 1826.0)
	if a.InterestGross != wantGross {
		t.Errorf("InterestGross = %v, want %v", a.InterestGross, wantGross)
	}
	wantNet := round2(1000 * 0.05 * 182.0 / 1826.0 * 0.81)
	if a.InterestNet != wantNet {
		t.Errorf("InterestNet = %v, want %v", a.InterestNet, wantNet)
	}
	if a.CurrentValue != round2(1000+1000*0.05*182.0/1826.0*0.81) {
		t.Errorf("CurrentValue = %v", a.CurrentValue)
	}
	if a.EffectiveRate != 5.0 {
		t.Errorf("EffectiveRate = %v, want 5", a.EffectiveRate)
	}
}

func TestAccrueCompound(t *testing.T) {
	lot := fixedLot()
	lot.Capitalization = true

	// 2024 is a leap year, so 366 days of daily compounding on a 365-day
	// base.
	a := Accrue(lot, date.MustParse("2025-01-01"))
	wantGross := round2(1000 * (math.Pow(1.05, 366.0/365.0) - 1))
	if a.InterestGross != wantGross {
		t.Errorf("InterestGross = %v, want %v", a.InterestGross, wantGross)
	}
}

func TestAccrueIndexedRate(t *testing.T) {
	lot := fixedLot()
	lot.Type = IndexedRate
	lot.AnnualRate = 2.0
	lot.Margin = 1.5
	lot.IndexRate = 4.0

	if got := lot.EffectiveRate(); math.Abs(got-0.075) > 1e-12 {
		t.Errorf("EffectiveRate = %v, want 0.075", got)
	}
	a := Accrue(lot, date.MustParse("2024-07-01"))
	if a.EffectiveRate != 7.5 {
		t.Errorf("Accrual.EffectiveRate = %v, want 7.5", a.EffectiveRate)
	}
}

func TestAccrueBeforePurchase(t *testing.T) {
	a := Accrue(fixedLot(), date.MustParse("2023-12-31"))

	if a.DaysHeld != 0 || a.InterestGross != 0 || a.InterestNet != 0 {
		t.Errorf("pre-purchase accrual = %+v, want zero interest", a)
	}
	if a.CurrentValue != 1000 {
		t.Errorf("CurrentValue = %v, want principal 1000", a.CurrentValue)
	}
}

func TestAccrueStopsAtMaturity(t *testing.T) {
	atMaturity := Accrue(fixedLot(), date.MustParse("2029-01-01"))
	past := Accrue(fixedLot(), date.MustParse("2032-06-15"))

	if atMaturity != past {
		t.Errorf("accrual past maturity %+v differs from at maturity %+v", past, atMaturity)
	}
	if atMaturity.DaysHeld != atMaturity.TotalDays {
		t.Errorf("DaysHeld = %d, want TotalDays %d", atMaturity.DaysHeld, atMaturity.TotalDays)
	}
	if atMaturity.InterestGross != 50.0 {
		t.Errorf("InterestGross at maturity = %v, want 50", atMaturity.InterestGross)
	}
}

func TestAccrueMonotonic(t *testing.T) {
	lot := fixedLot()
	prev := -1.0
	for day := lot.PurchaseDate; !day.After(lot.MaturityDate); day = day.Add(30) {
		a := Accrue(lot, day)
		if a.InterestGross < prev {
			t.Fatalf("gross interest decreased at %s: %v < %v", day, a.InterestGross, prev)
		}
		prev = a.InterestGross
	}
}

func TestAccrueSameDayMaturity(t *testing.T) {
	lot := fixedLot()
	lot.MaturityDate = lot.PurchaseDate

	a := Accrue(lot, lot.PurchaseDate)
	if a.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1", a.TotalDays)
	}
	if a.InterestGross != 0 {
		t.Errorf("InterestGross = %v, want 0 on day zero", a.InterestGross)
	}
}

func TestAccrueAllTotals(t *testing.T) {
	lots := []BondLot{fixedLot(), fixedLot()}
	accruals, totals := AccrueAll(lots, date.MustParse("2024-07-01"))

	if len(accruals) != 2 {
		t.Fatalf("len(accruals) = %d, want 2", len(accruals))
	}
	wantNet := round2(accruals[0].InterestNet + accruals[1].InterestNet)
	if totals.AccruedNet != wantNet {
		t.Errorf("AccruedNet = %v, want %v", totals.AccruedNet, wantNet)
	}
	wantValue := round2(accruals[0].CurrentValue + accruals[1].CurrentValue)
	if totals.Value != wantValue {
		t.Errorf("Value = %v, want %v", totals.Value, wantValue)
	}
}
