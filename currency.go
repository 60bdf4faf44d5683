package finly

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// ValidateCurrency checks a currency code against the ISO registry.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// FormatMoney renders an amount with its currency's conventional symbol
// and fraction digits, for reports.
func FormatMoney(amount float64, code string) string {
	if money.GetCurrency(code) == nil {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	return money.NewFromFloat(amount, code).Display()
}
