package finly

import "testing"

func TestValidateCurrency(t *testing.T) {
	for _, code := range []string{"PLN", "EUR", "USD", "GBP"} {
		if err := ValidateCurrency(code); err != nil {
			t.Errorf("ValidateCurrency(%s) = %v", code, err)
		}
	}
	if err := ValidateCurrency(""); err == nil {
		t.Error("ValidateCurrency(\"\") = nil, want error")
	}
}

func TestFormatMoneyFallback(t *testing.T) {
	if got := FormatMoney(12.5, "???"); got != "12.50 ???" {
		t.Errorf("FormatMoney fallback = %q", got)
	}
}
