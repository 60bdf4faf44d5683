package finly

import (
	"testing"
	"time"
)

func deposit(id int64, day string, amount float64) CashDeposit {
	created, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return CashDeposit{ID: id, CreatedAt: created, Amount: amount}
}

func TestRecomputeCashDeltas(t *testing.T) {
	deposits := []CashDeposit{
		deposit(3, "2024-03-01", 800),
		deposit(1, "2024-01-01", 1000),
		deposit(2, "2024-02-01", 1500),
	}
	RecomputeCashDeltas(deposits)

	wants := []struct {
		id    int64
		delta float64
	}{
		{1, 1000}, // first entry: full amount
		{2, 500},
		{3, -700},
	}
	for i, want := range wants {
		if deposits[i].ID != want.id || deposits[i].Delta != want.delta {
			t.Errorf("deposits[%d] = id %d delta %v, want id %d delta %v",
				i, deposits[i].ID, deposits[i].Delta, want.id, want.delta)
		}
	}
}

func TestRecomputeCashDeltasSameTimestamp(t *testing.T) {
	// Equal timestamps order by id.
	deposits := []CashDeposit{
		deposit(2, "2024-01-01", 200),
		deposit(1, "2024-01-01", 100),
	}
	RecomputeCashDeltas(deposits)

	if deposits[0].ID != 1 || deposits[0].Delta != 100 {
		t.Errorf("deposits[0] = %+v, want id 1 delta 100", deposits[0])
	}
	if deposits[1].ID != 2 || deposits[1].Delta != 100 {
		t.Errorf("deposits[1] = %+v, want id 2 delta 100", deposits[1])
	}
}

func TestCurrentCash(t *testing.T) {
	deposits := []CashDeposit{
		deposit(1, "2024-01-01", 1000),
		deposit(3, "2024-03-01", 800),
		deposit(2, "2024-02-01", 1500),
	}
	if got := CurrentCash(deposits); got != 800 {
		t.Errorf("CurrentCash = %v, want latest balance 800", got)
	}
	if got := CurrentCash(nil); got != 0 {
		t.Errorf("CurrentCash(nil) = %v, want 0", got)
	}
}
