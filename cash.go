package finly

import (
	"sort"
	"time"
)

// CashDeposit records the absolute cash balance at a point in time. Delta
// is the change against the previous state, recomputed over the whole
// history whenever an entry is added or edited.
type CashDeposit struct {
	ID        int64
	CreatedAt time.Time
	Amount    float64
	Delta     float64
	Note      string
}

// RecomputeCashDeltas rewrites every deposit's delta as the difference to
// the previous balance, in (created_at, id) order. The first entry's delta
// is its full amount.
func RecomputeCashDeltas(deposits []CashDeposit) {
	sort.SliceStable(deposits, func(i, j int) bool {
		if !deposits[i].CreatedAt.Equal(deposits[j].CreatedAt) {
			return deposits[i].CreatedAt.Before(deposits[j].CreatedAt)
		}
		return deposits[i].ID < deposits[j].ID
	})
	previous := 0.0
	for i := range deposits {
		deposits[i].Delta = deposits[i].Amount - previous
		previous = deposits[i].Amount
	}
}

// CurrentCash returns the most recent balance, or zero with no history.
func CurrentCash(deposits []CashDeposit) float64 {
	if len(deposits) == 0 {
		return 0
	}
	latest := deposits[0]
	for _, d := range deposits[1:] {
		if d.CreatedAt.After(latest.CreatedAt) ||
			(d.CreatedAt.Equal(latest.CreatedAt) && d.ID > latest.ID) {
			latest = d
		}
	}
	return latest.Amount
}
