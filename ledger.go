package finly

import (
	"math"
	"sort"
)

// zeroTolerance is the magnitude below which running quantities and costs
// are snapped to exactly zero, to avoid floating point drift accumulating
// over long transaction logs.
const zeroTolerance = 1e-9

// PositionKey identifies one position in the ledger.
type PositionKey struct {
	Asset    string
	Category string
	Currency string
}

// Position is the running state of one (asset, category, currency) position
// derived from the transaction log. All amounts are in the position's own
// currency.
type Position struct {
	Quantity   float64 // net quantity held, never negative
	CostBasis  float64 // total cost of the open quantity
	RealizedPL float64 // profit realized by sells, at weighted-average cost
}

// AverageCost returns the weighted-average cost per unit of the open
// position, or zero for an empty position.
func (p Position) AverageCost() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	return p.CostBasis / p.Quantity
}

func snapZero(x float64) float64 {
	if math.Abs(x) < zeroTolerance {
		return 0
	}
	return x
}

// Summarize replays the transaction log in (date, id) order and returns the
// resulting positions, using weighted-average-cost accounting: the average
// cost is recomputed from the aggregate cost basis after every transaction,
// not from individual purchase lots.
//
// Sells against an empty position are ignored, and sells larger than the
// held quantity are clamped to it, so no position ever goes negative. The
// function is pure: calling it twice on the same log yields identical
// results.
func Summarize(txs []Transaction) map[PositionKey]Position {
	positions := make(map[PositionKey]Position)

	for _, tx := range sortedCopy(txs) {
		key := PositionKey{Asset: tx.Asset, Category: tx.Category, Currency: tx.Currency}
		pos := positions[key]

		switch tx.Side {
		case Buy:
			pos.Quantity += tx.Quantity
			pos.CostBasis += tx.Quantity * tx.Price
		case Sell:
			if pos.Quantity <= 0 {
				// Defensive against bad data: never go short.
				continue
			}
			avg := pos.CostBasis / pos.Quantity
			sold := math.Min(tx.Quantity, pos.Quantity)
			pos.CostBasis -= sold * avg
			pos.Quantity -= sold
			pos.RealizedPL += sold * (tx.Price - avg)
		}

		pos.Quantity = snapZero(pos.Quantity)
		pos.CostBasis = snapZero(pos.CostBasis)
		positions[key] = pos
	}

	return positions
}

// OpenPositions filters a position map down to positions with a positive
// quantity after replay.
func OpenPositions(positions map[PositionKey]Position) map[PositionKey]Position {
	open := make(map[PositionKey]Position)
	for key, pos := range positions {
		if pos.Quantity > 0 {
			open[key] = pos
		}
	}
	return open
}

// sortedKeys returns position keys sorted by asset, then category, then
// currency, for deterministic iteration.
func sortedKeys(positions map[PositionKey]Position) []PositionKey {
	keys := make([]PositionKey, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Asset != keys[j].Asset {
			return keys[i].Asset < keys[j].Asset
		}
		if keys[i].Category != keys[j].Category {
			return keys[i].Category < keys[j].Category
		}
		return keys[i].Currency < keys[j].Currency
	})
	return keys
}
