package date

import (
	"iter"
	"sort"
)

// History stores a chronological series of float64 values, each associated
// with a specific day. Dates are unique and the series is always sorted, so
// it can serve as a historical price series with last-known-value lookups.
type History struct {
	days   []Date
	values []float64
}

// Len returns the number of points in the history.
func (h *History) Len() int { return len(h.days) }

// Clear removes all points from the history.
func (h *History) Clear() {
	h.days = h.days[:0]
	h.values = h.values[:0]
}

// Append adds a point to the history, keeping it sorted. An existing value
// on the same day is overwritten, giving priority to the latest data.
func (h *History) Append(on Date, v float64) *History {
	// Providers return ascending series, so appending at the end is the
	// common case.
	if n := len(h.days); n == 0 || h.days[n-1].Before(on) {
		h.days, h.values = append(h.days, on), append(h.values, v)
		return h
	}
	i := sort.Search(len(h.days), func(i int) bool { return !h.days[i].Before(on) })
	if i < len(h.days) && h.days[i] == on {
		h.values[i] = v
		return h
	}
	h.days = append(h.days[:i], append([]Date{on}, h.days[i:]...)...)
	h.values = append(h.values[:i], append([]float64{v}, h.values[i:]...)...)
	return h
}

// Get returns the value exactly at 'day', if any.
func (h *History) Get(day Date) (float64, bool) {
	i := sort.Search(len(h.days), func(i int) bool { return !h.days[i].Before(day) })
	if i < len(h.days) && h.days[i] == day {
		return h.values[i], true
	}
	return 0, false
}

// AsOf returns the last known value on or before 'day'. It reports false
// when the history starts after 'day' or is empty.
func (h *History) AsOf(day Date) (float64, bool) {
	i := sort.Search(len(h.days), func(i int) bool { return h.days[i].After(day) })
	if i == 0 {
		return 0, false
	}
	return h.values[i-1], true
}

// First returns the earliest date and value in the history.
func (h *History) First() (Date, float64) {
	if len(h.days) == 0 {
		return Date{}, 0
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest date and value in the history.
func (h *History) Latest() (Date, float64) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return h.days[last], h.values[last]
}

// Values returns an iterator over all date/value pairs in chronological
// order.
func (h *History) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}
