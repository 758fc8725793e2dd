package analysis

import (
	"sort"
	"time"

	"earnings-analyzer/internal/types"
)

// Forward horizons measured in calendar days, approximating one week,
// one month, and three months.
const (
	horizon1Week  = 7
	horizon1Month = 30
	horizon3Month = 90
)

// AlignPrices resolves the closing price as of the anchor date and the
// next available closing price at or after each forward horizon. The
// series is sorted by date first, so irregular trading calendars
// (weekends, holidays) resolve to the nearest qualifying session. An
// empty series, or one with no qualifying point for a field, yields a
// nil for that field.
func AlignPrices(series []types.PricePoint, anchor time.Time) types.PriceWindow {
	var window types.PriceWindow
	if len(series) == 0 {
		return window
	}

	sorted := make([]types.PricePoint, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	window.PriceAtCall = lastCloseAtOrBefore(sorted, anchor)
	window.Price1Week = firstCloseAtOrAfter(sorted, anchor.AddDate(0, 0, horizon1Week))
	window.Price1Month = firstCloseAtOrAfter(sorted, anchor.AddDate(0, 0, horizon1Month))
	window.Price3Month = firstCloseAtOrAfter(sorted, anchor.AddDate(0, 0, horizon3Month))
	return window
}

// lastCloseAtOrBefore returns the close of the latest point dated at or
// before target, or nil if every point is later.
func lastCloseAtOrBefore(sorted []types.PricePoint, target time.Time) *float64 {
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Date.After(target)
	})
	if idx == 0 {
		return nil
	}
	close := sorted[idx-1].Close
	return &close
}

// firstCloseAtOrAfter returns the close of the earliest point dated at
// or after target, or nil if the series ends before target.
func firstCloseAtOrAfter(sorted []types.PricePoint, target time.Time) *float64 {
	idx := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].Date.Before(target)
	})
	if idx == len(sorted) {
		return nil
	}
	close := sorted[idx].Close
	return &close
}
