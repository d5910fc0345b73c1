// Package pricing contains the pure date and price arithmetic for
// bookings: inclusive day counts over calendar dates and total price
// derivation from either a fixed total or a per-day rate.
package pricing

import (
	"math"
	"time"
)

// DateOnly truncates t to its local calendar date, stripping the
// time-of-day component.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayCount computes the inclusive number of calendar days between
// start and end. Both boundaries count, so a same-day booking is one
// day. Rounding the 24h quotient keeps the count stable across
// daylight-saving transitions, where a calendar day is 23 or 25 hours
// long. When exemptLastDay is set the final day is excluded from the
// count.
func DayCount(start, end time.Time, exemptLastDay bool) int {
	diff := DateOnly(end).Sub(DateOnly(start))
	days := int(math.Round(diff.Hours()/24)) + 1
	if exemptLastDay {
		days--
	}
	return days
}

// Total computes the booking total for the given day count. A
// non-zero stored total is authoritative regardless of price type: an
// explicitly agreed total (a discount, a package deal) must survive
// even when a per-day rate is also recorded. Only a zero total falls
// back to pricePerDay * days.
func Total(pricePerDay, totalPrice float64, days int) float64 {
	if totalPrice != 0 {
		return totalPrice
	}
	return pricePerDay * float64(days)
}

// PerDogShare splits an aggregate total evenly across dogCount dogs.
// Each persisted booking row represents one dog, so the stored total
// is the per-dog share, not the aggregate.
func PerDogShare(aggregate float64, dogCount int) float64 {
	if dogCount < 1 {
		dogCount = 1
	}
	return aggregate / float64(dogCount)
}

// Round2 rounds to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
