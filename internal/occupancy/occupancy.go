// Package occupancy aggregates persisted bookings and payments into
// the derived calendar and unpaid-balance views.
package occupancy

import (
	"time"

	"kennel-service/internal/model"
	"kennel-service/internal/pricing"
)

// Color buckets for the calendar view, relative to a room's max
// capacity.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// Occupies reports whether the booking occupies its room on the given
// calendar day. A day counts when it lies in [start, end) by calendar
// date. The departure day itself counts only when the stored end
// timestamp carries a non-midnight time component, meaning the dog is
// still present for part of that day. ExemptLastDay removes the final
// day from occupancy as it does from pricing.
func Occupies(b model.Booking, day time.Time) bool {
	d := pricing.DateOnly(day)
	start := pricing.DateOnly(b.StartDate)
	end := pricing.DateOnly(b.EndDate)

	if d.Before(start) {
		return false
	}
	if d.Before(end) {
		return true
	}
	if d.Equal(end) && !b.EndDate.Equal(pricing.DateOnly(b.EndDate)) && !b.ExemptLastDay {
		return true
	}
	return false
}

// Touches is the include-all mode used by the day-detail view: every
// booking whose range reaches the day counts, including same-day
// departures with midnight timestamps.
func Touches(b model.Booking, day time.Time) bool {
	d := pricing.DateOnly(day)
	return !d.Before(pricing.DateOnly(b.StartDate)) && !d.After(pricing.DateOnly(b.EndDate))
}

// RoomLoad is the per-room, per-day occupancy summary
type RoomLoad struct {
	RoomID  uint    `json:"room_id"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Color   Color   `json:"color"`
}

// LoadForRoom counts CONFIRMED bookings occupying the room on the
// given day and buckets the load against the room's max capacity:
// green below 30%, yellow from 30% to below 100%, red at or above
// full.
func LoadForRoom(bookings []model.Booking, room model.Room, day time.Time) RoomLoad {
	count := 0
	for _, b := range bookings {
		if b.RoomID != room.ID || b.Status != model.BookingStatusConfirmed {
			continue
		}
		if Occupies(b, day) {
			count++
		}
	}

	percent := 0.0
	if room.MaxCapacity > 0 {
		percent = float64(count) / float64(room.MaxCapacity) * 100
	}

	color := ColorGreen
	switch {
	case percent >= 100:
		color = ColorRed
	case percent >= 30:
		color = ColorYellow
	}

	return RoomLoad{RoomID: room.ID, Count: count, Percent: percent, Color: color}
}

// Balance is a booking's computed financial position
type Balance struct {
	Total     float64 `json:"total_amount"`
	Paid      float64 `json:"paid_amount"`
	Remaining float64 `json:"remaining_amount"`
}

// BalanceFor nets the booking's computed total against its recorded
// payments. The booking's Payments relation must be loaded.
func BalanceFor(b model.Booking) Balance {
	days := pricing.DayCount(b.StartDate, b.EndDate, b.ExemptLastDay)

	var perDay, total float64
	if b.PricePerDay != nil {
		perDay = *b.PricePerDay
	}
	if b.TotalPrice != nil {
		total = *b.TotalPrice
	}

	computed := pricing.Total(perDay, total, days)

	paid := 0.0
	for _, p := range b.Payments {
		paid += p.Amount
	}

	return Balance{
		Total:     computed,
		Paid:      paid,
		Remaining: pricing.Round2(computed - paid),
	}
}
