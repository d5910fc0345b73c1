package occupancy

import (
	"testing"
	"time"

	"kennel-service/internal/model"
)

func day(t *testing.T, year int, month time.Month, d int) time.Time {
	t.Helper()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func booking(start, end time.Time, status model.BookingStatus, roomID uint) model.Booking {
	return model.Booking{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
}

func TestOccupies_WithinRange(t *testing.T) {
	b := booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1)

	if !Occupies(b, day(t, 2024, 5, 1)) {
		t.Fatal("expected arrival day to be occupied")
	}
	if !Occupies(b, day(t, 2024, 5, 4)) {
		t.Fatal("expected day before departure to be occupied")
	}
}

func TestOccupies_DepartureDayMidnight(t *testing.T) {
	// A midnight end timestamp means the dog left before that day.
	b := booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1)

	if Occupies(b, day(t, 2024, 5, 5)) {
		t.Fatal("expected midnight departure day to be free")
	}
}

func TestOccupies_DepartureDayWithTime(t *testing.T) {
	// A non-midnight end timestamp means the dog is present for part
	// of the departure day.
	end := time.Date(2024, 5, 5, 11, 0, 0, 0, time.UTC)
	b := booking(day(t, 2024, 5, 1), end, model.BookingStatusConfirmed, 1)

	if !Occupies(b, day(t, 2024, 5, 5)) {
		t.Fatal("expected late departure day to be occupied")
	}
}

func TestOccupies_ExemptLastDay(t *testing.T) {
	end := time.Date(2024, 5, 5, 11, 0, 0, 0, time.UTC)
	b := booking(day(t, 2024, 5, 1), end, model.BookingStatusConfirmed, 1)
	b.ExemptLastDay = true

	if Occupies(b, day(t, 2024, 5, 5)) {
		t.Fatal("expected exempt last day to be free even with a late departure")
	}
}

func TestOccupies_OutsideRange(t *testing.T) {
	b := booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1)

	if Occupies(b, day(t, 2024, 4, 30)) {
		t.Fatal("expected day before arrival to be free")
	}
	if Occupies(b, day(t, 2024, 5, 6)) {
		t.Fatal("expected day after departure to be free")
	}
}

func TestTouches_IncludesSameDayDeparture(t *testing.T) {
	b := booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1)

	if !Touches(b, day(t, 2024, 5, 5)) {
		t.Fatal("expected include-all mode to show the departure day")
	}
	if Touches(b, day(t, 2024, 5, 6)) {
		t.Fatal("expected day after departure to be excluded")
	}
}

func TestLoadForRoom_Colors(t *testing.T) {
	room := model.Room{ID: 1, MaxCapacity: 5}
	d := day(t, 2024, 5, 2)

	mk := func(n int) []model.Booking {
		var bs []model.Booking
		for i := 0; i < n; i++ {
			bs = append(bs, booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1))
		}
		return bs
	}

	cases := []struct {
		n       int
		percent float64
		color   Color
	}{
		{1, 20, ColorGreen},
		{2, 40, ColorYellow},
		{5, 100, ColorRed},
	}

	for _, tc := range cases {
		load := LoadForRoom(mk(tc.n), room, d)
		if load.Count != tc.n {
			t.Fatalf("expected count %d, got %d", tc.n, load.Count)
		}
		if load.Percent != tc.percent {
			t.Fatalf("expected %v%%, got %v%%", tc.percent, load.Percent)
		}
		if load.Color != tc.color {
			t.Fatalf("expected color %s at %v%%, got %s", tc.color, tc.percent, load.Color)
		}
	}
}

func TestLoadForRoom_OnlyConfirmedCounts(t *testing.T) {
	room := model.Room{ID: 1, MaxCapacity: 5}
	d := day(t, 2024, 5, 2)

	bs := []model.Booking{
		booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 1),
		booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusPending, 1),
		booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusCancelled, 1),
		booking(day(t, 2024, 5, 1), day(t, 2024, 5, 5), model.BookingStatusConfirmed, 2),
	}

	load := LoadForRoom(bs, room, d)
	if load.Count != 1 {
		t.Fatalf("expected only the confirmed booking in room 1 to count, got %d", load.Count)
	}
}

func TestBalanceFor_Fixed(t *testing.T) {
	total := 500.0
	b := booking(day(t, 2024, 1, 1), day(t, 2024, 1, 5), model.BookingStatusConfirmed, 1)
	b.PriceType = model.PriceTypeFixed
	b.TotalPrice = &total
	b.Payments = []model.Payment{{Amount: 200}, {Amount: 100}}

	bal := BalanceFor(b)
	if bal.Total != 500 || bal.Paid != 300 || bal.Remaining != 200 {
		t.Fatalf("expected 500/300/200, got %v/%v/%v", bal.Total, bal.Paid, bal.Remaining)
	}
}

func TestBalanceFor_DailyWithAgreedTotal(t *testing.T) {
	// A daily booking created with an explicitly agreed total (here a
	// discount off 100/day over 5 days) settles against that total,
	// not against the rate.
	perDay := 100.0
	total := 250.0
	b := booking(day(t, 2024, 1, 1), day(t, 2024, 1, 5), model.BookingStatusConfirmed, 1)
	b.PriceType = model.PriceTypeDaily
	b.PricePerDay = &perDay
	b.TotalPrice = &total
	b.Payments = []model.Payment{{Amount: 250}}

	bal := BalanceFor(b)
	if bal.Total != 250 {
		t.Fatalf("expected agreed total 250, got %v", bal.Total)
	}
	if bal.Remaining != 0 {
		t.Fatalf("expected fully paid booking to owe nothing, got %v", bal.Remaining)
	}
}

func TestBalanceFor_DailyWithExemptLastDay(t *testing.T) {
	perDay := 100.0
	b := booking(day(t, 2024, 1, 1), day(t, 2024, 1, 5), model.BookingStatusConfirmed, 1)
	b.PriceType = model.PriceTypeDaily
	b.PricePerDay = &perDay
	b.ExemptLastDay = true

	bal := BalanceFor(b)
	if bal.Total != 400 {
		t.Fatalf("expected 100*4=400 with exempt last day, got %v", bal.Total)
	}
}
