package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
)

func TestNewBookingForcesPending(t *testing.T) {
	startAt := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	booking := NewBooking(BookingInput{
		ClientID:  7,
		ServiceID: 3,
		BranchID:  1,
		StartAt:   startAt,
		Notes:     "prefers window seat",
	})

	if booking.Status != models.BookingStatusPending {
		t.Fatalf("expected new booking to be pending, got %q", booking.Status)
	}
	if !booking.StartAt.Equal(startAt) {
		t.Fatalf("expected StartAt preserved, got %v", booking.StartAt)
	}
	if booking.Notes != "prefers window seat" {
		t.Fatalf("expected notes preserved, got %q", booking.Notes)
	}
}

func TestNewBookingWalkInNotesDefault(t *testing.T) {
	booking := NewBooking(BookingInput{ClientID: 1, ServiceID: 1, BranchID: 1, StartAt: time.Now()})
	if booking.Notes != WalkInNotes {
		t.Fatalf("expected walk-in placeholder for empty notes, got %q", booking.Notes)
	}
}

func TestDailyCapBoundary(t *testing.T) {
	if DailyBookingLimit != 100 {
		t.Fatalf("expected daily cap of 100, got %d", DailyBookingLimit)
	}

	cases := []struct {
		existing int64
		want     bool
	}{
		{0, false},
		// 99 existing bookings: the 100th still fits. 100 existing: the
		// 101st is rejected.
		{99, false},
		{100, true},
		{101, true},
	}
	for _, c := range cases {
		if got := dailyCapReached(c.existing); got != c.want {
			t.Errorf("dailyCapReached(%d) = %v, want %v", c.existing, got, c.want)
		}
	}
}

func TestIsDailyLimitViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{ErrDailyLimitReached, true},
		{fmt.Errorf("create failed: %w", ErrDailyLimitReached), true},
		{errors.New("pq: daily_booking_limit exceeded for branch 3"), true},
		{errors.New("pq: duplicate key value violates unique constraint"), false},
		{errors.New("connection refused"), false},
	}
	for _, c := range cases {
		if got := isDailyLimitViolation(c.err); got != c.want {
			t.Errorf("isDailyLimitViolation(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if !ValidBookingStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "done", "Pending", "canceled"} {
		if ValidBookingStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidBookingTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "confirmed", true},
		{"pending", "cancelled", true},
		{"pending", "completed", false},
		{"confirmed", "completed", true},
		{"confirmed", "cancelled", true},
		{"confirmed", "pending", false},
		{"completed", "cancelled", false},
		{"completed", "pending", false},
		{"cancelled", "confirmed", false},
		{"cancelled", "pending", false},
		{"pending", "pending", false},
	}
	for _, c := range cases {
		if got := ValidBookingTransition(c.from, c.to); got != c.want {
			t.Errorf("ValidBookingTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestBookingSlotsWindow(t *testing.T) {
	slots := BookingSlots()

	if len(slots) == 0 {
		t.Fatal("expected at least one slot")
	}
	if slots[0] != "09:00" {
		t.Errorf("expected first slot 09:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "18:00" {
		t.Errorf("expected last slot 18:00, got %s", slots[len(slots)-1])
	}

	// 09:00 through 18:00 inclusive at 30 minutes is 19 slots
	if len(slots) != 19 {
		t.Errorf("expected 19 slots, got %d", len(slots))
	}

	// Strictly increasing, 30 minutes apart
	parse := func(s string) int {
		var h, m int
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			t.Fatalf("bad slot format %q: %v", s, err)
		}
		return h*60 + m
	}
	for i := 1; i < len(slots); i++ {
		prev, cur := parse(slots[i-1]), parse(slots[i])
		if cur-prev != 30 {
			t.Errorf("slots %s -> %s are %d minutes apart, want 30", slots[i-1], slots[i], cur-prev)
		}
	}
}
