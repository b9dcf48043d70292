package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"

	"gorm.io/gorm"
)

const (
	// DailyBookingLimit is the fixed cap of bookings a branch accepts per
	// calendar day. The database enforces the same cap in a trigger when
	// deployed against the hosted schema; the transaction below keeps the
	// behavior when it is not installed.
	DailyBookingLimit = 100

	// WalkInNotes is the placeholder stored when a booking arrives without notes.
	WalkInNotes = "Walk-in appointment"
)

var (
	ErrDailyLimitReached = errors.New("daily booking limit reached for this branch")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// BookingInput carries everything needed to create a booking. Status is
// deliberately absent: new bookings always start as pending.
type BookingInput struct {
	ClientID  uint
	ServiceID uint
	BranchID  uint
	StaffID   *uint
	StartAt   time.Time
	Notes     string
}

// NewBooking builds the row for a booking request. Status is forced to
// pending regardless of caller intent and empty notes default to the
// walk-in placeholder.
func NewBooking(input BookingInput) models.Booking {
	notes := input.Notes
	if notes == "" {
		notes = WalkInNotes
	}
	return models.Booking{
		ClientID:  input.ClientID,
		ServiceID: input.ServiceID,
		BranchID:  input.BranchID,
		StaffID:   input.StaffID,
		StartAt:   input.StartAt,
		Status:    models.BookingStatusPending,
		Notes:     notes,
	}
}

// CreateBooking inserts a pending booking, enforcing the per-branch daily cap
// inside the transaction. ErrDailyLimitReached is returned when the cap is hit
// so callers can prompt for another date; every other failure propagates
// unchanged.
func CreateBooking(input BookingInput) (*models.Booking, error) {
	booking := NewBooking(input)

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		// The referenced service must exist; its duration gives us the end time.
		var service models.Service
		if err := tx.First(&service, input.ServiceID).Error; err != nil {
			return err
		}

		dayStart := time.Date(input.StartAt.Year(), input.StartAt.Month(), input.StartAt.Day(), 0, 0, 0, 0, input.StartAt.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		var count int64
		if err := tx.Model(&models.Booking{}).
			Where("branch_id = ? AND start_at >= ? AND start_at < ?", input.BranchID, dayStart, dayEnd).
			Count(&count).Error; err != nil {
			return err
		}
		if dailyCapReached(count) {
			return ErrDailyLimitReached
		}

		if service.DurationMinutes > 0 {
			endAt := input.StartAt.Add(time.Duration(service.DurationMinutes) * time.Minute)
			booking.EndAt = &endAt
		}

		return tx.Create(&booking).Error
	})

	if err != nil {
		if isDailyLimitViolation(err) {
			return nil, ErrDailyLimitReached
		}
		return nil, err
	}

	return &booking, nil
}

// dailyCapReached reports whether a branch already holds a full day of
// bookings: the count of existing bookings for the day admits no more once it
// reaches the cap.
func dailyCapReached(count int64) bool {
	return count >= DailyBookingLimit
}

// isDailyLimitViolation recognizes both our own sentinel and the named error
// the hosted database raises from its insert trigger.
func isDailyLimitViolation(err error) bool {
	if errors.Is(err, ErrDailyLimitReached) {
		return true
	}
	return strings.Contains(err.Error(), "daily_booking_limit")
}

// ValidBookingStatus reports whether s is one of the four booking statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
		return true
	}
	return false
}

// ValidBookingTransition enforces the monotonic lifecycle:
// pending -> confirmed -> completed, with cancellation allowed from pending
// or confirmed only. Completed and cancelled are terminal.
func ValidBookingTransition(from, to string) bool {
	switch from {
	case models.BookingStatusPending:
		return to == models.BookingStatusConfirmed || to == models.BookingStatusCancelled
	case models.BookingStatusConfirmed:
		return to == models.BookingStatusCompleted || to == models.BookingStatusCancelled
	}
	return false
}

// UpdateBookingStatus moves a booking to the target status, rejecting invalid
// transitions. Whether updated_at is written was resolved once at startup
// (storage.BookingHasUpdatedAt), never re-probed here.
func UpdateBookingStatus(bookingID uint, status string) (*models.Booking, error) {
	if !ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var booking models.Booking
	if err := storage.DB.First(&booking, bookingID).Error; err != nil {
		return nil, err
	}

	if !ValidBookingTransition(booking.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	var err error
	if storage.BookingHasUpdatedAt {
		err = storage.DB.Model(&booking).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
	} else {
		err = storage.DB.Model(&booking).UpdateColumn("status", status).Error
	}
	if err != nil {
		return nil, err
	}

	booking.Status = status
	return &booking, nil
}

// Slot window: fixed business hours at 30-minute granularity.
const (
	slotOpenHour    = 9
	slotCloseHour   = 18
	slotStepMinutes = 30
)

// BookingSlots returns the candidate appointment times for a day as "HH:MM"
// strings, 09:00 through 18:00 inclusive. Deterministic, no side effects.
func BookingSlots() []string {
	var slots []string
	for minutes := slotOpenHour * 60; minutes <= slotCloseHour*60; minutes += slotStepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return slots
}
