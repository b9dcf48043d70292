package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. Transitions are monotonic pending -> confirmed -> completed,
// with cancellation reachable from pending or confirmed only
// (see services.ValidBookingTransition). Bookings are never hard-deleted;
// cancellation is a status value.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking models an appointment for a service at a branch.
type Booking struct {
	gorm.Model
	ClientID  uint       `json:"clientID" gorm:"index;not null"`
	ServiceID uint       `json:"serviceID" gorm:"index;not null"`
	BranchID  uint       `json:"branchID" gorm:"index;not null"`
	StaffID   *uint      `json:"staffID" gorm:"index"`
	StartAt   time.Time  `json:"startAt" gorm:"index;not null"`
	EndAt     *time.Time `json:"endAt"`
	Status    string     `json:"status" gorm:"size:16;index;default:pending"`
	Notes     string     `json:"notes" gorm:"type:text"`

	Client  *User        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Service *Service     `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Branch  *Branch      `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Staff   *StaffMember `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
}
