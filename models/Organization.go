package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization is the tenant boundary: one salon business owning branches,
// staff and campaigns. Every admin-facing query is scoped to one of these.
type Organization struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`

	// Status
	Status   string `json:"status" gorm:"default:'active'"` // active, suspended, closed
	IsActive bool   `json:"isActive" gorm:"default:true"`

	// Owner Information
	OwnerID uint `json:"ownerID" gorm:"not null"`
	Owner   User `json:"owner" gorm:"foreignKey:OwnerID"`

	// Timestamps
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`

	// Relationships
	Branches      []Branch       `json:"branches,omitempty" gorm:"foreignKey:OrganizationID"`
	Subscriptions []Subscription `json:"subscriptions,omitempty" gorm:"foreignKey:OrganizationID"`
}

// Subscription tracks the plan an organization is on.
type Subscription struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	OrganizationID uint         `json:"organizationID" gorm:"index;not null"`
	Organization   Organization `json:"-" gorm:"foreignKey:OrganizationID"`
	Plan           string       `json:"plan" gorm:"size:32;default:'starter'"` // starter, pro, enterprise
	Status         string       `json:"status" gorm:"size:16;default:'active'"` // active, past_due, cancelled
	StartedAt      time.Time    `json:"startedAt"`
	RenewsAt       *time.Time   `json:"renewsAt"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Payment is a plain ledger record for a subscription charge. Processing
// happens outside this server; only the outcome lands here.
type Payment struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organizationID" gorm:"index;not null"`
	SubscriptionID *uint     `json:"subscriptionID" gorm:"index"`
	Amount         float64   `json:"amount" gorm:"not null"`
	Currency       string    `json:"currency" gorm:"size:8;default:'USD'"`
	Method         string    `json:"method" gorm:"size:32"` // card, transfer, cash
	Status         string    `json:"status" gorm:"size:16;default:'pending'"` // pending, paid, failed, refunded
	Reference      string    `json:"reference" gorm:"size:128;index"`
	CreatedAt      time.Time `json:"createdAt"`
}
