package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is a marketing blast targeted at a slice of the client base.
type Campaign struct {
	gorm.Model
	OrganizationID uint       `json:"organizationID" gorm:"index;not null"`
	Name           string     `json:"name" gorm:"not null"`
	Channel        string     `json:"channel" gorm:"size:16;default:sms"`      // sms, whatsapp, email, push
	Audience       string     `json:"audience" gorm:"size:16;default:all"`     // all, bronze, silver, gold, platinum
	Status         string     `json:"status" gorm:"size:16;default:draft"`     // draft, scheduled, sent
	Message        string     `json:"message" gorm:"type:text;not null"`
	ScheduledAt    *time.Time `json:"scheduledAt"`
	SentAt         *time.Time `json:"sentAt"`
	SentCount      int        `json:"sentCount" gorm:"default:0"`
}
