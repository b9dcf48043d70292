package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientProfile holds the salon-facing details for a user with role=client.
// Visit counts, spend and loyalty tier are derived from booking history on
// every read (see services.ClientTier) and are deliberately not persisted here.
type ClientProfile struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;uniqueIndex"`
	User   User `json:"user" gorm:"foreignKey:UserID"`

	Birthday    *time.Time     `json:"birthday"`
	Anniversary *time.Time     `json:"anniversary"`
	Notes       string         `json:"notes" gorm:"type:text"`
	Preferences datatypes.JSON `json:"preferences"` // array of strings, e.g. preferred stylists

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}

func (cp *ClientProfile) MarshalJSON() ([]byte, error) {
	type Alias ClientProfile
	aux := &struct {
		Preferences []string `json:"preferences,omitempty"`
		*Alias
	}{
		Preferences: []string{},
		Alias:       (*Alias)(cp),
	}

	if cp.Preferences != nil {
		var preferences []string
		if err := json.Unmarshal(cp.Preferences, &preferences); err == nil {
			aux.Preferences = preferences
		}
	}

	return json.Marshal(aux)
}
