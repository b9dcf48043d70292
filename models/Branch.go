package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Branch is a physical salon location offering services.
type Branch struct {
	gorm.Model
	Name           string         `json:"name" gorm:"not null"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Phone          string         `json:"phone"`
	WorkingHours   datatypes.JSON `json:"workingHours"` // weekday -> "09:00-18:00"
	Photos         datatypes.JSON `json:"photos"`       // array of image URLs
	IsOpen         *bool          `json:"isOpen" gorm:"default:true"`
	Rating         float64        `json:"rating" gorm:"default:0"` // aggregated from ratings
	OrganizationID uint           `json:"organizationID" gorm:"index;not null"`

	Services []Service     `json:"services,omitempty" gorm:"foreignKey:BranchID"`
	Staff    []StaffMember `json:"staff,omitempty" gorm:"foreignKey:BranchID"`
}

func (b *Branch) MarshalJSON() ([]byte, error) {
	type Alias Branch
	aux := &struct {
		Photos []string `json:"photos,omitempty"`
		*Alias
	}{
		Photos: []string{},
		Alias:  (*Alias)(b),
	}

	if b.Photos != nil {
		var photos []string
		if err := json.Unmarshal(b.Photos, &photos); err == nil {
			aux.Photos = photos
		}
	}

	return json.Marshal(aux)
}
