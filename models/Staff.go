package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StaffMember links a user account to a branch with a salon role.
// Availability is a display status rotated by the staff routes, not a
// schedule-derived value.
type StaffMember struct {
	gorm.Model
	UserID       uint           `json:"userID" gorm:"index;not null"`
	User         User           `json:"user" gorm:"foreignKey:UserID"`
	BranchID     uint           `json:"branchID" gorm:"index;not null"`
	Branch       *Branch        `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Title        string         `json:"title" gorm:"size:64"` // stylist, colorist, barber, therapist
	Specialties  datatypes.JSON `json:"specialties"`          // array of strings
	PhotoURL     string         `json:"photoURL" gorm:"size:512"`
	Availability string         `json:"availability" gorm:"size:16;default:available"` // available, busy, on_break
	IsActive     *bool          `json:"isActive" gorm:"default:true"`
}

func (s *StaffMember) MarshalJSON() ([]byte, error) {
	type Alias StaffMember
	aux := &struct {
		Specialties []string `json:"specialties,omitempty"`
		*Alias
	}{
		Specialties: []string{},
		Alias:       (*Alias)(s),
	}

	if s.Specialties != nil {
		var specialties []string
		if err := json.Unmarshal(s.Specialties, &specialties); err == nil {
			aux.Specialties = specialties
		}
	}

	return json.Marshal(aux)
}
