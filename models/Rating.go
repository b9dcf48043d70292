package models

import "gorm.io/gorm"

type Rating struct {
	gorm.Model
	ClientID  uint     `json:"clientID" gorm:"not null;index"`
	BranchID  uint     `json:"branchID" gorm:"not null;index"`
	BookingID *uint    `json:"bookingID" gorm:"index"` // link to the visit being rated
	Booking   *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Client    User     `json:"client" gorm:"foreignKey:ClientID"`
	Branch    Branch   `json:"branch" gorm:"foreignKey:BranchID"`
	Stars     int      `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Comment   string   `json:"comment" gorm:"type:text"`
}
