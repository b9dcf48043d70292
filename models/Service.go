package models

import "gorm.io/gorm"

// Service is a bookable salon treatment owned by a branch.
type Service struct {
	gorm.Model
	BranchID        uint    `json:"branchID" gorm:"index;not null"`
	Branch          *Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Name            string  `json:"name" gorm:"not null"`
	Description     string  `json:"description" gorm:"type:text"`
	Price           float64 `json:"price" gorm:"not null"`
	DurationMinutes int     `json:"durationMinutes" gorm:"default:30"`
	Category        string  `json:"category" gorm:"size:64;default:'General';index"`
	IsActive        *bool   `json:"isActive" gorm:"default:true"`
}
