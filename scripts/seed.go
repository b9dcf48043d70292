package main

import (
	"fmt"
	"log"

	"github.com/Allain-afk/GlamQueue-sub000/models"
	"github.com/Allain-afk/GlamQueue-sub000/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo organization with one branch and a starter service menu.
// Safe to re-run: existing rows are left alone.
func main() {
	db := storage.InitializeDB()

	if err := seed(db); err != nil {
		log.Fatalf("Error seeding demo data: %v", err)
	}

	fmt.Println("Demo salon seed completed successfully!")
}

func seed(db *gorm.DB) error {
	var existing models.Organization
	result := db.Where("name = ?", "GlamQueue Demo Salon").Limit(1).Find(&existing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		fmt.Println("Demo organization already exists, skipping")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		owner := models.User{
			FirstName: "Demo",
			LastName:  "Owner",
			Email:     "owner@glamqueue.demo",
			Password:  string(hashed),
			Role:      "admin",
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		org := models.Organization{
			Name:    "GlamQueue Demo Salon",
			Email:   "hello@glamqueue.demo",
			City:    "Manila",
			Country: "PH",
			OwnerID: owner.ID,
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		if err := tx.Model(&owner).Update("organization_id", org.ID).Error; err != nil {
			return err
		}

		branch := models.Branch{
			Name:           "Main Branch",
			Address:        "123 Salon Street",
			City:           "Manila",
			WorkingHours:   []byte(`{"mon-sat": "09:00-18:00"}`),
			OrganizationID: org.ID,
		}
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		menu := []models.Service{
			{BranchID: branch.ID, Name: "Haircut", Price: 350, DurationMinutes: 30, Category: "Hair"},
			{BranchID: branch.ID, Name: "Hair Color", Price: 1500, DurationMinutes: 120, Category: "Hair"},
			{BranchID: branch.ID, Name: "Manicure", Price: 250, DurationMinutes: 45, Category: "Nails"},
			{BranchID: branch.ID, Name: "Pedicure", Price: 300, DurationMinutes: 60, Category: "Nails"},
			{BranchID: branch.ID, Name: "Full Body Massage", Price: 900, DurationMinutes: 90, Category: "Spa"},
		}
		for i := range menu {
			if err := tx.Create(&menu[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
