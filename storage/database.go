package storage

import (
	"log"
	"os"

	"github.com/Allain-afk/GlamQueue-sub000/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// BookingHasUpdatedAt reports whether the bookings table carries an updated_at
// column. Resolved once at startup so status updates never have to probe the
// schema per call.
var BookingHasUpdatedAt bool

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.Organization{}, // create tenant table first, everything hangs off it
		&models.User{},
		&models.ClientProfile{},
		&models.Branch{},
		&models.Service{},
		&models.StaffMember{},
		&models.Booking{},
		&models.Rating{},
		&models.Campaign{},
		&models.Subscription{},
		&models.Payment{},
		&models.Notification{},
		&models.AuditLog{},
		&models.Feedback{},
	)

	BookingHasUpdatedAt = db.Migrator().HasColumn(&models.Booking{}, "updated_at")
	if !BookingHasUpdatedAt {
		log.Println("⚠️  bookings table has no updated_at column, status updates will skip it")
	}
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
