package database

import (
	"log"
	"time"

	"rental_erp/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the initial admin account and a small fleet catalog on an
// empty database. Existing data is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Email:        "admin@carrental.com",
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Administrator",
		UserType:     models.UserTypeAdmin,
		Status:       models.UserStatusActive,
	}

	categories := []models.VehicleCategory{
		{
			ID:                uuid.NewString(),
			CategoryName:      "Economy",
			CategoryCode:      "ECON",
			Description:       "Compact and fuel efficient",
			BaseDailyRate:     29.99,
			DepositAmount:     200,
			PassengerCapacity: 4,
			LuggageCapacity:   2,
			TransmissionType:  "automatic",
			FuelType:          "gasoline",
			IsActive:          true,
		},
		{
			ID:                uuid.NewString(),
			CategoryName:      "SUV",
			CategoryCode:      "SUV",
			Description:       "Spacious sport utility vehicle",
			BaseDailyRate:     59.99,
			DepositAmount:     400,
			PassengerCapacity: 7,
			LuggageCapacity:   4,
			TransmissionType:  "automatic",
			FuelType:          "gasoline",
			IsActive:          true,
		},
	}

	location := &models.Location{
		ID:               uuid.NewString(),
		LocationCode:     "MAIN",
		LocationName:     "Main Office",
		LocationType:     "downtown",
		StreetAddress:    "123 Main Street",
		City:             "Springfield",
		StateProvince:    "IL",
		PostalCode:       "62701",
		Country:          "USA",
		PhoneNumber:      "+1-555-0100",
		Capacity:         50,
		IsPickupLocation: true,
		IsReturnLocation: true,
		IsActive:         true,
	}
	location.SetOperatingHours(map[string]interface{}{
		"monday-friday": "08:00-20:00",
		"saturday":      "09:00-18:00",
		"sunday":        "10:00-16:00",
	})

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		return tx.Create(location).Error
	})
	if err != nil {
		return err
	}

	log.Println("Seeded admin account, vehicle categories and main location at", time.Now().Format(time.RFC3339))
	return nil
}
