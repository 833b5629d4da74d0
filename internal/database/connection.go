package database

import (
	"fmt"
	"log"

	"rental_erp/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CustomerAddress{},
		&models.VehicleCategory{},
		&models.Vehicle{},
		&models.Location{},
		&models.Reservation{},
		&models.RentalAgreement{},
		&models.Payment{},
		&models.Invoice{},
		&models.PricingRule{},
		&models.MaintenanceSchedule{},
		&models.DamageReport{},
	)
}
