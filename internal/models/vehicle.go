package models

import (
	"time"
)

type VehicleCategory struct {
	ID                string    `json:"category_id" gorm:"primaryKey;type:varchar(36)"`
	CategoryName      string    `json:"category_name" gorm:"unique;not null"`
	CategoryCode      string    `json:"category_code" gorm:"unique;not null"`
	Description       string    `json:"description"`
	BaseDailyRate     float64   `json:"base_daily_rate" gorm:"not null"`
	BaseHourlyRate    float64   `json:"base_hourly_rate"`
	MileageRate       float64   `json:"mileage_rate"`
	DepositAmount     float64   `json:"deposit_amount" gorm:"not null"`
	PassengerCapacity int       `json:"passenger_capacity" gorm:"not null"`
	LuggageCapacity   int       `json:"luggage_capacity"`
	TransmissionType  string    `json:"transmission_type"`
	FuelType          string    `json:"fuel_type"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "available"
	VehicleRented       VehicleStatus = "rented"
	VehicleMaintenance  VehicleStatus = "maintenance"
	VehicleOutOfService VehicleStatus = "out_of_service"
)

type Vehicle struct {
	ID                    string        `json:"vehicle_id" gorm:"primaryKey;type:varchar(36)"`
	VehicleNumber         string        `json:"vehicle_number" gorm:"unique;not null"`
	LicensePlate          string        `json:"license_plate" gorm:"unique;not null"`
	VIN                   string        `json:"vin" gorm:"column:vin;unique;not null"`
	CategoryID            string        `json:"category_id" gorm:"index;not null"`
	Make                  string        `json:"make" gorm:"not null"`
	Model                 string        `json:"model" gorm:"not null"`
	Year                  int           `json:"year" gorm:"not null"`
	Color                 string        `json:"color"`
	FuelCapacity          float64       `json:"fuel_capacity"`
	CurrentMileage        int           `json:"current_mileage" gorm:"default:0"`
	CurrentLocationID     *string       `json:"current_location_id" gorm:"index"`
	Status                VehicleStatus `json:"status" gorm:"default:'available';index"`
	ConditionRating       int           `json:"condition_rating"`
	LastServiceDate       *time.Time    `json:"last_service_date"`
	NextServiceDueMileage int           `json:"next_service_due_mileage"`
	InsurancePolicyNumber string        `json:"insurance_policy_number"`
	InsuranceExpiry       *time.Time    `json:"insurance_expiry"`
	RegistrationExpiry    *time.Time    `json:"registration_expiry"`
	IsActive              bool          `json:"is_active" gorm:"default:true"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`

	Category *VehicleCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
