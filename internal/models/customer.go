package models

import (
	"time"
)

// Customer shares its primary key with the backing User record.
type Customer struct {
	ID                   string     `json:"customer_id" gorm:"primaryKey;type:varchar(36)"`
	CustomerNumber       string     `json:"customer_number" gorm:"unique;not null"`
	DriverLicenseNumber  string     `json:"driver_license_number"`
	DriverLicenseState   string     `json:"driver_license_state"`
	DriverLicenseCountry string     `json:"driver_license_country" gorm:"default:'USA'"`
	DriverLicenseExpiry  *time.Time `json:"driver_license_expiry"`
	PreferredLanguage    string     `json:"preferred_language" gorm:"default:'en'"`
	MarketingOptIn       bool       `json:"marketing_opt_in" gorm:"default:false"`
	LoyaltyProgramMember bool       `json:"loyalty_program_member" gorm:"default:false"`
	LoyaltyPoints        int        `json:"loyalty_points" gorm:"default:0"`
	CustomerSince        time.Time  `json:"customer_since"`
	TotalRentals         int        `json:"total_rentals" gorm:"default:0"`
	TotalSpent           float64    `json:"total_spent" gorm:"default:0"`
	RiskLevel            string     `json:"risk_level" gorm:"default:'low'"`
	Notes                string     `json:"notes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:ID;references:ID"`
}

type CustomerAddress struct {
	ID             string    `json:"address_id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID     string    `json:"customer_id" gorm:"index;not null"`
	AddressType    string    `json:"address_type" gorm:"not null"` // home, work, billing
	StreetAddress1 string    `json:"street_address_1" gorm:"not null"`
	StreetAddress2 string    `json:"street_address_2"`
	City           string    `json:"city" gorm:"not null"`
	StateProvince  string    `json:"state_province"`
	PostalCode     string    `json:"postal_code"`
	Country        string    `json:"country" gorm:"not null"`
	IsPrimary      bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
