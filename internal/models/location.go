package models

import (
	"encoding/json"
	"time"
)

type Location struct {
	ID               string    `json:"location_id" gorm:"primaryKey;type:varchar(36)"`
	LocationCode     string    `json:"location_code" gorm:"unique;not null"`
	LocationName     string    `json:"location_name" gorm:"not null"`
	LocationType     string    `json:"location_type" gorm:"not null"` // airport, downtown, suburban
	StreetAddress    string    `json:"street_address" gorm:"not null"`
	City             string    `json:"city" gorm:"not null"`
	StateProvince    string    `json:"state_province"`
	PostalCode       string    `json:"postal_code"`
	Country          string    `json:"country" gorm:"not null"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	PhoneNumber      string    `json:"phone_number"`
	OperatingHours   string    `json:"-" gorm:"type:text"` // JSON blob, see OperatingHoursMap
	Capacity         int       `json:"capacity" gorm:"default:0"`
	IsPickupLocation bool      `json:"is_pickup_location" gorm:"default:true"`
	IsReturnLocation bool      `json:"is_return_location" gorm:"default:true"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OperatingHoursMap decodes the stored operating-hours JSON. Malformed or
// empty data yields an empty map.
func (l *Location) OperatingHoursMap() map[string]interface{} {
	hours := map[string]interface{}{}
	if l.OperatingHours == "" {
		return hours
	}
	if err := json.Unmarshal([]byte(l.OperatingHours), &hours); err != nil {
		return map[string]interface{}{}
	}
	return hours
}

func (l *Location) SetOperatingHours(hours map[string]interface{}) error {
	data, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	l.OperatingHours = string(data)
	return nil
}

// MarshalJSON inlines the decoded operating hours into the location payload.
func (l Location) MarshalJSON() ([]byte, error) {
	type alias Location
	return json.Marshal(struct {
		alias
		OperatingHours map[string]interface{} `json:"operating_hours"`
	}{
		alias:          alias(l),
		OperatingHours: l.OperatingHoursMap(),
	})
}
