package models

import (
	"time"
)

type MaintenanceSchedule struct {
	ID                 string     `json:"schedule_id" gorm:"primaryKey;type:varchar(36)"`
	VehicleID          string     `json:"vehicle_id" gorm:"index;not null"`
	ServiceType        string     `json:"service_type" gorm:"not null"`
	ScheduledDate      time.Time  `json:"scheduled_date" gorm:"not null"`
	ScheduledMileage   int        `json:"scheduled_mileage"`
	EstimatedCost      float64    `json:"estimated_cost"`
	ActualCost         float64    `json:"actual_cost"`
	Status             string     `json:"status" gorm:"default:'scheduled';index"` // scheduled, in_progress, completed, cancelled
	CompletionDate     *time.Time `json:"completion_date"`
	CompletionMileage  int        `json:"completion_mileage"`
	ServiceNotes       string     `json:"service_notes"`
	NextServiceDate    *time.Time `json:"next_service_date"`
	NextServiceMileage int        `json:"next_service_mileage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

const (
	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in_progress"
	MaintenanceCompleted  = "completed"
	MaintenanceCancelled  = "cancelled"
)

// IsOverdue reports whether an open schedule has slipped past its date.
func (m *MaintenanceSchedule) IsOverdue(now time.Time) bool {
	if m.Status == MaintenanceCompleted || m.Status == MaintenanceCancelled {
		return false
	}
	return m.ScheduledDate.Before(now.Truncate(24 * time.Hour))
}

type DamageReport struct {
	ID                   string    `json:"report_id" gorm:"primaryKey;type:varchar(36)"`
	VehicleID            string    `json:"vehicle_id" gorm:"index;not null"`
	ReservationID        *string   `json:"reservation_id" gorm:"index"`
	ReportedBy           string    `json:"reported_by" gorm:"not null"`
	IncidentDate         time.Time `json:"incident_date" gorm:"not null"`
	DamageType           string    `json:"damage_type" gorm:"not null"`     // collision, scratch, mechanical, interior
	DamageSeverity       string    `json:"damage_severity" gorm:"not null"` // minor, moderate, major, total_loss
	DamageDescription    string    `json:"damage_description" gorm:"type:text;not null"`
	EstimatedRepairCost  float64   `json:"estimated_repair_cost"`
	ActualRepairCost     float64   `json:"actual_repair_cost"`
	InsuranceClaimNumber string    `json:"insurance_claim_number"`
	IsCustomerFault      bool      `json:"is_customer_fault" gorm:"default:false"`
	Status               string    `json:"status" gorm:"default:'reported';index"` // reported, assessed, repairing, completed
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

const (
	DamageReported  = "reported"
	DamageAssessed  = "assessed"
	DamageRepairing = "repairing"
	DamageCompleted = "completed"
)
