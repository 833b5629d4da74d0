package models

import (
	"time"
)

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationInProgress ReservationStatus = "in_progress"
	ReservationCompleted  ReservationStatus = "completed"
	ReservationCancelled  ReservationStatus = "cancelled"
)

// reservationTransitions is the single source of truth for lifecycle
// legality. Cancellation is only reachable while the vehicle has not been
// handed over; completed and cancelled are terminal.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:    {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed:  {ReservationInProgress, ReservationCancelled},
	ReservationInProgress: {ReservationCompleted},
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return len(reservationTransitions[s]) == 0
}

type Reservation struct {
	ID                 string            `json:"reservation_id" gorm:"primaryKey;type:varchar(36)"`
	ReservationNumber  string            `json:"reservation_number" gorm:"unique;not null"`
	CustomerID         string            `json:"customer_id" gorm:"index;not null"`
	VehicleCategoryID  string            `json:"vehicle_category_id" gorm:"index;not null"`
	AssignedVehicleID  *string           `json:"assigned_vehicle_id" gorm:"index"`
	PickupLocationID   string            `json:"pickup_location_id" gorm:"not null"`
	ReturnLocationID   string            `json:"return_location_id" gorm:"not null"`
	PickupDatetime     time.Time         `json:"pickup_datetime" gorm:"not null;index"`
	ReturnDatetime     time.Time         `json:"return_datetime" gorm:"not null"`
	Status             ReservationStatus `json:"status" gorm:"default:'pending';index"`
	TotalEstimatedCost float64           `json:"total_estimated_cost"`
	TotalActualCost    *float64          `json:"total_actual_cost"`
	DepositAmount      float64           `json:"deposit_amount"`
	SpecialRequests    string            `json:"special_requests"`
	CancellationReason string            `json:"cancellation_reason"`
	CreatedBy          string            `json:"created_by"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	Customer        *Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	VehicleCategory *VehicleCategory `json:"vehicle_category,omitempty" gorm:"foreignKey:VehicleCategoryID"`
	AssignedVehicle *Vehicle         `json:"assigned_vehicle,omitempty" gorm:"foreignKey:AssignedVehicleID"`
	PickupLocation  *Location        `json:"pickup_location,omitempty" gorm:"foreignKey:PickupLocationID"`
	ReturnLocation  *Location        `json:"return_location,omitempty" gorm:"foreignKey:ReturnLocationID"`
}

type RentalAgreement struct {
	ID                   string    `json:"agreement_id" gorm:"primaryKey;type:varchar(36)"`
	ReservationID        string    `json:"reservation_id" gorm:"uniqueIndex;not null"`
	AgreementNumber      string    `json:"agreement_number" gorm:"unique;not null"`
	TermsAndConditions   string    `json:"terms_and_conditions" gorm:"type:text;not null"`
	PickupMileage        *int      `json:"pickup_mileage"`
	ReturnMileage        *int      `json:"return_mileage"`
	FuelLevelPickup      *float64  `json:"fuel_level_pickup"`
	FuelLevelReturn      *float64  `json:"fuel_level_return"`
	PickupConditionNotes string    `json:"pickup_condition_notes"`
	ReturnConditionNotes string    `json:"return_condition_notes"`
	AdditionalCharges    float64   `json:"additional_charges" gorm:"default:0"`
	DamageCharges        float64   `json:"damage_charges" gorm:"default:0"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// MileageDriven returns the distance covered during the rental, or 0 until
// both readings are recorded.
func (a *RentalAgreement) MileageDriven() int {
	if a.PickupMileage == nil || a.ReturnMileage == nil {
		return 0
	}
	return *a.ReturnMileage - *a.PickupMileage
}
