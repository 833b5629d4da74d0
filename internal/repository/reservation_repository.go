package repository

import (
	"errors"
	"time"

	"rental_erp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationFilter struct {
	Status     string
	CustomerID string
	PickupDate *time.Time
	Page       int
	PerPage    int
}

// CheckoutUpdate carries the vehicle and customer side effects applied when a
// rental completes.
type CheckoutUpdate struct {
	ReturnMileage *int
	ActualCost    float64
}

type ReservationRepository interface {
	Create(res *models.Reservation) error
	GetByID(id string) (*models.Reservation, error)
	List(filter ReservationFilter) ([]models.Reservation, int64, error)
	UpdateFrom(res *models.Reservation, from models.ReservationStatus) error
	ConfirmWithVehicle(res *models.Reservation, vehicleID string) error
	CheckIn(res *models.Reservation, agreement *models.RentalAgreement) error
	Complete(res *models.Reservation, agreement *models.RentalAgreement, update CheckoutUpdate) error
	GetAgreementByReservation(reservationID string) (*models.RentalAgreement, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(res *models.Reservation) error {
	return r.db.Create(res).Error
}

func (r *reservationRepository) GetByID(id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.
		Preload("Customer").
		Preload("Customer.User").
		Preload("VehicleCategory").
		Preload("AssignedVehicle").
		Preload("PickupLocation").
		Preload("ReturnLocation").
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) List(filter ReservationFilter) ([]models.Reservation, int64, error) {
	query := r.db.Model(&models.Reservation{}).
		Preload("Customer").
		Preload("Customer.User").
		Preload("VehicleCategory").
		Preload("AssignedVehicle").
		Preload("PickupLocation").
		Preload("ReturnLocation")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.PickupDate != nil {
		dayStart := filter.PickupDate.Truncate(24 * time.Hour)
		query = query.Where("pickup_datetime >= ? AND pickup_datetime < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []models.Reservation
	err := query.Order("pickup_datetime DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&reservations).Error
	return reservations, total, err
}

// UpdateFrom persists a status transition only if the stored row is still in
// the expected source status. A stale snapshot, raced by another transition,
// matches zero rows and surfaces ErrStaleTransition instead of overwriting.
func (r *reservationRepository) UpdateFrom(res *models.Reservation, from models.ReservationStatus) error {
	result := r.db.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", res.ID, from).
		Updates(map[string]interface{}{
			"status":              res.Status,
			"cancellation_reason": res.CancellationReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleTransition
	}
	return nil
}

// ConfirmWithVehicle runs the overlap check and the vehicle assignment as one
// transaction. The vehicle row is locked FOR UPDATE first so two concurrent
// confirms for the same vehicle serialize: the second one re-runs the overlap
// query after the first has committed and sees the new booking. The final
// status move is guarded on the stored reservation still being pending, so
// two confirms of one reservation against different vehicles cannot both win.
func (r *reservationRepository) ConfirmWithVehicle(res *models.Reservation, vehicleID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&vehicle, "id = ?", vehicleID).Error; err != nil {
			return err
		}
		if vehicle.Status != models.VehicleAvailable {
			return ErrVehicleUnavailable
		}

		var conflict models.Reservation
		err := tx.
			Where("assigned_vehicle_id = ?", vehicleID).
			Where("id <> ?", res.ID).
			Where("status IN ?", []models.ReservationStatus{models.ReservationConfirmed, models.ReservationInProgress}).
			Where(
				"(pickup_datetime <= ? AND return_datetime > ?) OR (pickup_datetime < ? AND return_datetime >= ?) OR (pickup_datetime >= ? AND return_datetime <= ?)",
				res.PickupDatetime, res.PickupDatetime,
				res.ReturnDatetime, res.ReturnDatetime,
				res.PickupDatetime, res.ReturnDatetime).
			First(&conflict).Error
		if err == nil {
			return ErrVehicleConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", res.ID, models.ReservationPending).
			Updates(map[string]interface{}{
				"assigned_vehicle_id": vehicle.ID,
				"status":              models.ReservationConfirmed,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleTransition
		}
		res.AssignedVehicleID = &vehicle.ID
		res.Status = models.ReservationConfirmed
		return nil
	})
}

// CheckIn creates the rental agreement, moves the reservation to in_progress
// and marks the assigned vehicle rented, all or nothing. The status move is
// guarded on the stored row still being confirmed.
func (r *reservationRepository) CheckIn(res *models.Reservation, agreement *models.RentalAgreement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", res.ID, models.ReservationConfirmed).
			Update("status", models.ReservationInProgress)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleTransition
		}
		if err := tx.Create(agreement).Error; err != nil {
			return err
		}
		if res.AssignedVehicleID != nil {
			return tx.Model(&models.Vehicle{}).
				Where("id = ?", *res.AssignedVehicleID).
				Update("status", models.VehicleRented).Error
		}
		return nil
	})
}

// Complete finalizes the agreement and reservation, releases the vehicle and
// applies the customer counters. The status move is guarded on the stored row
// still being in_progress, so a duplicate checkout aborts before the counters
// run and they increment once per rental. The counters themselves are SQL
// expressions rather than read-modify-write so concurrent checkouts for one
// customer cannot lose an update.
func (r *reservationRepository) Complete(res *models.Reservation, agreement *models.RentalAgreement, update CheckoutUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", res.ID, models.ReservationInProgress).
			Updates(map[string]interface{}{
				"status":            models.ReservationCompleted,
				"total_actual_cost": res.TotalActualCost,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleTransition
		}
		if err := tx.Save(agreement).Error; err != nil {
			return err
		}
		if res.AssignedVehicleID != nil {
			vehicleUpdates := map[string]interface{}{"status": models.VehicleAvailable}
			if update.ReturnMileage != nil {
				vehicleUpdates["current_mileage"] = *update.ReturnMileage
			}
			if err := tx.Model(&models.Vehicle{}).
				Where("id = ?", *res.AssignedVehicleID).
				Updates(vehicleUpdates).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Customer{}).
			Where("id = ?", res.CustomerID).
			Updates(map[string]interface{}{
				"total_rentals": gorm.Expr("total_rentals + 1"),
				"total_spent":   gorm.Expr("total_spent + ?", update.ActualCost),
			}).Error
	})
}

func (r *reservationRepository) GetAgreementByReservation(reservationID string) (*models.RentalAgreement, error) {
	var agreement models.RentalAgreement
	err := r.db.First(&agreement, "reservation_id = ?", reservationID).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}
