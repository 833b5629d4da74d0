package repository

import (
	"time"

	"rental_erp/internal/models"

	"gorm.io/gorm"
)

type VehicleFilter struct {
	Search     string
	CategoryID string
	Status     string
	LocationID string
	Page       int
	PerPage    int
}

type VehicleRepository interface {
	Create(vehicle *models.Vehicle) error
	GetByID(id string) (*models.Vehicle, error)
	List(filter VehicleFilter) ([]models.Vehicle, int64, error)
	Update(vehicle *models.Vehicle) error
	ExistsByIdentity(vehicleNumber, licensePlate, vin string) (bool, error)
	FindAvailable(pickup, ret time.Time, categoryID string) ([]models.Vehicle, error)

	CreateCategory(category *models.VehicleCategory) error
	GetCategoryByID(id string) (*models.VehicleCategory, error)
	ListCategories() ([]models.VehicleCategory, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

func (r *vehicleRepository) GetByID(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.Preload("Category").First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(filter VehicleFilter) ([]models.Vehicle, int64, error) {
	query := r.db.Model(&models.Vehicle{}).Preload("Category")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"vehicle_number ILIKE ? OR license_plate ILIKE ? OR make ILIKE ? OR model ILIKE ? OR vin ILIKE ?",
			pattern, pattern, pattern, pattern, pattern)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LocationID != "" {
		query = query.Where("current_location_id = ?", filter.LocationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	err := query.Order("vehicle_number").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&vehicles).Error
	return vehicles, total, err
}

func (r *vehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

func (r *vehicleRepository) ExistsByIdentity(vehicleNumber, licensePlate, vin string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Vehicle{}).
		Where("vehicle_number = ? OR license_plate = ? OR vin = ?", vehicleNumber, licensePlate, vin).
		Count(&count).Error
	return count > 0, err
}

// FindAvailable returns active, available vehicles that are not referenced by
// any confirmed or in-progress reservation whose [pickup, return) window
// overlaps the requested one. The overlap clauses mirror booking.Overlaps.
func (r *vehicleRepository) FindAvailable(pickup, ret time.Time, categoryID string) ([]models.Vehicle, error) {
	conflicting := r.db.Model(&models.Reservation{}).
		Select("assigned_vehicle_id").
		Where("assigned_vehicle_id IS NOT NULL").
		Where("status IN ?", []models.ReservationStatus{models.ReservationConfirmed, models.ReservationInProgress}).
		Where(
			"(pickup_datetime <= ? AND return_datetime > ?) OR (pickup_datetime < ? AND return_datetime >= ?) OR (pickup_datetime >= ? AND return_datetime <= ?)",
			pickup, pickup, ret, ret, pickup, ret)

	query := r.db.Preload("Category").
		Where("status = ? AND is_active = ?", models.VehicleAvailable, true).
		Where("id NOT IN (?)", conflicting)

	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var vehicles []models.Vehicle
	err := query.Order("vehicle_number").Find(&vehicles).Error
	return vehicles, err
}

func (r *vehicleRepository) CreateCategory(category *models.VehicleCategory) error {
	return r.db.Create(category).Error
}

func (r *vehicleRepository) GetCategoryByID(id string) (*models.VehicleCategory, error) {
	var category models.VehicleCategory
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *vehicleRepository) ListCategories() ([]models.VehicleCategory, error) {
	var categories []models.VehicleCategory
	err := r.db.Where("is_active = ?", true).Order("category_name").Find(&categories).Error
	return categories, err
}
