package repository

import (
	"rental_erp/internal/models"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *models.Location) error
	GetByID(id string) (*models.Location, error)
	List(activeOnly bool) ([]models.Location, error)
	Update(location *models.Location) error
	ExistsByCode(code string) (bool, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepository) GetByID(id string) (*models.Location, error) {
	var location models.Location
	err := r.db.First(&location, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) List(activeOnly bool) ([]models.Location, error) {
	query := r.db.Order("location_code")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var locations []models.Location
	err := query.Find(&locations).Error
	return locations, err
}

func (r *locationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

func (r *locationRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Location{}).Where("location_code = ?", code).Count(&count).Error
	return count > 0, err
}
