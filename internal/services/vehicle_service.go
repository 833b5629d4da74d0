package services

import (
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
)

type CreateVehicleInput struct {
	VehicleNumber         string
	LicensePlate          string
	VIN                   string
	CategoryID            string
	Make                  string
	Model                 string
	Year                  int
	Color                 string
	FuelCapacity          float64
	CurrentMileage        int
	CurrentLocationID     *string
	ConditionRating       int
	InsurancePolicyNumber string
	InsuranceExpiry       *time.Time
	RegistrationExpiry    *time.Time
}

type UpdateVehicleInput struct {
	CategoryID        *string
	Color             *string
	CurrentMileage    *int
	CurrentLocationID *string
	Status            *models.VehicleStatus
	ConditionRating   *int
	InsuranceExpiry   *time.Time
	IsActive          *bool
}

type CreateCategoryInput struct {
	CategoryName      string
	CategoryCode      string
	Description       string
	BaseDailyRate     float64
	BaseHourlyRate    float64
	MileageRate       float64
	DepositAmount     float64
	PassengerCapacity int
	LuggageCapacity   int
	TransmissionType  string
	FuelType          string
}

type VehicleService interface {
	CreateVehicle(input CreateVehicleInput) (*models.Vehicle, error)
	GetVehicle(id string) (*models.Vehicle, error)
	ListVehicles(filter repository.VehicleFilter) ([]models.Vehicle, int64, error)
	UpdateVehicle(id string, input UpdateVehicleInput) (*models.Vehicle, error)

	CreateCategory(input CreateCategoryInput) (*models.VehicleCategory, error)
	ListCategories() ([]models.VehicleCategory, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) CreateVehicle(input CreateVehicleInput) (*models.Vehicle, error) {
	if input.VehicleNumber == "" || input.LicensePlate == "" || input.VIN == "" {
		return nil, invalidInput("vehicle number, license plate and VIN are required")
	}
	if input.Make == "" || input.Model == "" || input.Year == 0 {
		return nil, invalidInput("make, model and year are required")
	}

	if _, err := s.vehicleRepo.GetCategoryByID(input.CategoryID); err != nil {
		return nil, wrapLookup(err, "vehicle category")
	}

	exists, err := s.vehicleRepo.ExistsByIdentity(input.VehicleNumber, input.LicensePlate, input.VIN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("vehicle with this number, plate or VIN already exists")
	}

	rating := input.ConditionRating
	if rating == 0 {
		rating = 5
	}

	vehicle := &models.Vehicle{
		ID:                    uuid.NewString(),
		VehicleNumber:         input.VehicleNumber,
		LicensePlate:          input.LicensePlate,
		VIN:                   input.VIN,
		CategoryID:            input.CategoryID,
		Make:                  input.Make,
		Model:                 input.Model,
		Year:                  input.Year,
		Color:                 input.Color,
		FuelCapacity:          input.FuelCapacity,
		CurrentMileage:        input.CurrentMileage,
		CurrentLocationID:     input.CurrentLocationID,
		Status:                models.VehicleAvailable,
		ConditionRating:       rating,
		InsurancePolicyNumber: input.InsurancePolicyNumber,
		InsuranceExpiry:       input.InsuranceExpiry,
		RegistrationExpiry:    input.RegistrationExpiry,
		IsActive:              true,
	}
	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetByID(vehicle.ID)
}

func (s *vehicleService) GetVehicle(id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "vehicle")
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(filter repository.VehicleFilter) ([]models.Vehicle, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.vehicleRepo.List(filter)
}

func (s *vehicleService) UpdateVehicle(id string, input UpdateVehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "vehicle")
	}

	if input.CategoryID != nil {
		if _, err := s.vehicleRepo.GetCategoryByID(*input.CategoryID); err != nil {
			return nil, wrapLookup(err, "vehicle category")
		}
		vehicle.CategoryID = *input.CategoryID
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.CurrentMileage != nil {
		if *input.CurrentMileage < vehicle.CurrentMileage {
			return nil, invalidInput("mileage cannot decrease")
		}
		vehicle.CurrentMileage = *input.CurrentMileage
	}
	if input.CurrentLocationID != nil {
		vehicle.CurrentLocationID = input.CurrentLocationID
	}
	if input.Status != nil {
		switch *input.Status {
		case models.VehicleAvailable, models.VehicleRented, models.VehicleMaintenance, models.VehicleOutOfService:
			vehicle.Status = *input.Status
		default:
			return nil, invalidInput("unknown vehicle status")
		}
	}
	if input.ConditionRating != nil {
		if *input.ConditionRating < 1 || *input.ConditionRating > 5 {
			return nil, invalidInput("condition rating must be between 1 and 5")
		}
		vehicle.ConditionRating = *input.ConditionRating
	}
	if input.InsuranceExpiry != nil {
		vehicle.InsuranceExpiry = input.InsuranceExpiry
	}
	if input.IsActive != nil {
		vehicle.IsActive = *input.IsActive
	}

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) CreateCategory(input CreateCategoryInput) (*models.VehicleCategory, error) {
	if input.CategoryName == "" || input.CategoryCode == "" {
		return nil, invalidInput("category name and code are required")
	}
	if input.BaseDailyRate <= 0 {
		return nil, invalidInput("base daily rate must be positive")
	}
	if input.PassengerCapacity <= 0 {
		return nil, invalidInput("passenger capacity must be positive")
	}

	category := &models.VehicleCategory{
		ID:                uuid.NewString(),
		CategoryName:      input.CategoryName,
		CategoryCode:      input.CategoryCode,
		Description:       input.Description,
		BaseDailyRate:     input.BaseDailyRate,
		BaseHourlyRate:    input.BaseHourlyRate,
		MileageRate:       input.MileageRate,
		DepositAmount:     input.DepositAmount,
		PassengerCapacity: input.PassengerCapacity,
		LuggageCapacity:   input.LuggageCapacity,
		TransmissionType:  input.TransmissionType,
		FuelType:          input.FuelType,
		IsActive:          true,
	}
	if err := s.vehicleRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *vehicleService) ListCategories() ([]models.VehicleCategory, error) {
	return s.vehicleRepo.ListCategories()
}
