package services

import (
	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
)

type CreateLocationInput struct {
	LocationCode     string
	LocationName     string
	LocationType     string
	StreetAddress    string
	City             string
	StateProvince    string
	PostalCode       string
	Country          string
	Latitude         float64
	Longitude        float64
	PhoneNumber      string
	OperatingHours   map[string]interface{}
	Capacity         int
	IsPickupLocation *bool
	IsReturnLocation *bool
}

type UpdateLocationInput struct {
	LocationName     *string
	LocationType     *string
	StreetAddress    *string
	City             *string
	StateProvince    *string
	PostalCode       *string
	PhoneNumber      *string
	OperatingHours   map[string]interface{}
	Capacity         *int
	IsPickupLocation *bool
	IsReturnLocation *bool
	IsActive         *bool
}

type LocationService interface {
	CreateLocation(input CreateLocationInput) (*models.Location, error)
	GetLocation(id string) (*models.Location, error)
	ListLocations(activeOnly bool) ([]models.Location, error)
	UpdateLocation(id string, input UpdateLocationInput) (*models.Location, error)
}

type locationService struct {
	locationRepo repository.LocationRepository
}

func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) CreateLocation(input CreateLocationInput) (*models.Location, error) {
	if input.LocationCode == "" || input.LocationName == "" {
		return nil, invalidInput("location code and name are required")
	}
	if input.StreetAddress == "" || input.City == "" || input.Country == "" {
		return nil, invalidInput("street address, city and country are required")
	}

	exists, err := s.locationRepo.ExistsByCode(input.LocationCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("location with this code already exists")
	}

	locationType := input.LocationType
	if locationType == "" {
		locationType = "downtown"
	}
	pickup := true
	if input.IsPickupLocation != nil {
		pickup = *input.IsPickupLocation
	}
	ret := true
	if input.IsReturnLocation != nil {
		ret = *input.IsReturnLocation
	}

	location := &models.Location{
		ID:               uuid.NewString(),
		LocationCode:     input.LocationCode,
		LocationName:     input.LocationName,
		LocationType:     locationType,
		StreetAddress:    input.StreetAddress,
		City:             input.City,
		StateProvince:    input.StateProvince,
		PostalCode:       input.PostalCode,
		Country:          input.Country,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		PhoneNumber:      input.PhoneNumber,
		Capacity:         input.Capacity,
		IsPickupLocation: pickup,
		IsReturnLocation: ret,
		IsActive:         true,
	}
	if input.OperatingHours != nil {
		if err := location.SetOperatingHours(input.OperatingHours); err != nil {
			return nil, invalidInput("operating hours must be JSON-encodable")
		}
	}

	if err := s.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *locationService) GetLocation(id string) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "location")
	}
	return location, nil
}

func (s *locationService) ListLocations(activeOnly bool) ([]models.Location, error) {
	return s.locationRepo.List(activeOnly)
}

func (s *locationService) UpdateLocation(id string, input UpdateLocationInput) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "location")
	}

	if input.LocationName != nil {
		location.LocationName = *input.LocationName
	}
	if input.LocationType != nil {
		location.LocationType = *input.LocationType
	}
	if input.StreetAddress != nil {
		location.StreetAddress = *input.StreetAddress
	}
	if input.City != nil {
		location.City = *input.City
	}
	if input.StateProvince != nil {
		location.StateProvince = *input.StateProvince
	}
	if input.PostalCode != nil {
		location.PostalCode = *input.PostalCode
	}
	if input.PhoneNumber != nil {
		location.PhoneNumber = *input.PhoneNumber
	}
	if input.OperatingHours != nil {
		if err := location.SetOperatingHours(input.OperatingHours); err != nil {
			return nil, invalidInput("operating hours must be JSON-encodable")
		}
	}
	if input.Capacity != nil {
		location.Capacity = *input.Capacity
	}
	if input.IsPickupLocation != nil {
		location.IsPickupLocation = *input.IsPickupLocation
	}
	if input.IsReturnLocation != nil {
		location.IsReturnLocation = *input.IsReturnLocation
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}
