package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental_erp/internal/booking"
	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	CustomerID        string
	VehicleCategoryID string
	PickupLocationID  string
	ReturnLocationID  string
	PickupDatetime    time.Time
	ReturnDatetime    time.Time
	SpecialRequests   string
	CreatedBy         string
}

type CheckInInput struct {
	PickupMileage        *int
	FuelLevelPickup      *float64
	PickupConditionNotes string
	TermsAndConditions   string
}

type CheckOutInput struct {
	ReturnMileage        *int
	FuelLevelReturn      *float64
	ReturnConditionNotes string
	AdditionalCharges    float64
	DamageCharges        float64
}

type AvailabilityInput struct {
	PickupDatetime   time.Time
	ReturnDatetime   time.Time
	PickupLocationID string
	CategoryID       string
}

// CategoryAvailability is one availability bucket: a category with the
// vehicles free for the requested window.
type CategoryAvailability struct {
	Category       models.VehicleCategory `json:"category"`
	AvailableCount int                    `json:"available_count"`
	Vehicles       []models.Vehicle       `json:"vehicles"`
}

// AvailabilityCache caches availability responses briefly; writes invalidate
// the whole namespace because any transition can change the answer.
type AvailabilityCache interface {
	GetAvailability(key string, dest interface{}) (bool, error)
	SetAvailability(key string, value interface{}) error
	InvalidateAvailability() error
}

type ReservationService interface {
	CreateReservation(input CreateReservationInput) (*models.Reservation, error)
	GetReservation(id string) (*models.Reservation, *models.RentalAgreement, error)
	ListReservations(filter repository.ReservationFilter) ([]models.Reservation, int64, error)
	ConfirmReservation(id, vehicleID string) (*models.Reservation, error)
	CancelReservation(id, reason string) (*models.Reservation, error)
	CheckIn(id string, input CheckInInput) (*models.Reservation, *models.RentalAgreement, error)
	CheckOut(id string, input CheckOutInput) (*models.Reservation, error)
	CheckAvailability(input AvailabilityInput) ([]CategoryAvailability, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
	vehicleRepo     repository.VehicleRepository
	locationRepo    repository.LocationRepository
	cache           AvailabilityCache
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	locationRepo repository.LocationRepository,
	cache AvailabilityCache,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		vehicleRepo:     vehicleRepo,
		locationRepo:    locationRepo,
		cache:           cache,
	}
}

// documentNumber builds a human-readable number: prefix plus the first eight
// hex characters of a fresh UUID, uppercased.
func documentNumber(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}

func (s *reservationService) CreateReservation(input CreateReservationInput) (*models.Reservation, error) {
	window := booking.NewInterval(input.PickupDatetime, input.ReturnDatetime)
	if !window.IsValid() {
		return nil, invalidInput("return datetime must be after pickup datetime")
	}

	if _, err := s.customerRepo.GetByID(input.CustomerID); err != nil {
		return nil, wrapLookup(err, "customer")
	}
	category, err := s.vehicleRepo.GetCategoryByID(input.VehicleCategoryID)
	if err != nil {
		return nil, wrapLookup(err, "vehicle category")
	}
	if _, err := s.locationRepo.GetByID(input.PickupLocationID); err != nil {
		return nil, wrapLookup(err, "pickup location")
	}
	if _, err := s.locationRepo.GetByID(input.ReturnLocationID); err != nil {
		return nil, wrapLookup(err, "return location")
	}

	res := &models.Reservation{
		ID:                 uuid.NewString(),
		ReservationNumber:  documentNumber("RES"),
		CustomerID:         input.CustomerID,
		VehicleCategoryID:  input.VehicleCategoryID,
		PickupLocationID:   input.PickupLocationID,
		ReturnLocationID:   input.ReturnLocationID,
		PickupDatetime:     input.PickupDatetime,
		ReturnDatetime:     input.ReturnDatetime,
		Status:             models.ReservationPending,
		TotalEstimatedCost: booking.EstimatedCost(category.BaseDailyRate, input.PickupDatetime, input.ReturnDatetime),
		DepositAmount:      category.DepositAmount,
		SpecialRequests:    input.SpecialRequests,
		CreatedBy:          input.CreatedBy,
	}

	if err := s.reservationRepo.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) GetReservation(id string) (*models.Reservation, *models.RentalAgreement, error) {
	res, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, nil, wrapLookup(err, "reservation")
	}
	agreement, err := s.reservationRepo.GetAgreementByReservation(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	return res, agreement, nil
}

func (s *reservationService) ListReservations(filter repository.ReservationFilter) ([]models.Reservation, int64, error) {
	return s.reservationRepo.List(filter)
}

func (s *reservationService) ConfirmReservation(id, vehicleID string) (*models.Reservation, error) {
	res, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "reservation")
	}
	if !res.Status.CanTransitionTo(models.ReservationConfirmed) {
		return nil, invalidState("only pending reservations can be confirmed")
	}

	if vehicleID == "" {
		res.Status = models.ReservationConfirmed
		if err := s.reservationRepo.UpdateFrom(res, models.ReservationPending); err != nil {
			if errors.Is(err, repository.ErrStaleTransition) {
				return nil, invalidState("only pending reservations can be confirmed")
			}
			return nil, err
		}
		s.invalidateAvailability()
		return res, nil
	}

	if err := s.reservationRepo.ConfirmWithVehicle(res, vehicleID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, notFound("vehicle")
		case errors.Is(err, repository.ErrVehicleUnavailable):
			return nil, conflict("vehicle is not available")
		case errors.Is(err, repository.ErrVehicleConflict):
			return nil, conflict("vehicle is already reserved for this period")
		case errors.Is(err, repository.ErrStaleTransition):
			return nil, invalidState("only pending reservations can be confirmed")
		default:
			return nil, err
		}
	}
	s.invalidateAvailability()
	return res, nil
}

func (s *reservationService) CancelReservation(id, reason string) (*models.Reservation, error) {
	res, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "reservation")
	}
	if !res.Status.CanTransitionTo(models.ReservationCancelled) {
		return nil, invalidState(fmt.Sprintf("reservation in status %q cannot be cancelled", res.Status))
	}

	from := res.Status
	res.Status = models.ReservationCancelled
	res.CancellationReason = reason
	if err := s.reservationRepo.UpdateFrom(res, from); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return nil, invalidState("reservation can no longer be cancelled")
		}
		return nil, err
	}
	s.invalidateAvailability()
	return res, nil
}

func (s *reservationService) CheckIn(id string, input CheckInInput) (*models.Reservation, *models.RentalAgreement, error) {
	res, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, nil, wrapLookup(err, "reservation")
	}
	if !res.Status.CanTransitionTo(models.ReservationInProgress) {
		return nil, nil, invalidState("only confirmed reservations can be checked in")
	}

	terms := input.TermsAndConditions
	if terms == "" {
		terms = "Standard rental terms and conditions apply."
	}

	agreement := &models.RentalAgreement{
		ID:                   uuid.NewString(),
		ReservationID:        res.ID,
		AgreementNumber:      documentNumber("AGR"),
		TermsAndConditions:   terms,
		PickupMileage:        input.PickupMileage,
		FuelLevelPickup:      input.FuelLevelPickup,
		PickupConditionNotes: input.PickupConditionNotes,
	}

	res.Status = models.ReservationInProgress
	if err := s.reservationRepo.CheckIn(res, agreement); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return nil, nil, invalidState("only confirmed reservations can be checked in")
		}
		return nil, nil, err
	}
	s.invalidateAvailability()
	return res, agreement, nil
}

func (s *reservationService) CheckOut(id string, input CheckOutInput) (*models.Reservation, error) {
	res, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, wrapLookup(err, "reservation")
	}
	if !res.Status.CanTransitionTo(models.ReservationCompleted) {
		return nil, invalidState("only in-progress reservations can be checked out")
	}

	agreement, err := s.reservationRepo.GetAgreementByReservation(res.ID)
	if err != nil {
		return nil, wrapLookup(err, "rental agreement")
	}

	agreement.ReturnMileage = input.ReturnMileage
	agreement.FuelLevelReturn = input.FuelLevelReturn
	agreement.ReturnConditionNotes = input.ReturnConditionNotes
	agreement.AdditionalCharges = input.AdditionalCharges
	agreement.DamageCharges = input.DamageCharges

	actual := booking.ActualCost(res.TotalEstimatedCost, input.AdditionalCharges, input.DamageCharges)
	res.TotalActualCost = &actual
	res.Status = models.ReservationCompleted

	update := repository.CheckoutUpdate{
		ReturnMileage: input.ReturnMileage,
		ActualCost:    actual,
	}
	if err := s.reservationRepo.Complete(res, agreement, update); err != nil {
		if errors.Is(err, repository.ErrStaleTransition) {
			return nil, invalidState("only in-progress reservations can be checked out")
		}
		return nil, err
	}
	s.invalidateAvailability()
	return res, nil
}

func (s *reservationService) CheckAvailability(input AvailabilityInput) ([]CategoryAvailability, error) {
	window := booking.NewInterval(input.PickupDatetime, input.ReturnDatetime)
	if !window.IsValid() {
		return nil, invalidInput("return datetime must be after pickup datetime")
	}
	if input.PickupLocationID == "" {
		return nil, invalidInput("pickup_location_id is required")
	}

	key := availabilityCacheKey(input)
	if s.cache != nil {
		var cached []CategoryAvailability
		if hit, err := s.cache.GetAvailability(key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	vehicles, err := s.vehicleRepo.FindAvailable(input.PickupDatetime, input.ReturnDatetime, input.CategoryID)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*CategoryAvailability{}
	var order []string
	for _, v := range vehicles {
		bucket, ok := buckets[v.CategoryID]
		if !ok {
			bucket = &CategoryAvailability{}
			if v.Category != nil {
				bucket.Category = *v.Category
			}
			buckets[v.CategoryID] = bucket
			order = append(order, v.CategoryID)
		}
		bucket.AvailableCount++
		bucket.Vehicles = append(bucket.Vehicles, v)
	}

	availability := make([]CategoryAvailability, 0, len(order))
	for _, id := range order {
		availability = append(availability, *buckets[id])
	}

	if s.cache != nil {
		_ = s.cache.SetAvailability(key, availability)
	}
	return availability, nil
}

func (s *reservationService) invalidateAvailability() {
	if s.cache != nil {
		_ = s.cache.InvalidateAvailability()
	}
}

func availabilityCacheKey(input AvailabilityInput) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		input.PickupDatetime.UTC().Format(time.RFC3339),
		input.ReturnDatetime.UTC().Format(time.RFC3339),
		input.PickupLocationID,
		input.CategoryID)
}

// wrapLookup converts a storage miss into the service taxonomy, keeping other
// errors untouched.
func wrapLookup(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}
