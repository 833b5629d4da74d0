package services

import (
	"testing"
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory stand-ins for the storage layer. Each stub holds a handful of
// records keyed by id and mimics the transactional repository methods.

type stubReservationRepo struct {
	reservations map[string]*models.Reservation
	agreements   map[string]*models.RentalAgreement
	customers    *stubCustomerRepo
	confirmErr   error
	onRead       func()
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{
		reservations: map[string]*models.Reservation{},
		agreements:   map[string]*models.RentalAgreement{},
	}
}

func (r *stubReservationRepo) store(res *models.Reservation) {
	snapshot := *res
	r.reservations[res.ID] = &snapshot
}

func (r *stubReservationRepo) Create(res *models.Reservation) error {
	r.store(res)
	return nil
}

// GetByID hands out a snapshot, the way a row read does. Callers that mutate
// the result have not changed the stored record until a write method commits.
// The onRead hook, when set, runs after the snapshot is taken so a test can
// interleave a competing transition between a caller's read and its write.
func (r *stubReservationRepo) GetByID(id string) (*models.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	snapshot := *res
	if r.onRead != nil {
		r.onRead()
	}
	return &snapshot, nil
}

func (r *stubReservationRepo) List(filter repository.ReservationFilter) ([]models.Reservation, int64, error) {
	var out []models.Reservation
	for _, res := range r.reservations {
		if filter.Status != "" && string(res.Status) != filter.Status {
			continue
		}
		if filter.CustomerID != "" && res.CustomerID != filter.CustomerID {
			continue
		}
		out = append(out, *res)
	}
	return out, int64(len(out)), nil
}

// The write methods below mirror the repository's guarded updates: the stored
// status must still match the transition's source or nothing commits.

func (r *stubReservationRepo) UpdateFrom(res *models.Reservation, from models.ReservationStatus) error {
	stored, ok := r.reservations[res.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != from {
		return repository.ErrStaleTransition
	}
	r.store(res)
	return nil
}

func (r *stubReservationRepo) ConfirmWithVehicle(res *models.Reservation, vehicleID string) error {
	if r.confirmErr != nil {
		return r.confirmErr
	}
	stored, ok := r.reservations[res.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != models.ReservationPending {
		return repository.ErrStaleTransition
	}
	res.AssignedVehicleID = &vehicleID
	res.Status = models.ReservationConfirmed
	r.store(res)
	return nil
}

func (r *stubReservationRepo) CheckIn(res *models.Reservation, agreement *models.RentalAgreement) error {
	stored, ok := r.reservations[res.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != models.ReservationConfirmed {
		return repository.ErrStaleTransition
	}
	r.store(res)
	r.agreements[res.ID] = agreement
	return nil
}

func (r *stubReservationRepo) Complete(res *models.Reservation, agreement *models.RentalAgreement, update repository.CheckoutUpdate) error {
	stored, ok := r.reservations[res.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != models.ReservationInProgress {
		return repository.ErrStaleTransition
	}
	r.store(res)
	r.agreements[res.ID] = agreement
	if r.customers != nil {
		if customer, ok := r.customers.customers[res.CustomerID]; ok {
			customer.TotalRentals++
			customer.TotalSpent += update.ActualCost
		}
	}
	return nil
}

func (r *stubReservationRepo) GetAgreementByReservation(reservationID string) (*models.RentalAgreement, error) {
	agreement, ok := r.agreements[reservationID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return agreement, nil
}

type stubCustomerRepo struct {
	customers map[string]*models.Customer
	userRepo  *stubUserRepo
}

func newStubCustomerRepo(ids ...string) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: map[string]*models.Customer{}}
	for _, id := range ids {
		r.customers[id] = &models.Customer{ID: id, CustomerNumber: "CUST" + id}
	}
	return r
}

func (r *stubCustomerRepo) Create(customer *models.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) CreateWithUser(user *models.User, customer *models.Customer) error {
	// Mirror the real repository, which persists the user and the
	// customer profile together in one transaction.
	if r.userRepo != nil {
		if err := r.userRepo.Create(user); err != nil {
			return err
		}
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) GetByID(id string) (*models.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (r *stubCustomerRepo) List(filter repository.CustomerFilter) ([]models.Customer, int64, error) {
	var out []models.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(customer *models.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) AddAddress(address *models.CustomerAddress) error { return nil }

func (r *stubCustomerRepo) GetAddresses(customerID string) ([]models.CustomerAddress, error) {
	return nil, nil
}

type stubVehicleRepo struct {
	categories map[string]*models.VehicleCategory
	vehicles   map[string]*models.Vehicle
	available  []models.Vehicle
}

func (r *stubVehicleRepo) Create(vehicle *models.Vehicle) error {
	if r.vehicles == nil {
		r.vehicles = map[string]*models.Vehicle{}
	}
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *stubVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (r *stubVehicleRepo) Update(vehicle *models.Vehicle) error {
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *stubVehicleRepo) CreateCategory(c *models.VehicleCategory) error    { return nil }
func (r *stubVehicleRepo) ListCategories() ([]models.VehicleCategory, error) { return nil, nil }

func (r *stubVehicleRepo) List(filter repository.VehicleFilter) ([]models.Vehicle, int64, error) {
	return nil, 0, nil
}

func (r *stubVehicleRepo) ExistsByIdentity(vehicleNumber, licensePlate, vin string) (bool, error) {
	return false, nil
}

func (r *stubVehicleRepo) FindAvailable(pickup, ret time.Time, categoryID string) ([]models.Vehicle, error) {
	return r.available, nil
}

func (r *stubVehicleRepo) GetCategoryByID(id string) (*models.VehicleCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

type stubLocationRepo struct {
	locations map[string]*models.Location
}

func newStubLocationRepo(ids ...string) *stubLocationRepo {
	r := &stubLocationRepo{locations: map[string]*models.Location{}}
	for _, id := range ids {
		r.locations[id] = &models.Location{ID: id, LocationCode: "LOC" + id}
	}
	return r
}

func (r *stubLocationRepo) Create(location *models.Location) error { return nil }
func (r *stubLocationRepo) Update(location *models.Location) error { return nil }

func (r *stubLocationRepo) GetByID(id string) (*models.Location, error) {
	location, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return location, nil
}

func (r *stubLocationRepo) List(activeOnly bool) ([]models.Location, error) { return nil, nil }

func (r *stubLocationRepo) ExistsByCode(code string) (bool, error) { return false, nil }

func newTestService() (ReservationService, *stubReservationRepo) {
	resRepo := newStubReservationRepo()
	customerRepo := newStubCustomerRepo("cust-1")
	resRepo.customers = customerRepo
	vehicleRepo := &stubVehicleRepo{
		categories: map[string]*models.VehicleCategory{
			"cat-1": {ID: "cat-1", CategoryName: "Economy", BaseDailyRate: 29.99, DepositAmount: 200},
		},
	}
	svc := NewReservationService(
		resRepo,
		customerRepo,
		vehicleRepo,
		newStubLocationRepo("loc-1", "loc-2"),
		nil,
	)
	return svc, resRepo
}

func validCreateInput() CreateReservationInput {
	return CreateReservationInput{
		CustomerID:        "cust-1",
		VehicleCategoryID: "cat-1",
		PickupLocationID:  "loc-1",
		ReturnLocationID:  "loc-2",
		PickupDatetime:    time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		ReturnDatetime:    time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateReservation(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, models.ReservationPending, res.Status)
	assert.InDelta(t, 59.98, res.TotalEstimatedCost, 0.001)
	assert.InDelta(t, 200.0, res.DepositAmount, 0.001)
	assert.Regexp(t, `^RES[0-9A-F]{8}$`, res.ReservationNumber)
	assert.Nil(t, res.AssignedVehicleID)
}

func TestCreateReservationInvalidWindow(t *testing.T) {
	svc, _ := newTestService()

	input := validCreateInput()
	input.ReturnDatetime = input.PickupDatetime

	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateReservationUnknownCustomer(t *testing.T) {
	svc, _ := newTestService()

	input := validCreateInput()
	input.CustomerID = "missing"

	_, err := svc.CreateReservation(input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmReservation(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	confirmed, err := svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.AssignedVehicleID)
	assert.Equal(t, "veh-1", *confirmed.AssignedVehicleID)
}

func TestConfirmReservationWithoutVehicle(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	confirmed, err := svc.ConfirmReservation(res.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)
	assert.Nil(t, confirmed.AssignedVehicleID)
}

func TestConfirmReservationTwice(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)

	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmReservationVehicleConflict(t *testing.T) {
	svc, resRepo := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	resRepo.confirmErr = repository.ErrVehicleConflict
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	assert.ErrorIs(t, err, ErrConflict)

	resRepo.confirmErr = repository.ErrVehicleUnavailable
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelReservation(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	cancelled, err := svc.CancelReservation(res.ID, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)

	_, err = svc.CancelReservation(res.ID, "again")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelInProgressReservation(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)
	_, _, err = svc.CheckIn(res.ID, CheckInInput{})
	require.NoError(t, err)

	_, err = svc.CancelReservation(res.ID, "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckInRequiresConfirmed(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	_, _, err = svc.CheckIn(res.ID, CheckInInput{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckInCreatesAgreement(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)

	mileage := 12000
	updated, agreement, err := svc.CheckIn(res.ID, CheckInInput{PickupMileage: &mileage})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationInProgress, updated.Status)
	require.NotNil(t, agreement)
	assert.Regexp(t, `^AGR[0-9A-F]{8}$`, agreement.AgreementNumber)
	assert.Equal(t, res.ID, agreement.ReservationID)
	assert.Equal(t, &mileage, agreement.PickupMileage)
	assert.NotEmpty(t, agreement.TermsAndConditions)
}

func TestCheckOut(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)
	_, _, err = svc.CheckIn(res.ID, CheckInInput{})
	require.NoError(t, err)

	mileage := 12450
	completed, err := svc.CheckOut(res.ID, CheckOutInput{
		ReturnMileage:     &mileage,
		AdditionalCharges: 50,
		DamageCharges:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationCompleted, completed.Status)
	require.NotNil(t, completed.TotalActualCost)
	assert.InDelta(t, 129.98, *completed.TotalActualCost, 0.001)
}

func TestCheckOutRequiresInProgress(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	_, err = svc.CheckOut(res.ID, CheckOutInput{})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckOutAppliesCustomerCountersOnce(t *testing.T) {
	svc, resRepo := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)
	_, _, err = svc.CheckIn(res.ID, CheckInInput{})
	require.NoError(t, err)

	input := CheckOutInput{AdditionalCharges: 50, DamageCharges: 20}

	// A second checkout commits between this one's read and its write. The
	// guarded update must reject the stale snapshot so the counters move once.
	raced := false
	resRepo.onRead = func() {
		if raced {
			return
		}
		raced = true
		_, err := svc.CheckOut(res.ID, input)
		require.NoError(t, err)
	}

	_, err = svc.CheckOut(res.ID, input)
	assert.ErrorIs(t, err, ErrInvalidState)

	customer := resRepo.customers.customers["cust-1"]
	assert.Equal(t, 1, customer.TotalRentals)
	assert.InDelta(t, 129.98, customer.TotalSpent, 0.001)
	assert.Equal(t, models.ReservationCompleted, resRepo.reservations[res.ID].Status)
}

func TestCancelRacingCheckInIsRejected(t *testing.T) {
	svc, resRepo := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)
	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)

	raced := false
	resRepo.onRead = func() {
		if raced {
			return
		}
		raced = true
		_, _, err := svc.CheckIn(res.ID, CheckInInput{})
		require.NoError(t, err)
	}

	_, err = svc.CancelReservation(res.ID, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, models.ReservationInProgress, resRepo.reservations[res.ID].Status)
}

func TestConfirmRacingConfirmAssignsOneVehicle(t *testing.T) {
	svc, resRepo := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	raced := false
	resRepo.onRead = func() {
		if raced {
			return
		}
		raced = true
		_, err := svc.ConfirmReservation(res.ID, "veh-1")
		require.NoError(t, err)
	}

	_, err = svc.ConfirmReservation(res.ID, "veh-2")
	assert.ErrorIs(t, err, ErrInvalidState)

	stored := resRepo.reservations[res.ID]
	require.NotNil(t, stored.AssignedVehicleID)
	assert.Equal(t, "veh-1", *stored.AssignedVehicleID)
}

func TestCheckAvailabilityGroupsByCategory(t *testing.T) {
	resRepo := newStubReservationRepo()
	economy := &models.VehicleCategory{ID: "cat-1", CategoryName: "Economy"}
	suv := &models.VehicleCategory{ID: "cat-2", CategoryName: "SUV"}
	vehicleRepo := &stubVehicleRepo{
		categories: map[string]*models.VehicleCategory{"cat-1": economy, "cat-2": suv},
		available: []models.Vehicle{
			{ID: "v1", CategoryID: "cat-1", Category: economy},
			{ID: "v2", CategoryID: "cat-2", Category: suv},
			{ID: "v3", CategoryID: "cat-1", Category: economy},
		},
	}
	svc := NewReservationService(resRepo, newStubCustomerRepo(), vehicleRepo, newStubLocationRepo("loc-1"), nil)

	availability, err := svc.CheckAvailability(AvailabilityInput{
		PickupDatetime:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		ReturnDatetime:   time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC),
		PickupLocationID: "loc-1",
	})
	require.NoError(t, err)

	require.Len(t, availability, 2)
	assert.Equal(t, "Economy", availability[0].Category.CategoryName)
	assert.Equal(t, 2, availability[0].AvailableCount)
	assert.Equal(t, "SUV", availability[1].Category.CategoryName)
	assert.Equal(t, 1, availability[1].AvailableCount)
}

func TestCheckAvailabilityValidation(t *testing.T) {
	svc, _ := newTestService()

	pickup := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.CheckAvailability(AvailabilityInput{
		PickupDatetime:   pickup,
		ReturnDatetime:   pickup,
		PickupLocationID: "loc-1",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CheckAvailability(AvailabilityInput{
		PickupDatetime: pickup,
		ReturnDatetime: pickup.Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetReservationIncludesAgreement(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.CreateReservation(validCreateInput())
	require.NoError(t, err)

	got, agreement, err := svc.GetReservation(res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Nil(t, agreement)

	_, err = svc.ConfirmReservation(res.ID, "veh-1")
	require.NoError(t, err)
	_, _, err = svc.CheckIn(res.ID, CheckInInput{})
	require.NoError(t, err)

	_, agreement, err = svc.GetReservation(res.ID)
	require.NoError(t, err)
	require.NotNil(t, agreement)
}
