package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeReservationService returns canned results so the handler's HTTP mapping
// can be tested without storage.
type fakeReservationService struct {
	reservation        *models.Reservation
	agreement          *models.RentalAgreement
	err                error
	confirmedVehicleID string
}

func (f *fakeReservationService) CreateReservation(input services.CreateReservationInput) (*models.Reservation, error) {
	return f.reservation, f.err
}

func (f *fakeReservationService) GetReservation(id string) (*models.Reservation, *models.RentalAgreement, error) {
	return f.reservation, f.agreement, f.err
}

func (f *fakeReservationService) ListReservations(filter repository.ReservationFilter) ([]models.Reservation, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return []models.Reservation{*f.reservation}, 1, nil
}

func (f *fakeReservationService) ConfirmReservation(id, vehicleID string) (*models.Reservation, error) {
	f.confirmedVehicleID = vehicleID
	return f.reservation, f.err
}

func (f *fakeReservationService) CancelReservation(id, reason string) (*models.Reservation, error) {
	return f.reservation, f.err
}

func (f *fakeReservationService) CheckIn(id string, input services.CheckInInput) (*models.Reservation, *models.RentalAgreement, error) {
	return f.reservation, f.agreement, f.err
}

func (f *fakeReservationService) CheckOut(id string, input services.CheckOutInput) (*models.Reservation, error) {
	return f.reservation, f.err
}

func (f *fakeReservationService) CheckAvailability(input services.AvailabilityInput) ([]services.CategoryAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []services.CategoryAvailability{}, nil
}

func newReservationRouter(svc services.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReservationHandler(svc)

	router := gin.New()
	router.POST("/reservations", h.Create)
	router.GET("/reservations", h.List)
	router.GET("/reservations/availability", h.CheckAvailability)
	router.GET("/reservations/:id", h.Get)
	router.POST("/reservations/:id/confirm", h.Confirm)
	router.POST("/reservations/:id/cancel", h.Cancel)
	router.POST("/reservations/:id/checkin", h.CheckIn)
	router.POST("/reservations/:id/checkout", h.CheckOut)
	return router
}

func sampleReservation() *models.Reservation {
	return &models.Reservation{
		ID:                "res-1",
		ReservationNumber: "RESAB12CD34",
		CustomerID:        "cust-1",
		Status:            models.ReservationPending,
		PickupDatetime:    time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		ReturnDatetime:    time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateReservationReturns201(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{reservation: sampleReservation()})

	body := `{
		"customer_id": "cust-1",
		"vehicle_category_id": "cat-1",
		"pickup_location_id": "loc-1",
		"return_location_id": "loc-1",
		"pickup_datetime": "2025-07-01T10:00:00Z",
		"return_datetime": "2025-07-03T10:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"reservation"`)
	assert.Contains(t, w.Body.String(), `"message"`)
}

func TestCreateReservationMissingFields(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{reservation: sampleReservation()})

	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(`{"customer_id": "cust-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"invalid input", services.ErrInvalidInput, http.StatusBadRequest},
		{"invalid state", services.ErrInvalidState, http.StatusBadRequest},
		{"conflict", services.ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newReservationRouter(&fakeReservationService{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/confirm", strings.NewReader(`{"assigned_vehicle_id":"veh-1"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestConfirmReadsAssignedVehicleID(t *testing.T) {
	svc := &fakeReservationService{reservation: sampleReservation()}
	router := newReservationRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/confirm", strings.NewReader(`{"assigned_vehicle_id":"veh-7"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "veh-7", svc.confirmedVehicleID)
}

func TestGetReservationIncludesAgreement(t *testing.T) {
	svc := &fakeReservationService{
		reservation: sampleReservation(),
		agreement:   &models.RentalAgreement{ID: "agr-1", AgreementNumber: "AGRAB12CD34"},
	}
	router := newReservationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reservations/res-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rental_agreement"`)
}

func TestGetReservationWithoutAgreement(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{reservation: sampleReservation()})

	req := httptest.NewRequest(http.MethodGet, "/reservations/res-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"rental_agreement"`)
}

func TestListReservationsIncludesPagination(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{reservation: sampleReservation()})

	req := httptest.NewRequest(http.MethodGet, "/reservations?page=1&per_page=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pagination"`)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCheckAvailabilityRejectsBadTimestamps(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{})

	req := httptest.NewRequest(http.MethodGet, "/reservations/availability?pickup_datetime=tomorrow", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelWithEmptyBody(t *testing.T) {
	router := newReservationRouter(&fakeReservationService{reservation: sampleReservation()})

	req := httptest.NewRequest(http.MethodPost, "/reservations/res-1/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
