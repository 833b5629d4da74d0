package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/middleware"
	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService services.ReservationService
}

func NewReservationHandler(reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req struct {
		CustomerID        string    `json:"customer_id" binding:"required"`
		VehicleCategoryID string    `json:"vehicle_category_id" binding:"required"`
		PickupLocationID  string    `json:"pickup_location_id" binding:"required"`
		ReturnLocationID  string    `json:"return_location_id" binding:"required"`
		PickupDatetime    time.Time `json:"pickup_datetime" binding:"required"`
		ReturnDatetime    time.Time `json:"return_datetime" binding:"required"`
		SpecialRequests   string    `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	reservation, err := h.reservationService.CreateReservation(services.CreateReservationInput{
		CustomerID:        req.CustomerID,
		VehicleCategoryID: req.VehicleCategoryID,
		PickupLocationID:  req.PickupLocationID,
		ReturnLocationID:  req.ReturnLocationID,
		PickupDatetime:    req.PickupDatetime,
		ReturnDatetime:    req.ReturnDatetime,
		SpecialRequests:   req.SpecialRequests,
		CreatedBy:         c.GetString(middleware.ContextUserID),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Reservation created",
		"reservation": reservation,
	})
}

func (h *ReservationHandler) Get(c *gin.Context) {
	reservation, agreement, err := h.reservationService.GetReservation(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"reservation": reservation}
	if agreement != nil {
		resp["rental_agreement"] = agreement
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	filter := repository.ReservationFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Page:       page,
		PerPage:    perPage,
	}
	if raw := c.Query("pickup_date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_date must be YYYY-MM-DD"})
			return
		}
		filter.PickupDate = &day
	}

	reservations, total, err := h.reservationService.ListReservations(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination":   pagination(page, perPage, total),
	})
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	var req struct {
		AssignedVehicleID string `json:"assigned_vehicle_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	reservation, err := h.reservationService.ConfirmReservation(c.Param("id"), req.AssignedVehicleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation confirmed",
		"reservation": reservation,
	})
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Reservation cancelled",
		"reservation": reservation,
	})
}

func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var req struct {
		PickupMileage        *int     `json:"pickup_mileage"`
		FuelLevelPickup      *float64 `json:"fuel_level_pickup"`
		PickupConditionNotes string   `json:"pickup_condition_notes"`
		TermsAndConditions   string   `json:"terms_and_conditions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	reservation, agreement, err := h.reservationService.CheckIn(c.Param("id"), services.CheckInInput{
		PickupMileage:        req.PickupMileage,
		FuelLevelPickup:      req.FuelLevelPickup,
		PickupConditionNotes: req.PickupConditionNotes,
		TermsAndConditions:   req.TermsAndConditions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Vehicle checked out to customer",
		"reservation":      reservation,
		"rental_agreement": agreement,
	})
}

func (h *ReservationHandler) CheckOut(c *gin.Context) {
	var req struct {
		ReturnMileage        *int     `json:"return_mileage"`
		FuelLevelReturn      *float64 `json:"fuel_level_return"`
		ReturnConditionNotes string   `json:"return_condition_notes"`
		AdditionalCharges    float64  `json:"additional_charges"`
		DamageCharges        float64  `json:"damage_charges"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	reservation, err := h.reservationService.CheckOut(c.Param("id"), services.CheckOutInput{
		ReturnMileage:        req.ReturnMileage,
		FuelLevelReturn:      req.FuelLevelReturn,
		ReturnConditionNotes: req.ReturnConditionNotes,
		AdditionalCharges:    req.AdditionalCharges,
		DamageCharges:        req.DamageCharges,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Rental completed",
		"reservation": reservation,
	})
}

func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	pickup, err := time.Parse(time.RFC3339, c.Query("pickup_datetime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pickup_datetime must be RFC 3339"})
		return
	}
	ret, err := time.Parse(time.RFC3339, c.Query("return_datetime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "return_datetime must be RFC 3339"})
		return
	}

	availability, err := h.reservationService.CheckAvailability(services.AvailabilityInput{
		PickupDatetime:   pickup,
		ReturnDatetime:   ret,
		PickupLocationID: c.Query("pickup_location_id"),
		CategoryID:       c.Query("category_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pickup_datetime": pickup,
		"return_datetime": ret,
		"availability":    availability,
	})
}
