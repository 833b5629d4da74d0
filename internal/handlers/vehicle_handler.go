package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req struct {
		VehicleNumber         string     `json:"vehicle_number" binding:"required"`
		LicensePlate          string     `json:"license_plate" binding:"required"`
		VIN                   string     `json:"vin" binding:"required"`
		CategoryID            string     `json:"category_id" binding:"required"`
		Make                  string     `json:"make" binding:"required"`
		Model                 string     `json:"model" binding:"required"`
		Year                  int        `json:"year" binding:"required"`
		Color                 string     `json:"color"`
		FuelCapacity          float64    `json:"fuel_capacity"`
		CurrentMileage        int        `json:"current_mileage"`
		CurrentLocationID     *string    `json:"current_location_id"`
		ConditionRating       int        `json:"condition_rating"`
		InsurancePolicyNumber string     `json:"insurance_policy_number"`
		InsuranceExpiry       *time.Time `json:"insurance_expiry"`
		RegistrationExpiry    *time.Time `json:"registration_expiry"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(services.CreateVehicleInput{
		VehicleNumber:         req.VehicleNumber,
		LicensePlate:          req.LicensePlate,
		VIN:                   req.VIN,
		CategoryID:            req.CategoryID,
		Make:                  req.Make,
		Model:                 req.Model,
		Year:                  req.Year,
		Color:                 req.Color,
		FuelCapacity:          req.FuelCapacity,
		CurrentMileage:        req.CurrentMileage,
		CurrentLocationID:     req.CurrentLocationID,
		ConditionRating:       req.ConditionRating,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		InsuranceExpiry:       req.InsuranceExpiry,
		RegistrationExpiry:    req.RegistrationExpiry,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle created",
		"vehicle": vehicle,
	})
}

func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func (h *VehicleHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	vehicles, total, err := h.vehicleService.ListVehicles(repository.VehicleFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		Status:     c.Query("status"),
		LocationID: c.Query("location_id"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles":   vehicles,
		"pagination": pagination(page, perPage, total),
	})
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var req struct {
		CategoryID        *string               `json:"category_id"`
		Color             *string               `json:"color"`
		CurrentMileage    *int                  `json:"current_mileage"`
		CurrentLocationID *string               `json:"current_location_id"`
		Status            *models.VehicleStatus `json:"status"`
		ConditionRating   *int                  `json:"condition_rating"`
		InsuranceExpiry   *time.Time            `json:"insurance_expiry"`
		IsActive          *bool                 `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Param("id"), services.UpdateVehicleInput{
		CategoryID:        req.CategoryID,
		Color:             req.Color,
		CurrentMileage:    req.CurrentMileage,
		CurrentLocationID: req.CurrentLocationID,
		Status:            req.Status,
		ConditionRating:   req.ConditionRating,
		InsuranceExpiry:   req.InsuranceExpiry,
		IsActive:          req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle updated",
		"vehicle": vehicle,
	})
}

func (h *VehicleHandler) CreateCategory(c *gin.Context) {
	var req struct {
		CategoryName      string  `json:"category_name" binding:"required"`
		CategoryCode      string  `json:"category_code" binding:"required"`
		Description       string  `json:"description"`
		BaseDailyRate     float64 `json:"base_daily_rate" binding:"required"`
		BaseHourlyRate    float64 `json:"base_hourly_rate"`
		MileageRate       float64 `json:"mileage_rate"`
		DepositAmount     float64 `json:"deposit_amount"`
		PassengerCapacity int     `json:"passenger_capacity" binding:"required"`
		LuggageCapacity   int     `json:"luggage_capacity"`
		TransmissionType  string  `json:"transmission_type"`
		FuelType          string  `json:"fuel_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	category, err := h.vehicleService.CreateCategory(services.CreateCategoryInput{
		CategoryName:      req.CategoryName,
		CategoryCode:      req.CategoryCode,
		Description:       req.Description,
		BaseDailyRate:     req.BaseDailyRate,
		BaseHourlyRate:    req.BaseHourlyRate,
		MileageRate:       req.MileageRate,
		DepositAmount:     req.DepositAmount,
		PassengerCapacity: req.PassengerCapacity,
		LuggageCapacity:   req.LuggageCapacity,
		TransmissionType:  req.TransmissionType,
		FuelType:          req.FuelType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created",
		"category": category,
	})
}

func (h *VehicleHandler) ListCategories(c *gin.Context) {
	categories, err := h.vehicleService.ListCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
