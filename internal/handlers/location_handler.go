package handlers

import (
	"net/http"

	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req struct {
		LocationCode     string                 `json:"location_code" binding:"required"`
		LocationName     string                 `json:"location_name" binding:"required"`
		LocationType     string                 `json:"location_type"`
		StreetAddress    string                 `json:"street_address" binding:"required"`
		City             string                 `json:"city" binding:"required"`
		StateProvince    string                 `json:"state_province"`
		PostalCode       string                 `json:"postal_code"`
		Country          string                 `json:"country" binding:"required"`
		Latitude         float64                `json:"latitude"`
		Longitude        float64                `json:"longitude"`
		PhoneNumber      string                 `json:"phone_number"`
		OperatingHours   map[string]interface{} `json:"operating_hours"`
		Capacity         int                    `json:"capacity"`
		IsPickupLocation *bool                  `json:"is_pickup_location"`
		IsReturnLocation *bool                  `json:"is_return_location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	location, err := h.locationService.CreateLocation(services.CreateLocationInput{
		LocationCode:     req.LocationCode,
		LocationName:     req.LocationName,
		LocationType:     req.LocationType,
		StreetAddress:    req.StreetAddress,
		City:             req.City,
		StateProvince:    req.StateProvince,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		PhoneNumber:      req.PhoneNumber,
		OperatingHours:   req.OperatingHours,
		Capacity:         req.Capacity,
		IsPickupLocation: req.IsPickupLocation,
		IsReturnLocation: req.IsReturnLocation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Location created",
		"location": location,
	})
}

func (h *LocationHandler) Get(c *gin.Context) {
	location, err := h.locationService.GetLocation(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

func (h *LocationHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"
	locations, err := h.locationService.ListLocations(activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *LocationHandler) Update(c *gin.Context) {
	var req struct {
		LocationName     *string                `json:"location_name"`
		LocationType     *string                `json:"location_type"`
		StreetAddress    *string                `json:"street_address"`
		City             *string                `json:"city"`
		StateProvince    *string                `json:"state_province"`
		PostalCode       *string                `json:"postal_code"`
		PhoneNumber      *string                `json:"phone_number"`
		OperatingHours   map[string]interface{} `json:"operating_hours"`
		Capacity         *int                   `json:"capacity"`
		IsPickupLocation *bool                  `json:"is_pickup_location"`
		IsReturnLocation *bool                  `json:"is_return_location"`
		IsActive         *bool                  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	location, err := h.locationService.UpdateLocation(c.Param("id"), services.UpdateLocationInput{
		LocationName:     req.LocationName,
		LocationType:     req.LocationType,
		StreetAddress:    req.StreetAddress,
		City:             req.City,
		StateProvince:    req.StateProvince,
		PostalCode:       req.PostalCode,
		PhoneNumber:      req.PhoneNumber,
		OperatingHours:   req.OperatingHours,
		Capacity:         req.Capacity,
		IsPickupLocation: req.IsPickupLocation,
		IsReturnLocation: req.IsReturnLocation,
		IsActive:         req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Location updated",
		"location": location,
	})
}
