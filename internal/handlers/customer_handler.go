package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService    services.CustomerService
	reservationService services.ReservationService
	financialService   services.FinancialService
}

func NewCustomerHandler(
	customerService services.CustomerService,
	reservationService services.ReservationService,
	financialService services.FinancialService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:    customerService,
		reservationService: reservationService,
		financialService:   financialService,
	}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		Email                string     `json:"email" binding:"required,email"`
		Password             string     `json:"password"`
		FirstName            string     `json:"first_name" binding:"required"`
		LastName             string     `json:"last_name" binding:"required"`
		PhoneNumber          string     `json:"phone_number"`
		DateOfBirth          *time.Time `json:"date_of_birth"`
		DriverLicenseNumber  string     `json:"driver_license_number"`
		DriverLicenseState   string     `json:"driver_license_state"`
		DriverLicenseCountry string     `json:"driver_license_country"`
		PreferredLanguage    string     `json:"preferred_language"`
		MarketingOptIn       bool       `json:"marketing_opt_in"`
		RiskLevel            string     `json:"risk_level"`
		Notes                string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, first name and last name are required"})
		return
	}

	customer, err := h.customerService.CreateCustomer(services.CreateCustomerInput{
		Email:                req.Email,
		Password:             req.Password,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PhoneNumber:          req.PhoneNumber,
		DateOfBirth:          req.DateOfBirth,
		DriverLicenseNumber:  req.DriverLicenseNumber,
		DriverLicenseState:   req.DriverLicenseState,
		DriverLicenseCountry: req.DriverLicenseCountry,
		PreferredLanguage:    req.PreferredLanguage,
		MarketingOptIn:       req.MarketingOptIn,
		RiskLevel:            req.RiskLevel,
		Notes:                req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created",
		"customer": customer,
	})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	customers, total, err := h.customerService.ListCustomers(repository.CustomerFilter{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":  customers,
		"pagination": pagination(page, perPage, total),
	})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req struct {
		DriverLicenseNumber  *string    `json:"driver_license_number"`
		DriverLicenseState   *string    `json:"driver_license_state"`
		DriverLicenseCountry *string    `json:"driver_license_country"`
		DriverLicenseExpiry  *time.Time `json:"driver_license_expiry"`
		PreferredLanguage    *string    `json:"preferred_language"`
		MarketingOptIn       *bool      `json:"marketing_opt_in"`
		LoyaltyProgramMember *bool      `json:"loyalty_program_member"`
		RiskLevel            *string    `json:"risk_level"`
		Notes                *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Param("id"), services.UpdateCustomerInput{
		DriverLicenseNumber:  req.DriverLicenseNumber,
		DriverLicenseState:   req.DriverLicenseState,
		DriverLicenseCountry: req.DriverLicenseCountry,
		DriverLicenseExpiry:  req.DriverLicenseExpiry,
		PreferredLanguage:    req.PreferredLanguage,
		MarketingOptIn:       req.MarketingOptIn,
		LoyaltyProgramMember: req.LoyaltyProgramMember,
		RiskLevel:            req.RiskLevel,
		Notes:                req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer updated",
		"customer": customer,
	})
}

func (h *CustomerHandler) AddAddress(c *gin.Context) {
	var req struct {
		AddressType    string `json:"address_type"`
		StreetAddress1 string `json:"street_address_1" binding:"required"`
		StreetAddress2 string `json:"street_address_2"`
		City           string `json:"city" binding:"required"`
		StateProvince  string `json:"state_province"`
		PostalCode     string `json:"postal_code"`
		Country        string `json:"country" binding:"required"`
		IsPrimary      bool   `json:"is_primary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	address, err := h.customerService.AddAddress(c.Param("id"), services.AddAddressInput{
		AddressType:    req.AddressType,
		StreetAddress1: req.StreetAddress1,
		StreetAddress2: req.StreetAddress2,
		City:           req.City,
		StateProvince:  req.StateProvince,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		IsPrimary:      req.IsPrimary,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address added",
		"address": address,
	})
}

func (h *CustomerHandler) GetAddresses(c *gin.Context) {
	addresses, err := h.customerService.GetAddresses(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (h *CustomerHandler) GetReservations(c *gin.Context) {
	page, perPage := pageParams(c)
	if _, err := h.customerService.GetCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	reservations, total, err := h.reservationService.ListReservations(repository.ReservationFilter{
		CustomerID: c.Param("id"),
		Status:     c.Query("status"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination":   pagination(page, perPage, total),
	})
}

func (h *CustomerHandler) GetPayments(c *gin.Context) {
	page, perPage := pageParams(c)
	if _, err := h.customerService.GetCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	payments, total, err := h.financialService.ListPayments(repository.PaymentFilter{
		CustomerID: c.Param("id"),
		Status:     c.Query("status"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": pagination(page, perPage, total),
	})
}
