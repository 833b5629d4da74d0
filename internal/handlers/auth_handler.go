package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/middleware"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email                string     `json:"email" binding:"required,email"`
		Password             string     `json:"password" binding:"required,min=8"`
		FirstName            string     `json:"first_name" binding:"required"`
		LastName             string     `json:"last_name" binding:"required"`
		PhoneNumber          string     `json:"phone_number"`
		DateOfBirth          *time.Time `json:"date_of_birth"`
		UserType             string     `json:"user_type"`
		DriverLicenseNumber  string     `json:"driver_license_number"`
		DriverLicenseState   string     `json:"driver_license_state"`
		DriverLicenseCountry string     `json:"driver_license_country"`
		PreferredLanguage    string     `json:"preferred_language"`
		MarketingOptIn       bool       `json:"marketing_opt_in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	token, user, err := h.authService.Register(services.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		PhoneNumber:          req.PhoneNumber,
		DateOfBirth:          req.DateOfBirth,
		UserType:             req.UserType,
		DriverLicenseNumber:  req.DriverLicenseNumber,
		DriverLicenseState:   req.DriverLicenseState,
		DriverLicenseCountry: req.DriverLicenseCountry,
		PreferredLanguage:    req.PreferredLanguage,
		MarketingOptIn:       req.MarketingOptIn,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		FirstName   *string    `json:"first_name"`
		LastName    *string    `json:"last_name"`
		PhoneNumber *string    `json:"phone_number"`
		DateOfBirth *time.Time `json:"date_of_birth"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	user, err := h.authService.UpdateProfile(c.GetString(middleware.ContextUserID), services.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    user,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if err := h.authService.ChangePassword(c.GetString(middleware.ContextUserID), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
