package handlers

import (
	"net/http"

	"rental_erp/internal/config"
	"rental_erp/internal/middleware"
	"rental_erp/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth        *AuthHandler
	Customer    *CustomerHandler
	Vehicle     *VehicleHandler
	Location    *LocationHandler
	Reservation *ReservationHandler
	Financial   *FinancialHandler
	Maintenance *MaintenanceHandler
}

// NewRouter assembles the full route tree. Everything under /api requires a
// valid token except registration, login and the health probe; fleet and
// financial administration additionally require a staff account.
func NewRouter(cfg *config.Config, authService services.AuthService, h Handlers) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	api := router.Group("/api")
	api.Use(middleware.Auth(authService))
	{
		api.GET("/auth/profile", h.Auth.GetProfile)
		api.PUT("/auth/profile", h.Auth.UpdateProfile)
		api.POST("/auth/change-password", h.Auth.ChangePassword)

		api.POST("/reservations", h.Reservation.Create)
		api.GET("/reservations", h.Reservation.List)
		api.GET("/reservations/availability", h.Reservation.CheckAvailability)
		api.GET("/reservations/:id", h.Reservation.Get)
		api.POST("/reservations/:id/confirm", h.Reservation.Confirm)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.POST("/reservations/:id/checkin", h.Reservation.CheckIn)
		api.POST("/reservations/:id/checkout", h.Reservation.CheckOut)

		api.GET("/vehicles", h.Vehicle.List)
		api.GET("/vehicles/:id", h.Vehicle.Get)
		api.GET("/vehicles/categories", h.Vehicle.ListCategories)

		api.GET("/locations", h.Location.List)
		api.GET("/locations/:id", h.Location.Get)

		staff := api.Group("")
		staff.Use(middleware.RequireStaff())
		{
			staff.POST("/customers", h.Customer.Create)
			staff.GET("/customers", h.Customer.List)
			staff.GET("/customers/:id", h.Customer.Get)
			staff.PUT("/customers/:id", h.Customer.Update)
			staff.GET("/customers/:id/addresses", h.Customer.GetAddresses)
			staff.POST("/customers/:id/addresses", h.Customer.AddAddress)
			staff.GET("/customers/:id/reservations", h.Customer.GetReservations)
			staff.GET("/customers/:id/payments", h.Customer.GetPayments)

			staff.POST("/vehicles", h.Vehicle.Create)
			staff.PUT("/vehicles/:id", h.Vehicle.Update)
			staff.POST("/vehicles/categories", h.Vehicle.CreateCategory)

			staff.POST("/locations", h.Location.Create)
			staff.PUT("/locations/:id", h.Location.Update)

			staff.POST("/payments", h.Financial.CreatePayment)
			staff.GET("/payments", h.Financial.ListPayments)
			staff.GET("/payments/:id", h.Financial.GetPayment)
			staff.POST("/payments/:id/refund", h.Financial.RefundPayment)
			staff.POST("/invoices", h.Financial.CreateInvoice)
			staff.GET("/invoices", h.Financial.ListInvoices)

			staff.POST("/maintenance/schedules", h.Maintenance.CreateSchedule)
			staff.GET("/maintenance/schedules", h.Maintenance.ListSchedules)
			staff.GET("/maintenance/schedules/:id", h.Maintenance.GetSchedule)
			staff.PUT("/maintenance/schedules/:id", h.Maintenance.UpdateSchedule)
			staff.POST("/maintenance/damage-reports", h.Maintenance.CreateDamageReport)
			staff.GET("/maintenance/damage-reports", h.Maintenance.ListDamageReports)
			staff.GET("/maintenance/damage-reports/:id", h.Maintenance.GetDamageReport)
			staff.PUT("/maintenance/damage-reports/:id", h.Maintenance.UpdateDamageReport)
			staff.GET("/maintenance/dashboard", h.Maintenance.Dashboard)
		}

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/pricing-rules", h.Financial.CreatePricingRule)
			admin.GET("/pricing-rules", h.Financial.ListPricingRules)
			admin.GET("/reports/revenue", h.Financial.RevenueReport)
		}
	}

	return router
}
