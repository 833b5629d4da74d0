package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/middleware"
	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req struct {
		VehicleID        string    `json:"vehicle_id" binding:"required"`
		ServiceType      string    `json:"service_type" binding:"required"`
		ScheduledDate    time.Time `json:"scheduled_date" binding:"required"`
		ScheduledMileage int       `json:"scheduled_mileage"`
		EstimatedCost    float64   `json:"estimated_cost"`
		ServiceNotes     string    `json:"service_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	schedule, err := h.maintenanceService.CreateSchedule(services.CreateScheduleInput{
		VehicleID:        req.VehicleID,
		ServiceType:      req.ServiceType,
		ScheduledDate:    req.ScheduledDate,
		ScheduledMileage: req.ScheduledMileage,
		EstimatedCost:    req.EstimatedCost,
		ServiceNotes:     req.ServiceNotes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Maintenance scheduled",
		"schedule": schedule,
	})
}

func (h *MaintenanceHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.maintenanceService.GetSchedule(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	page, perPage := pageParams(c)
	schedules, total, err := h.maintenanceService.ListSchedules(repository.ScheduleFilter{
		VehicleID: c.Query("vehicle_id"),
		Status:    c.Query("status"),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules":  schedules,
		"pagination": pagination(page, perPage, total),
	})
}

func (h *MaintenanceHandler) UpdateSchedule(c *gin.Context) {
	var req struct {
		Status             *string    `json:"status"`
		ScheduledDate      *time.Time `json:"scheduled_date"`
		ActualCost         *float64   `json:"actual_cost"`
		CompletionDate     *time.Time `json:"completion_date"`
		CompletionMileage  *int       `json:"completion_mileage"`
		ServiceNotes       *string    `json:"service_notes"`
		NextServiceDate    *time.Time `json:"next_service_date"`
		NextServiceMileage *int       `json:"next_service_mileage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	schedule, err := h.maintenanceService.UpdateSchedule(c.Param("id"), services.UpdateScheduleInput{
		Status:             req.Status,
		ScheduledDate:      req.ScheduledDate,
		ActualCost:         req.ActualCost,
		CompletionDate:     req.CompletionDate,
		CompletionMileage:  req.CompletionMileage,
		ServiceNotes:       req.ServiceNotes,
		NextServiceDate:    req.NextServiceDate,
		NextServiceMileage: req.NextServiceMileage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule updated",
		"schedule": schedule,
	})
}

func (h *MaintenanceHandler) CreateDamageReport(c *gin.Context) {
	var req struct {
		VehicleID           string    `json:"vehicle_id" binding:"required"`
		ReservationID       *string   `json:"reservation_id"`
		IncidentDate        time.Time `json:"incident_date" binding:"required"`
		DamageType          string    `json:"damage_type" binding:"required"`
		DamageSeverity      string    `json:"damage_severity" binding:"required"`
		DamageDescription   string    `json:"damage_description" binding:"required"`
		EstimatedRepairCost float64   `json:"estimated_repair_cost"`
		IsCustomerFault     bool      `json:"is_customer_fault"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	report, err := h.maintenanceService.CreateDamageReport(services.CreateDamageReportInput{
		VehicleID:           req.VehicleID,
		ReservationID:       req.ReservationID,
		ReportedBy:          c.GetString(middleware.ContextUserID),
		IncidentDate:        req.IncidentDate,
		DamageType:          req.DamageType,
		DamageSeverity:      req.DamageSeverity,
		DamageDescription:   req.DamageDescription,
		EstimatedRepairCost: req.EstimatedRepairCost,
		IsCustomerFault:     req.IsCustomerFault,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Damage report filed",
		"damage_report": report,
	})
}

func (h *MaintenanceHandler) GetDamageReport(c *gin.Context) {
	report, err := h.maintenanceService.GetDamageReport(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"damage_report": report})
}

func (h *MaintenanceHandler) ListDamageReports(c *gin.Context) {
	page, perPage := pageParams(c)
	reports, total, err := h.maintenanceService.ListDamageReports(repository.DamageReportFilter{
		VehicleID: c.Query("vehicle_id"),
		Status:    c.Query("status"),
		Severity:  c.Query("severity"),
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"damage_reports": reports,
		"pagination":     pagination(page, perPage, total),
	})
}

func (h *MaintenanceHandler) UpdateDamageReport(c *gin.Context) {
	var req struct {
		Status               *string  `json:"status"`
		DamageSeverity       *string  `json:"damage_severity"`
		EstimatedRepairCost  *float64 `json:"estimated_repair_cost"`
		ActualRepairCost     *float64 `json:"actual_repair_cost"`
		InsuranceClaimNumber *string  `json:"insurance_claim_number"`
		IsCustomerFault      *bool    `json:"is_customer_fault"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	report, err := h.maintenanceService.UpdateDamageReport(c.Param("id"), services.UpdateDamageReportInput{
		Status:               req.Status,
		DamageSeverity:       req.DamageSeverity,
		EstimatedRepairCost:  req.EstimatedRepairCost,
		ActualRepairCost:     req.ActualRepairCost,
		InsuranceClaimNumber: req.InsuranceClaimNumber,
		IsCustomerFault:      req.IsCustomerFault,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Damage report updated",
		"damage_report": report,
	})
}

func (h *MaintenanceHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.maintenanceService.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}
