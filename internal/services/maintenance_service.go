package services

import (
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
)

type CreateScheduleInput struct {
	VehicleID        string
	ServiceType      string
	ScheduledDate    time.Time
	ScheduledMileage int
	EstimatedCost    float64
	ServiceNotes     string
}

type UpdateScheduleInput struct {
	Status             *string
	ScheduledDate      *time.Time
	ActualCost         *float64
	CompletionDate     *time.Time
	CompletionMileage  *int
	ServiceNotes       *string
	NextServiceDate    *time.Time
	NextServiceMileage *int
}

type CreateDamageReportInput struct {
	VehicleID           string
	ReservationID       *string
	ReportedBy          string
	IncidentDate        time.Time
	DamageType          string
	DamageSeverity      string
	DamageDescription   string
	EstimatedRepairCost float64
	IsCustomerFault     bool
}

type UpdateDamageReportInput struct {
	Status               *string
	DamageSeverity       *string
	EstimatedRepairCost  *float64
	ActualRepairCost     *float64
	InsuranceClaimNumber *string
	IsCustomerFault      *bool
}

type MaintenanceService interface {
	CreateSchedule(input CreateScheduleInput) (*models.MaintenanceSchedule, error)
	GetSchedule(id string) (*models.MaintenanceSchedule, error)
	ListSchedules(filter repository.ScheduleFilter) ([]models.MaintenanceSchedule, int64, error)
	UpdateSchedule(id string, input UpdateScheduleInput) (*models.MaintenanceSchedule, error)

	CreateDamageReport(input CreateDamageReportInput) (*models.DamageReport, error)
	GetDamageReport(id string) (*models.DamageReport, error)
	ListDamageReports(filter repository.DamageReportFilter) ([]models.DamageReport, int64, error)
	UpdateDamageReport(id string, input UpdateDamageReportInput) (*models.DamageReport, error)

	Dashboard() (*repository.MaintenanceDashboard, error)
}

type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository, vehicleRepo repository.VehicleRepository) MaintenanceService {
	return &maintenanceService{maintenanceRepo: maintenanceRepo, vehicleRepo: vehicleRepo}
}

func (s *maintenanceService) CreateSchedule(input CreateScheduleInput) (*models.MaintenanceSchedule, error) {
	if input.ServiceType == "" {
		return nil, invalidInput("service type is required")
	}
	if input.ScheduledDate.IsZero() {
		return nil, invalidInput("scheduled date is required")
	}
	if _, err := s.vehicleRepo.GetByID(input.VehicleID); err != nil {
		return nil, wrapLookup(err, "vehicle")
	}

	schedule := &models.MaintenanceSchedule{
		ID:               uuid.NewString(),
		VehicleID:        input.VehicleID,
		ServiceType:      input.ServiceType,
		ScheduledDate:    input.ScheduledDate,
		ScheduledMileage: input.ScheduledMileage,
		EstimatedCost:    input.EstimatedCost,
		Status:           models.MaintenanceScheduled,
		ServiceNotes:     input.ServiceNotes,
	}
	if err := s.maintenanceRepo.CreateSchedule(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *maintenanceService) GetSchedule(id string) (*models.MaintenanceSchedule, error) {
	schedule, err := s.maintenanceRepo.GetScheduleByID(id)
	if err != nil {
		return nil, wrapLookup(err, "maintenance schedule")
	}
	return schedule, nil
}

func (s *maintenanceService) ListSchedules(filter repository.ScheduleFilter) ([]models.MaintenanceSchedule, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.maintenanceRepo.ListSchedules(filter)
}

// UpdateSchedule applies the edits; completing a schedule also stamps the
// vehicle's service fields and releases it from maintenance status.
func (s *maintenanceService) UpdateSchedule(id string, input UpdateScheduleInput) (*models.MaintenanceSchedule, error) {
	schedule, err := s.maintenanceRepo.GetScheduleByID(id)
	if err != nil {
		return nil, wrapLookup(err, "maintenance schedule")
	}
	if schedule.Status == models.MaintenanceCompleted || schedule.Status == models.MaintenanceCancelled {
		return nil, invalidState("schedule is already closed")
	}

	if input.ScheduledDate != nil {
		schedule.ScheduledDate = *input.ScheduledDate
	}
	if input.ActualCost != nil {
		schedule.ActualCost = *input.ActualCost
	}
	if input.ServiceNotes != nil {
		schedule.ServiceNotes = *input.ServiceNotes
	}
	if input.NextServiceDate != nil {
		schedule.NextServiceDate = input.NextServiceDate
	}
	if input.NextServiceMileage != nil {
		schedule.NextServiceMileage = *input.NextServiceMileage
	}

	completing := false
	starting := false
	if input.Status != nil {
		switch *input.Status {
		case models.MaintenanceInProgress:
			starting = schedule.Status != models.MaintenanceInProgress
			schedule.Status = *input.Status
		case models.MaintenanceScheduled, models.MaintenanceCancelled:
			schedule.Status = *input.Status
		case models.MaintenanceCompleted:
			completing = true
			schedule.Status = models.MaintenanceCompleted
			now := time.Now().UTC()
			schedule.CompletionDate = &now
			if input.CompletionDate != nil {
				schedule.CompletionDate = input.CompletionDate
			}
			if input.CompletionMileage != nil {
				schedule.CompletionMileage = *input.CompletionMileage
			}
		default:
			return nil, invalidInput("unknown schedule status")
		}
	}

	var vehicle *models.Vehicle
	if starting {
		vehicle, err = s.vehicleRepo.GetByID(schedule.VehicleID)
		if err != nil {
			return nil, wrapLookup(err, "vehicle")
		}
		if vehicle.Status == models.VehicleAvailable {
			vehicle.Status = models.VehicleMaintenance
		} else {
			vehicle = nil
		}
	}
	if completing {
		vehicle, err = s.vehicleRepo.GetByID(schedule.VehicleID)
		if err != nil {
			return nil, wrapLookup(err, "vehicle")
		}
		vehicle.LastServiceDate = schedule.CompletionDate
		if schedule.NextServiceMileage > 0 {
			vehicle.NextServiceDueMileage = schedule.NextServiceMileage
		}
		if schedule.CompletionMileage > vehicle.CurrentMileage {
			vehicle.CurrentMileage = schedule.CompletionMileage
		}
		if vehicle.Status == models.VehicleMaintenance {
			vehicle.Status = models.VehicleAvailable
		}
	}

	if err := s.maintenanceRepo.CompleteSchedule(schedule, vehicle); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CreateDamageReport files the report; major damage or a total loss pulls the
// vehicle out of service immediately.
func (s *maintenanceService) CreateDamageReport(input CreateDamageReportInput) (*models.DamageReport, error) {
	switch input.DamageSeverity {
	case "minor", "moderate", "major", "total_loss":
	default:
		return nil, invalidInput("damage severity must be minor, moderate, major or total_loss")
	}
	if input.DamageType == "" || input.DamageDescription == "" {
		return nil, invalidInput("damage type and description are required")
	}
	if input.IncidentDate.IsZero() {
		return nil, invalidInput("incident date is required")
	}

	vehicle, err := s.vehicleRepo.GetByID(input.VehicleID)
	if err != nil {
		return nil, wrapLookup(err, "vehicle")
	}

	report := &models.DamageReport{
		ID:                  uuid.NewString(),
		VehicleID:           input.VehicleID,
		ReservationID:       input.ReservationID,
		ReportedBy:          input.ReportedBy,
		IncidentDate:        input.IncidentDate,
		DamageType:          input.DamageType,
		DamageSeverity:      input.DamageSeverity,
		DamageDescription:   input.DamageDescription,
		EstimatedRepairCost: input.EstimatedRepairCost,
		IsCustomerFault:     input.IsCustomerFault,
		Status:              models.DamageReported,
	}

	var sidelined *models.Vehicle
	if input.DamageSeverity == "major" || input.DamageSeverity == "total_loss" {
		vehicle.Status = models.VehicleOutOfService
		sidelined = vehicle
	}

	if err := s.maintenanceRepo.CreateDamageReport(report, sidelined); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *maintenanceService) GetDamageReport(id string) (*models.DamageReport, error) {
	report, err := s.maintenanceRepo.GetDamageReportByID(id)
	if err != nil {
		return nil, wrapLookup(err, "damage report")
	}
	return report, nil
}

func (s *maintenanceService) ListDamageReports(filter repository.DamageReportFilter) ([]models.DamageReport, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.maintenanceRepo.ListDamageReports(filter)
}

func (s *maintenanceService) UpdateDamageReport(id string, input UpdateDamageReportInput) (*models.DamageReport, error) {
	report, err := s.maintenanceRepo.GetDamageReportByID(id)
	if err != nil {
		return nil, wrapLookup(err, "damage report")
	}
	if report.Status == models.DamageCompleted {
		return nil, invalidState("damage report is already completed")
	}

	if input.DamageSeverity != nil {
		switch *input.DamageSeverity {
		case "minor", "moderate", "major", "total_loss":
			report.DamageSeverity = *input.DamageSeverity
		default:
			return nil, invalidInput("damage severity must be minor, moderate, major or total_loss")
		}
	}
	if input.EstimatedRepairCost != nil {
		report.EstimatedRepairCost = *input.EstimatedRepairCost
	}
	if input.ActualRepairCost != nil {
		report.ActualRepairCost = *input.ActualRepairCost
	}
	if input.InsuranceClaimNumber != nil {
		report.InsuranceClaimNumber = *input.InsuranceClaimNumber
	}
	if input.IsCustomerFault != nil {
		report.IsCustomerFault = *input.IsCustomerFault
	}

	var restored *models.Vehicle
	if input.Status != nil {
		switch *input.Status {
		case models.DamageReported, models.DamageAssessed, models.DamageRepairing:
			report.Status = *input.Status
		case models.DamageCompleted:
			report.Status = models.DamageCompleted
			vehicle, err := s.vehicleRepo.GetByID(report.VehicleID)
			if err != nil {
				return nil, wrapLookup(err, "vehicle")
			}
			if vehicle.Status == models.VehicleOutOfService || vehicle.Status == models.VehicleMaintenance {
				vehicle.Status = models.VehicleAvailable
				restored = vehicle
			}
		default:
			return nil, invalidInput("unknown damage report status")
		}
	}

	if err := s.maintenanceRepo.UpdateDamageReport(report, restored); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *maintenanceService) Dashboard() (*repository.MaintenanceDashboard, error) {
	return s.maintenanceRepo.Dashboard(time.Now().UTC())
}
