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

type stubMaintenanceRepo struct {
	schedules map[string]*models.MaintenanceSchedule
	reports   map[string]*models.DamageReport
	vehicles  *stubVehicleRepo
}

func newStubMaintenanceRepo(vehicles *stubVehicleRepo) *stubMaintenanceRepo {
	return &stubMaintenanceRepo{
		schedules: map[string]*models.MaintenanceSchedule{},
		reports:   map[string]*models.DamageReport{},
		vehicles:  vehicles,
	}
}

func (r *stubMaintenanceRepo) CreateSchedule(schedule *models.MaintenanceSchedule) error {
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *stubMaintenanceRepo) GetScheduleByID(id string) (*models.MaintenanceSchedule, error) {
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return schedule, nil
}

func (r *stubMaintenanceRepo) ListSchedules(filter repository.ScheduleFilter) ([]models.MaintenanceSchedule, int64, error) {
	var out []models.MaintenanceSchedule
	for _, s := range r.schedules {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubMaintenanceRepo) UpdateSchedule(schedule *models.MaintenanceSchedule) error {
	r.schedules[schedule.ID] = schedule
	return nil
}

func (r *stubMaintenanceRepo) CompleteSchedule(schedule *models.MaintenanceSchedule, vehicle *models.Vehicle) error {
	r.schedules[schedule.ID] = schedule
	if vehicle != nil {
		return r.vehicles.Update(vehicle)
	}
	return nil
}

func (r *stubMaintenanceRepo) CreateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error {
	r.reports[report.ID] = report
	if vehicle != nil {
		return r.vehicles.Update(vehicle)
	}
	return nil
}

func (r *stubMaintenanceRepo) GetDamageReportByID(id string) (*models.DamageReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *stubMaintenanceRepo) ListDamageReports(filter repository.DamageReportFilter) ([]models.DamageReport, int64, error) {
	var out []models.DamageReport
	for _, rep := range r.reports {
		out = append(out, *rep)
	}
	return out, int64(len(out)), nil
}

func (r *stubMaintenanceRepo) UpdateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error {
	r.reports[report.ID] = report
	if vehicle != nil {
		return r.vehicles.Update(vehicle)
	}
	return nil
}

func (r *stubMaintenanceRepo) Dashboard(now time.Time) (*repository.MaintenanceDashboard, error) {
	return &repository.MaintenanceDashboard{}, nil
}

func newMaintenanceFixture() (MaintenanceService, *stubVehicleRepo) {
	vehicleRepo := &stubVehicleRepo{
		vehicles: map[string]*models.Vehicle{
			"veh-1": {ID: "veh-1", CurrentMileage: 10000, Status: models.VehicleMaintenance},
		},
	}
	svc := NewMaintenanceService(newStubMaintenanceRepo(vehicleRepo), vehicleRepo)
	return svc, vehicleRepo
}

func TestCreateSchedule(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	schedule, err := svc.CreateSchedule(CreateScheduleInput{
		VehicleID:     "veh-1",
		ServiceType:   "oil_change",
		ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		EstimatedCost: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceScheduled, schedule.Status)
}

func TestCreateScheduleUnknownVehicle(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	_, err := svc.CreateSchedule(CreateScheduleInput{
		VehicleID:     "missing",
		ServiceType:   "oil_change",
		ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteScheduleUpdatesVehicle(t *testing.T) {
	svc, vehicleRepo := newMaintenanceFixture()

	schedule, err := svc.CreateSchedule(CreateScheduleInput{
		VehicleID:     "veh-1",
		ServiceType:   "oil_change",
		ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	status := models.MaintenanceCompleted
	mileage := 10500
	nextMileage := 15500
	updated, err := svc.UpdateSchedule(schedule.ID, UpdateScheduleInput{
		Status:             &status,
		CompletionMileage:  &mileage,
		NextServiceMileage: &nextMileage,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceCompleted, updated.Status)
	assert.NotNil(t, updated.CompletionDate)

	vehicle, err := vehicleRepo.GetByID("veh-1")
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, vehicle.Status)
	assert.Equal(t, 10500, vehicle.CurrentMileage)
	assert.Equal(t, 15500, vehicle.NextServiceDueMileage)
	assert.NotNil(t, vehicle.LastServiceDate)
}

func TestStartScheduleFlipsVehicleToMaintenance(t *testing.T) {
	svc, vehicleRepo := newMaintenanceFixture()
	vehicleRepo.vehicles["veh-1"].Status = models.VehicleAvailable

	schedule, err := svc.CreateSchedule(CreateScheduleInput{
		VehicleID:     "veh-1",
		ServiceType:   "brake_service",
		ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	status := models.MaintenanceInProgress
	_, err = svc.UpdateSchedule(schedule.ID, UpdateScheduleInput{Status: &status})
	require.NoError(t, err)

	vehicle, _ := vehicleRepo.GetByID("veh-1")
	assert.Equal(t, models.VehicleMaintenance, vehicle.Status)
}

func TestUpdateClosedScheduleRejected(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	schedule, err := svc.CreateSchedule(CreateScheduleInput{
		VehicleID:     "veh-1",
		ServiceType:   "oil_change",
		ScheduledDate: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	status := models.MaintenanceCompleted
	_, err = svc.UpdateSchedule(schedule.ID, UpdateScheduleInput{Status: &status})
	require.NoError(t, err)

	_, err = svc.UpdateSchedule(schedule.ID, UpdateScheduleInput{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func damageInput(severity string) CreateDamageReportInput {
	return CreateDamageReportInput{
		VehicleID:         "veh-1",
		ReportedBy:        "agent-1",
		IncidentDate:      time.Date(2025, 8, 2, 14, 0, 0, 0, time.UTC),
		DamageType:        "collision",
		DamageSeverity:    severity,
		DamageDescription: "Front bumper dented",
	}
}

func TestCreateDamageReportMinorKeepsVehicle(t *testing.T) {
	svc, vehicleRepo := newMaintenanceFixture()
	vehicleRepo.vehicles["veh-1"].Status = models.VehicleAvailable

	report, err := svc.CreateDamageReport(damageInput("minor"))
	require.NoError(t, err)
	assert.Equal(t, models.DamageReported, report.Status)

	vehicle, _ := vehicleRepo.GetByID("veh-1")
	assert.Equal(t, models.VehicleAvailable, vehicle.Status)
}

func TestCreateDamageReportMajorSidelinesVehicle(t *testing.T) {
	svc, vehicleRepo := newMaintenanceFixture()
	vehicleRepo.vehicles["veh-1"].Status = models.VehicleAvailable

	_, err := svc.CreateDamageReport(damageInput("major"))
	require.NoError(t, err)

	vehicle, _ := vehicleRepo.GetByID("veh-1")
	assert.Equal(t, models.VehicleOutOfService, vehicle.Status)
}

func TestCreateDamageReportValidation(t *testing.T) {
	svc, _ := newMaintenanceFixture()

	_, err := svc.CreateDamageReport(damageInput("catastrophic"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	input := damageInput("minor")
	input.DamageDescription = ""
	_, err = svc.CreateDamageReport(input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteDamageReportRestoresVehicle(t *testing.T) {
	svc, vehicleRepo := newMaintenanceFixture()
	vehicleRepo.vehicles["veh-1"].Status = models.VehicleAvailable

	report, err := svc.CreateDamageReport(damageInput("major"))
	require.NoError(t, err)

	status := models.DamageCompleted
	cost := 1200.0
	updated, err := svc.UpdateDamageReport(report.ID, UpdateDamageReportInput{
		Status:           &status,
		ActualRepairCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DamageCompleted, updated.Status)

	vehicle, _ := vehicleRepo.GetByID("veh-1")
	assert.Equal(t, models.VehicleAvailable, vehicle.Status)

	_, err = svc.UpdateDamageReport(report.ID, UpdateDamageReportInput{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidState)
}
