package repository

import (
	"time"

	"rental_erp/internal/models"

	"gorm.io/gorm"
)

type ScheduleFilter struct {
	VehicleID string
	Status    string
	Page      int
	PerPage   int
}

type DamageReportFilter struct {
	VehicleID string
	Status    string
	Severity  string
	Page      int
	PerPage   int
}

// MaintenanceDashboard summarizes the state of the fleet's upkeep.
type MaintenanceDashboard struct {
	OverdueSchedules    int64            `json:"overdue_schedules"`
	UpcomingSchedules   int64            `json:"upcoming_schedules"`
	OpenDamageReports   int64            `json:"open_damage_reports"`
	VehiclesByStatus    map[string]int64 `json:"vehicles_by_status"`
	EstimatedRepairCost float64          `json:"estimated_repair_cost"`
}

type MaintenanceRepository interface {
	CreateSchedule(schedule *models.MaintenanceSchedule) error
	GetScheduleByID(id string) (*models.MaintenanceSchedule, error)
	ListSchedules(filter ScheduleFilter) ([]models.MaintenanceSchedule, int64, error)
	UpdateSchedule(schedule *models.MaintenanceSchedule) error
	CompleteSchedule(schedule *models.MaintenanceSchedule, vehicle *models.Vehicle) error

	CreateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error
	GetDamageReportByID(id string) (*models.DamageReport, error)
	ListDamageReports(filter DamageReportFilter) ([]models.DamageReport, int64, error)
	UpdateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error

	Dashboard(now time.Time) (*MaintenanceDashboard, error)
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) CreateSchedule(schedule *models.MaintenanceSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *maintenanceRepository) GetScheduleByID(id string) (*models.MaintenanceSchedule, error) {
	var schedule models.MaintenanceSchedule
	err := r.db.Preload("Vehicle").First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *maintenanceRepository) ListSchedules(filter ScheduleFilter) ([]models.MaintenanceSchedule, int64, error) {
	query := r.db.Model(&models.MaintenanceSchedule{}).Preload("Vehicle")
	if filter.VehicleID != "" {
		query = query.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []models.MaintenanceSchedule
	err := query.Order("scheduled_date").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&schedules).Error
	return schedules, total, err
}

func (r *maintenanceRepository) UpdateSchedule(schedule *models.MaintenanceSchedule) error {
	return r.db.Save(schedule).Error
}

// CompleteSchedule saves the finished schedule and the vehicle's updated
// service fields in one transaction.
func (r *maintenanceRepository) CompleteSchedule(schedule *models.MaintenanceSchedule, vehicle *models.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(schedule).Error; err != nil {
			return err
		}
		if vehicle != nil {
			return tx.Save(vehicle).Error
		}
		return nil
	})
}

func (r *maintenanceRepository) CreateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		if vehicle != nil {
			return tx.Save(vehicle).Error
		}
		return nil
	})
}

func (r *maintenanceRepository) GetDamageReportByID(id string) (*models.DamageReport, error) {
	var report models.DamageReport
	err := r.db.Preload("Vehicle").First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *maintenanceRepository) ListDamageReports(filter DamageReportFilter) ([]models.DamageReport, int64, error) {
	query := r.db.Model(&models.DamageReport{}).Preload("Vehicle")
	if filter.VehicleID != "" {
		query = query.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("damage_severity = ?", filter.Severity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.DamageReport
	err := query.Order("incident_date DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&reports).Error
	return reports, total, err
}

func (r *maintenanceRepository) UpdateDamageReport(report *models.DamageReport, vehicle *models.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(report).Error; err != nil {
			return err
		}
		if vehicle != nil {
			return tx.Save(vehicle).Error
		}
		return nil
	})
}

func (r *maintenanceRepository) Dashboard(now time.Time) (*MaintenanceDashboard, error) {
	dashboard := &MaintenanceDashboard{VehiclesByStatus: map[string]int64{}}
	openStatuses := []string{models.MaintenanceScheduled, models.MaintenanceInProgress}

	if err := r.db.Model(&models.MaintenanceSchedule{}).
		Where("status IN ?", openStatuses).
		Where("scheduled_date < ?", now).
		Count(&dashboard.OverdueSchedules).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.MaintenanceSchedule{}).
		Where("status IN ?", openStatuses).
		Where("scheduled_date >= ? AND scheduled_date <= ?", now, now.AddDate(0, 0, 7)).
		Count(&dashboard.UpcomingSchedules).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.DamageReport{}).
		Where("status <> ?", models.DamageCompleted).
		Count(&dashboard.OpenDamageReports).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.DamageReport{}).
		Where("status <> ?", models.DamageCompleted).
		Select("COALESCE(SUM(estimated_repair_cost), 0)").
		Scan(&dashboard.EstimatedRepairCost).Error; err != nil {
		return nil, err
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := r.db.Model(&models.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		dashboard.VehiclesByStatus[sc.Status] = sc.Count
	}

	return dashboard, nil
}
