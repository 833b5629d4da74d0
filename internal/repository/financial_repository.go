package repository

import (
	"time"

	"rental_erp/internal/models"

	"gorm.io/gorm"
)

type PaymentFilter struct {
	Status     string
	CustomerID string
	Page       int
	PerPage    int
}

type InvoiceFilter struct {
	Status     string
	CustomerID string
	Page       int
	PerPage    int
}

// RevenueTotals aggregates completed payments and reservation outcomes over a
// date range for the revenue report.
type RevenueTotals struct {
	TotalRevenue          float64
	TotalReservations     int64
	CompletedReservations int64
	RevenueByType         []RevenueByType
	DailyRevenue          []DailyRevenue
}

type RevenueByType struct {
	PaymentType string  `json:"type"`
	Total       float64 `json:"total"`
}

type DailyRevenue struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type FinancialRepository interface {
	CreatePayment(payment *models.Payment) error
	GetPaymentByID(id string) (*models.Payment, error)
	ListPayments(filter PaymentFilter) ([]models.Payment, int64, error)
	UpdatePayment(payment *models.Payment) error

	CreateInvoice(invoice *models.Invoice) error
	ListInvoices(filter InvoiceFilter) ([]models.Invoice, int64, error)

	CreatePricingRule(rule *models.PricingRule) error
	ListPricingRules() ([]models.PricingRule, error)

	Revenue(start, end time.Time) (*RevenueTotals, error)
}

type financialRepository struct {
	db *gorm.DB
}

func NewFinancialRepository(db *gorm.DB) FinancialRepository {
	return &financialRepository{db: db}
}

func (r *financialRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *financialRepository) GetPaymentByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *financialRepository) ListPayments(filter PaymentFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&payments).Error
	return payments, total, err
}

func (r *financialRepository) UpdatePayment(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *financialRepository) CreateInvoice(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *financialRepository) ListInvoices(filter InvoiceFilter) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []models.Invoice
	err := query.Order("invoice_date DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *financialRepository) CreatePricingRule(rule *models.PricingRule) error {
	return r.db.Create(rule).Error
}

func (r *financialRepository) ListPricingRules() ([]models.PricingRule, error) {
	var rules []models.PricingRule
	err := r.db.Where("is_active = ?", true).Order("priority DESC").Find(&rules).Error
	return rules, err
}

func (r *financialRepository) Revenue(start, end time.Time) (*RevenueTotals, error) {
	totals := &RevenueTotals{}

	completed := r.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Where("processed_at >= ? AND processed_at <= ?", start, end)

	if err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totals.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := completed.Session(&gorm.Session{}).
		Select("payment_type, SUM(amount) AS total").
		Group("payment_type").
		Scan(&totals.RevenueByType).Error; err != nil {
		return nil, err
	}

	if err := completed.Session(&gorm.Session{}).
		Select("DATE(processed_at) AS date, SUM(amount) AS total").
		Group("DATE(processed_at)").
		Order("date").
		Scan(&totals.DailyRevenue).Error; err != nil {
		return nil, err
	}

	reservations := r.db.Model(&models.Reservation{}).
		Where("pickup_datetime >= ? AND pickup_datetime <= ?", start, end)

	if err := reservations.Session(&gorm.Session{}).Count(&totals.TotalReservations).Error; err != nil {
		return nil, err
	}
	if err := reservations.Session(&gorm.Session{}).
		Where("status = ?", models.ReservationCompleted).
		Count(&totals.CompletedReservations).Error; err != nil {
		return nil, err
	}

	return totals, nil
}
