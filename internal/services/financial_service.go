package services

import (
	"encoding/json"
	"time"

	"rental_erp/internal/models"
	"rental_erp/internal/repository"

	"github.com/google/uuid"
)

type CreatePaymentInput struct {
	ReservationID *string
	CustomerID    string
	PaymentType   string
	PaymentMethod string
	Amount        float64
	Currency      string
	TransactionID string
	Status        string
	Notes         string
}

type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type CreateInvoiceInput struct {
	ReservationID string
	DueDate       *time.Time
	TaxRate       float64
	LineItems     []LineItem
	PaymentTerms  string
	Notes         string
}

type CreatePricingRuleInput struct {
	RuleName          string
	RuleType          string
	CategoryID        *string
	LocationID        *string
	StartDate         *time.Time
	EndDate           *time.Time
	Multiplier        float64
	FixedAdjustment   float64
	MinimumRentalDays int
	MaximumRentalDays int
	Priority          int
}

type FinancialService interface {
	CreatePayment(input CreatePaymentInput) (*models.Payment, error)
	GetPayment(id string) (*models.Payment, error)
	ListPayments(filter repository.PaymentFilter) ([]models.Payment, int64, error)
	RefundPayment(id string, amount float64, reason string) (*models.Payment, error)

	CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error)
	ListInvoices(filter repository.InvoiceFilter) ([]models.Invoice, int64, error)

	CreatePricingRule(input CreatePricingRuleInput) (*models.PricingRule, error)
	ListPricingRules() ([]models.PricingRule, error)

	RevenueReport(start, end *time.Time) (*repository.RevenueTotals, time.Time, time.Time, error)
}

type financialService struct {
	financialRepo   repository.FinancialRepository
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
}

func NewFinancialService(
	financialRepo repository.FinancialRepository,
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
) FinancialService {
	return &financialService{
		financialRepo:   financialRepo,
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
	}
}

func (s *financialService) CreatePayment(input CreatePaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, invalidInput("amount must be positive")
	}
	switch input.PaymentType {
	case "deposit", "rental", "damage", "refund":
	default:
		return nil, invalidInput("unknown payment type")
	}
	switch input.PaymentMethod {
	case "credit_card", "debit_card", "cash", "bank_transfer":
	default:
		return nil, invalidInput("unknown payment method")
	}

	if _, err := s.customerRepo.GetByID(input.CustomerID); err != nil {
		return nil, wrapLookup(err, "customer")
	}
	if input.ReservationID != nil {
		if _, err := s.reservationRepo.GetByID(*input.ReservationID); err != nil {
			return nil, wrapLookup(err, "reservation")
		}
	}

	status := input.Status
	if status == "" {
		status = models.PaymentCompleted
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := &models.Payment{
		ID:            uuid.NewString(),
		ReservationID: input.ReservationID,
		CustomerID:    input.CustomerID,
		PaymentType:   input.PaymentType,
		PaymentMethod: input.PaymentMethod,
		Amount:        input.Amount,
		Currency:      currency,
		TransactionID: input.TransactionID,
		Status:        status,
		Notes:         input.Notes,
	}
	if status == models.PaymentCompleted {
		now := time.Now().UTC()
		payment.ProcessedAt = &now
	}

	if err := s.financialRepo.CreatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *financialService) GetPayment(id string) (*models.Payment, error) {
	payment, err := s.financialRepo.GetPaymentByID(id)
	if err != nil {
		return nil, wrapLookup(err, "payment")
	}
	return payment, nil
}

func (s *financialService) ListPayments(filter repository.PaymentFilter) ([]models.Payment, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.financialRepo.ListPayments(filter)
}

func (s *financialService) RefundPayment(id string, amount float64, reason string) (*models.Payment, error) {
	payment, err := s.financialRepo.GetPaymentByID(id)
	if err != nil {
		return nil, wrapLookup(err, "payment")
	}
	if payment.Status != models.PaymentCompleted {
		return nil, invalidState("only completed payments can be refunded")
	}
	if amount <= 0 {
		amount = payment.Amount
	}
	if amount > payment.Amount {
		return nil, invalidInput("refund amount exceeds payment amount")
	}

	now := time.Now().UTC()
	payment.Status = models.PaymentRefunded
	payment.RefundedAt = &now
	payment.RefundAmount = &amount
	if reason != "" {
		payment.Notes = reason
	}

	if err := s.financialRepo.UpdatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *financialService) CreateInvoice(input CreateInvoiceInput) (*models.Invoice, error) {
	reservation, err := s.reservationRepo.GetByID(input.ReservationID)
	if err != nil {
		return nil, wrapLookup(err, "reservation")
	}

	items := input.LineItems
	if len(items) == 0 {
		amount := reservation.TotalEstimatedCost
		if reservation.TotalActualCost != nil {
			amount = *reservation.TotalActualCost
		}
		items = []LineItem{{
			Description: "Vehicle rental " + reservation.ReservationNumber,
			Quantity:    1,
			UnitPrice:   amount,
			Total:       amount,
		}}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	tax := subtotal * input.TaxRate
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, invalidInput("line items must be JSON-encodable")
	}

	now := time.Now().UTC()
	due := now.AddDate(0, 0, 30)
	if input.DueDate != nil {
		due = *input.DueDate
	}
	terms := input.PaymentTerms
	if terms == "" {
		terms = "Net 30"
	}

	invoice := &models.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: documentNumber("INV"),
		ReservationID: reservation.ID,
		CustomerID:    reservation.CustomerID,
		InvoiceDate:   now,
		DueDate:       due,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		TotalAmount:   subtotal + tax,
		Status:        "draft",
		LineItems:     string(encoded),
		PaymentTerms:  terms,
		Notes:         input.Notes,
	}
	if err := s.financialRepo.CreateInvoice(invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *financialService) ListInvoices(filter repository.InvoiceFilter) ([]models.Invoice, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}
	return s.financialRepo.ListInvoices(filter)
}

func (s *financialService) CreatePricingRule(input CreatePricingRuleInput) (*models.PricingRule, error) {
	if input.RuleName == "" {
		return nil, invalidInput("rule name is required")
	}
	switch input.RuleType {
	case "seasonal", "weekend", "long_term", "promotional":
	default:
		return nil, invalidInput("unknown rule type")
	}
	if input.Multiplier <= 0 {
		return nil, invalidInput("multiplier must be positive")
	}
	if input.StartDate != nil && input.EndDate != nil && !input.EndDate.After(*input.StartDate) {
		return nil, invalidInput("end date must be after start date")
	}

	rule := &models.PricingRule{
		ID:                uuid.NewString(),
		RuleName:          input.RuleName,
		RuleType:          input.RuleType,
		CategoryID:        input.CategoryID,
		LocationID:        input.LocationID,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		Multiplier:        input.Multiplier,
		FixedAdjustment:   input.FixedAdjustment,
		MinimumRentalDays: input.MinimumRentalDays,
		MaximumRentalDays: input.MaximumRentalDays,
		Priority:          input.Priority,
		IsActive:          true,
	}
	if err := s.financialRepo.CreatePricingRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *financialService) ListPricingRules() ([]models.PricingRule, error) {
	return s.financialRepo.ListPricingRules()
}

// RevenueReport defaults to the trailing 30 days when no range is given.
func (s *financialService) RevenueReport(start, end *time.Time) (*repository.RevenueTotals, time.Time, time.Time, error) {
	to := time.Now().UTC()
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -30)
	if start != nil {
		from = *start
	}
	if !to.After(from) {
		return nil, from, to, invalidInput("end date must be after start date")
	}

	totals, err := s.financialRepo.Revenue(from, to)
	if err != nil {
		return nil, from, to, err
	}
	return totals, from, to, nil
}
