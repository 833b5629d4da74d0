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

type stubFinancialRepo struct {
	payments map[string]*models.Payment
	invoices []*models.Invoice
	rules    []*models.PricingRule
}

func newStubFinancialRepo() *stubFinancialRepo {
	return &stubFinancialRepo{payments: map[string]*models.Payment{}}
}

func (r *stubFinancialRepo) CreatePayment(payment *models.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *stubFinancialRepo) GetPaymentByID(id string) (*models.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (r *stubFinancialRepo) ListPayments(filter repository.PaymentFilter) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubFinancialRepo) UpdatePayment(payment *models.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *stubFinancialRepo) CreateInvoice(invoice *models.Invoice) error {
	r.invoices = append(r.invoices, invoice)
	return nil
}

func (r *stubFinancialRepo) ListInvoices(filter repository.InvoiceFilter) ([]models.Invoice, int64, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubFinancialRepo) CreatePricingRule(rule *models.PricingRule) error {
	r.rules = append(r.rules, rule)
	return nil
}

func (r *stubFinancialRepo) ListPricingRules() ([]models.PricingRule, error) {
	var out []models.PricingRule
	for _, rule := range r.rules {
		out = append(out, *rule)
	}
	return out, nil
}

func (r *stubFinancialRepo) Revenue(start, end time.Time) (*repository.RevenueTotals, error) {
	return &repository.RevenueTotals{TotalRevenue: 500}, nil
}

func newFinancialFixture() (FinancialService, *stubFinancialRepo, *stubReservationRepo) {
	financialRepo := newStubFinancialRepo()
	resRepo := newStubReservationRepo()
	svc := NewFinancialService(financialRepo, resRepo, newStubCustomerRepo("cust-1"))
	return svc, financialRepo, resRepo
}

func paymentInput() CreatePaymentInput {
	return CreatePaymentInput{
		CustomerID:    "cust-1",
		PaymentType:   "rental",
		PaymentMethod: "credit_card",
		Amount:        129.98,
	}
}

func TestCreatePayment(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	payment, err := svc.CreatePayment(paymentInput())
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.NotNil(t, payment.ProcessedAt)
	assert.Equal(t, "USD", payment.Currency)
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	input := paymentInput()
	input.Amount = 0
	_, err := svc.CreatePayment(input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = paymentInput()
	input.PaymentType = "gift"
	_, err = svc.CreatePayment(input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = paymentInput()
	input.CustomerID = "missing"
	_, err = svc.CreatePayment(input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePendingPaymentHasNoProcessedAt(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	input := paymentInput()
	input.Status = models.PaymentPending
	payment, err := svc.CreatePayment(input)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Nil(t, payment.ProcessedAt)
}

func TestRefundPayment(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	payment, err := svc.CreatePayment(paymentInput())
	require.NoError(t, err)

	refunded, err := svc.RefundPayment(payment.ID, 50, "partial refund")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentRefunded, refunded.Status)
	require.NotNil(t, refunded.RefundAmount)
	assert.InDelta(t, 50.0, *refunded.RefundAmount, 0.001)
	assert.NotNil(t, refunded.RefundedAt)
}

func TestRefundPaymentGuards(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	payment, err := svc.CreatePayment(paymentInput())
	require.NoError(t, err)

	_, err = svc.RefundPayment(payment.ID, 1000, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RefundPayment(payment.ID, 0, "")
	require.NoError(t, err)

	_, err = svc.RefundPayment(payment.ID, 10, "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCreateInvoiceDefaultsLineItems(t *testing.T) {
	svc, _, resRepo := newFinancialFixture()

	resRepo.reservations["res-1"] = &models.Reservation{
		ID:                 "res-1",
		ReservationNumber:  "RESAB12CD34",
		CustomerID:         "cust-1",
		TotalEstimatedCost: 59.98,
	}

	invoice, err := svc.CreateInvoice(CreateInvoiceInput{ReservationID: "res-1", TaxRate: 0.1})
	require.NoError(t, err)

	assert.Regexp(t, `^INV[0-9A-F]{8}$`, invoice.InvoiceNumber)
	assert.InDelta(t, 59.98, invoice.Subtotal, 0.001)
	assert.InDelta(t, 65.978, invoice.TotalAmount, 0.001)
	assert.Equal(t, "cust-1", invoice.CustomerID)
	assert.Contains(t, invoice.LineItems, "RESAB12CD34")
}

func TestCreatePricingRuleValidation(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	_, err := svc.CreatePricingRule(CreatePricingRuleInput{RuleName: "Summer", RuleType: "bogus", Multiplier: 1.2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	_, err = svc.CreatePricingRule(CreatePricingRuleInput{
		RuleName: "Summer", RuleType: "seasonal", Multiplier: 1.2,
		StartDate: &start, EndDate: &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	rule, err := svc.CreatePricingRule(CreatePricingRuleInput{RuleName: "Summer", RuleType: "seasonal", Multiplier: 1.2})
	require.NoError(t, err)
	assert.True(t, rule.IsActive)
}

func TestRevenueReportDefaultsToLast30Days(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	totals, from, to, err := svc.RevenueReport(nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 500.0, totals.TotalRevenue, 0.001)
	assert.InDelta(t, float64(30*24), to.Sub(from).Hours(), 1)
}

func TestRevenueReportRejectsInvertedRange(t *testing.T) {
	svc, _, _ := newFinancialFixture()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, _, _, err := svc.RevenueReport(&start, &end)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
