package handlers

import (
	"net/http"
	"time"

	"rental_erp/internal/repository"
	"rental_erp/internal/services"

	"github.com/gin-gonic/gin"
)

type FinancialHandler struct {
	financialService services.FinancialService
}

func NewFinancialHandler(financialService services.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

func (h *FinancialHandler) CreatePayment(c *gin.Context) {
	var req struct {
		ReservationID *string `json:"reservation_id"`
		CustomerID    string  `json:"customer_id" binding:"required"`
		PaymentType   string  `json:"payment_type" binding:"required"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
		Amount        float64 `json:"amount" binding:"required"`
		Currency      string  `json:"currency"`
		TransactionID string  `json:"transaction_id"`
		Status        string  `json:"status"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	payment, err := h.financialService.CreatePayment(services.CreatePaymentInput{
		ReservationID: req.ReservationID,
		CustomerID:    req.CustomerID,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		Currency:      req.Currency,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded",
		"payment": payment,
	})
}

func (h *FinancialHandler) GetPayment(c *gin.Context) {
	payment, err := h.financialService.GetPayment(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

func (h *FinancialHandler) ListPayments(c *gin.Context) {
	page, perPage := pageParams(c)
	payments, total, err := h.financialService.ListPayments(repository.PaymentFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
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

func (h *FinancialHandler) RefundPayment(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	payment, err := h.financialService.RefundPayment(c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment refunded",
		"payment": payment,
	})
}

func (h *FinancialHandler) CreateInvoice(c *gin.Context) {
	var req struct {
		ReservationID string              `json:"reservation_id" binding:"required"`
		DueDate       *time.Time          `json:"due_date"`
		TaxRate       float64             `json:"tax_rate"`
		LineItems     []services.LineItem `json:"line_items"`
		PaymentTerms  string              `json:"payment_terms"`
		Notes         string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	invoice, err := h.financialService.CreateInvoice(services.CreateInvoiceInput{
		ReservationID: req.ReservationID,
		DueDate:       req.DueDate,
		TaxRate:       req.TaxRate,
		LineItems:     req.LineItems,
		PaymentTerms:  req.PaymentTerms,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created",
		"invoice": invoice,
	})
}

func (h *FinancialHandler) ListInvoices(c *gin.Context) {
	page, perPage := pageParams(c)
	invoices, total, err := h.financialService.ListInvoices(repository.InvoiceFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":   invoices,
		"pagination": pagination(page, perPage, total),
	})
}

func (h *FinancialHandler) CreatePricingRule(c *gin.Context) {
	var req struct {
		RuleName          string     `json:"rule_name" binding:"required"`
		RuleType          string     `json:"rule_type" binding:"required"`
		CategoryID        *string    `json:"category_id"`
		LocationID        *string    `json:"location_id"`
		StartDate         *time.Time `json:"start_date"`
		EndDate           *time.Time `json:"end_date"`
		Multiplier        float64    `json:"multiplier"`
		FixedAdjustment   float64    `json:"fixed_adjustment"`
		MinimumRentalDays int        `json:"minimum_rental_days"`
		MaximumRentalDays int        `json:"maximum_rental_days"`
		Priority          int        `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if req.Multiplier == 0 {
		req.Multiplier = 1
	}

	rule, err := h.financialService.CreatePricingRule(services.CreatePricingRuleInput{
		RuleName:          req.RuleName,
		RuleType:          req.RuleType,
		CategoryID:        req.CategoryID,
		LocationID:        req.LocationID,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Multiplier:        req.Multiplier,
		FixedAdjustment:   req.FixedAdjustment,
		MinimumRentalDays: req.MinimumRentalDays,
		MaximumRentalDays: req.MaximumRentalDays,
		Priority:          req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Pricing rule created",
		"pricing_rule": rule,
	})
}

func (h *FinancialHandler) ListPricingRules(c *gin.Context) {
	rules, err := h.financialService.ListPricingRules()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing_rules": rules})
}

func (h *FinancialHandler) RevenueReport(c *gin.Context) {
	var start, end *time.Time
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		start = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		end = &parsed
	}

	totals, from, to, err := h.financialService.RevenueReport(start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date":             from.Format("2006-01-02"),
		"end_date":               to.Format("2006-01-02"),
		"total_revenue":          totals.TotalRevenue,
		"total_reservations":     totals.TotalReservations,
		"completed_reservations": totals.CompletedReservations,
		"revenue_by_type":        totals.RevenueByType,
		"daily_revenue":          totals.DailyRevenue,
	})
}
