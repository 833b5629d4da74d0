package models

import (
	"time"
)

type Payment struct {
	ID            string     `json:"payment_id" gorm:"primaryKey;type:varchar(36)"`
	ReservationID *string    `json:"reservation_id" gorm:"index"`
	CustomerID    string     `json:"customer_id" gorm:"index;not null"`
	PaymentType   string     `json:"payment_type" gorm:"not null"`   // deposit, rental, damage, refund
	PaymentMethod string     `json:"payment_method" gorm:"not null"` // credit_card, debit_card, cash
	Amount        float64    `json:"amount" gorm:"not null"`
	Currency      string     `json:"currency" gorm:"default:'USD'"`
	TransactionID string     `json:"transaction_id"`
	Status        string     `json:"status" gorm:"default:'pending';index"` // pending, completed, failed, refunded
	ProcessedAt   *time.Time `json:"processed_at"`
	RefundedAt    *time.Time `json:"refunded_at"`
	RefundAmount  *float64   `json:"refund_amount"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

type Invoice struct {
	ID            string    `json:"invoice_id" gorm:"primaryKey;type:varchar(36)"`
	InvoiceNumber string    `json:"invoice_number" gorm:"unique;not null"`
	ReservationID string    `json:"reservation_id" gorm:"index;not null"`
	CustomerID    string    `json:"customer_id" gorm:"index;not null"`
	InvoiceDate   time.Time `json:"invoice_date" gorm:"not null"`
	DueDate       time.Time `json:"due_date" gorm:"not null"`
	Subtotal      float64   `json:"subtotal" gorm:"not null"`
	TaxAmount     float64   `json:"tax_amount" gorm:"default:0"`
	TotalAmount   float64   `json:"total_amount" gorm:"not null"`
	PaidAmount    float64   `json:"paid_amount" gorm:"default:0"`
	Status        string    `json:"status" gorm:"default:'draft'"` // draft, sent, paid, overdue
	LineItems     string    `json:"line_items" gorm:"type:text;not null"`
	PaymentTerms  string    `json:"payment_terms"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PricingRule struct {
	ID                string     `json:"rule_id" gorm:"primaryKey;type:varchar(36)"`
	RuleName          string     `json:"rule_name" gorm:"not null"`
	RuleType          string     `json:"rule_type" gorm:"not null"` // seasonal, weekend, long_term
	CategoryID        *string    `json:"category_id" gorm:"index"`
	LocationID        *string    `json:"location_id" gorm:"index"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	Multiplier        float64    `json:"multiplier" gorm:"default:1"`
	FixedAdjustment   float64    `json:"fixed_adjustment" gorm:"default:0"`
	MinimumRentalDays int        `json:"minimum_rental_days"`
	MaximumRentalDays int        `json:"maximum_rental_days"`
	Priority          int        `json:"priority" gorm:"default:0"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
