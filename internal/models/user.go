package models

import (
	"time"
)

type User struct {
	ID           string     `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Email        string     `json:"email" gorm:"unique;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FirstName    string     `json:"first_name" gorm:"not null"`
	LastName     string     `json:"last_name" gorm:"not null"`
	PhoneNumber  string     `json:"phone_number"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	UserType     string     `json:"user_type" gorm:"default:'customer'"` // admin, manager, agent, customer
	Status       string     `json:"status" gorm:"default:'active'"`      // active, suspended, closed
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const (
	UserTypeAdmin    = "admin"
	UserTypeManager  = "manager"
	UserTypeAgent    = "agent"
	UserTypeCustomer = "customer"
)

const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusClosed    = "closed"
)
