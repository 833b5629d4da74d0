package repository

import (
	"errors"
)

// Sentinel errors surfaced by repositories so that services can translate
// storage outcomes without inspecting driver-specific errors.
var (
	ErrVehicleUnavailable = errors.New("vehicle is not available")
	ErrVehicleConflict    = errors.New("vehicle is already reserved for this period")
	ErrStaleTransition    = errors.New("reservation status changed concurrently")
	ErrDuplicate          = errors.New("record already exists")
)
