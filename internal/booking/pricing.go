package booking

import (
	"time"
)

// RentalDays converts a pickup/return window into billable days: whole 24h
// periods, floored, with a minimum of one day. A 47-hour rental bills as one
// day; 48 hours bills as two.
func RentalDays(pickup, ret time.Time) int {
	hours := ret.Sub(pickup).Hours()
	days := int(hours / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// EstimatedCost is the category daily rate multiplied by the billable days.
func EstimatedCost(dailyRate float64, pickup, ret time.Time) float64 {
	return dailyRate * float64(RentalDays(pickup, ret))
}

// ActualCost finalizes a rental: the estimate plus any additional and damage
// charges recorded at return.
func ActualCost(estimated, additionalCharges, damageCharges float64) float64 {
	return estimated + additionalCharges + damageCharges
}
