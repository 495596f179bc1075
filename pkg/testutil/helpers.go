// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-amortization/pkg/amortization"
)

// FindPeriod finds a period by label in the schedule.
// Returns a pointer to the period if found, nil otherwise.
func FindPeriod(result *amortization.AmortizationResult, label string) *amortization.PeriodRecord {
	if result == nil {
		return nil
	}
	for i := range result.Periods {
		if result.Periods[i].Label == label {
			return &result.Periods[i]
		}
	}
	return nil
}
