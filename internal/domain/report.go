package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is the export envelope for a finished calculation. It carries
// everything needed to re-render the result without recalculating.
type Report struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Profile   *FinancialProfile  `json:"profile"`
	Goals     GoalSet            `json:"goals"`
	Result    *CalculationResult `json:"result"`
	Scenarios []Scenario         `json:"scenarios,omitempty"`
	Currency  Currency           `json:"currency"`
}

// NewReport wraps a result in a report with a fresh identifier.
func NewReport(profile *FinancialProfile, result *CalculationResult, scenarios []Scenario) *Report {
	r := &Report{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Profile:   profile,
		Result:    result,
		Scenarios: scenarios,
		Currency:  DefaultSettings().Currency,
	}
	if profile != nil {
		r.Goals = profile.Goals
	}
	return r
}
