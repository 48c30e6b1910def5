package output

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// DefaultAssumptions lists the modelling assumptions shared by every report.
var DefaultAssumptions = []string{
	"Contributions are invested at the end of each month and compound monthly",
	"Goal amounts are in today's money and grow with inflation until the horizon",
	"Scores are planning heuristics, not financial advice",
}

// Assumptions returns the profile-specific assumptions followed by the defaults.
func Assumptions(report *domain.Report) []string {
	var out []string
	if p := report.Profile; p != nil {
		out = append(out,
			fmt.Sprintf("Expected return: %s a year", FormatPercentage(p.ExpectedAnnualReturnPct)),
			fmt.Sprintf("Inflation: %s a year", FormatPercentage(p.ExpectedAnnualInflationPct)),
		)
		if p.MonthlyCapacity != nil {
			out = append(out, "Monthly capacity was set explicitly instead of using the monthly surplus")
		}
	}
	return append(out, DefaultAssumptions...)
}
