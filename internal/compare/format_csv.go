package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Required Monthly",
		"Monthly Capacity",
		"Time Required (Years)",
		"Horizon (Years)",
		"Achievable",
		"Balance Score",
		"Health Score",
		"Investment Gap",
		"Required Diff from Base",
		"Required % Change",
		"Time Diff from Base",
		"Health Score Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.RequiredMonthlyContribution.StringFixed(2),
		result.MonthlyCapacity.StringFixed(2),
		result.TimeRequiredYears.StringFixed(1),
		strconv.Itoa(result.HorizonYears),
		strconv.FormatBool(result.GoalAchievable),
		strconv.Itoa(result.BalanceScore),
		strconv.Itoa(result.HealthScore),
		result.InvestmentGap.StringFixed(2),
		result.RequiredDiffFromBase.StringFixed(2),
		result.RequiredPctFromBase.StringFixed(2),
		result.TimeDiffFromBase.StringFixed(1),
		strconv.Itoa(result.HealthScoreDiff),
	}
}
