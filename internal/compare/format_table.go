package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	Symbol string // Currency symbol prefixed to amounts
}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("GOAL PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseScenarioName))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		numWidth, "Required/mo",
		numWidth, "Capacity/mo",
		numWidth, "Time",
		numWidth/2, "Bal",
		numWidth/2, "Health"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			if !alt.RequiredDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Required/month:   %s%s%s (%s%%)\n",
					tf.deltaSymbol(alt.RequiredDiffFromBase),
					tf.Symbol,
					tf.formatDecimal(alt.RequiredDiffFromBase.Abs()),
					alt.RequiredPctFromBase.StringFixed(1)))
			}

			if !alt.TimeDiffFromBase.IsZero() {
				if alt.GoalAchievable && base.GoalAchievable {
					sb.WriteString(fmt.Sprintf("  Time Required:    %s%s years\n",
						tf.deltaSymbol(alt.TimeDiffFromBase), alt.TimeDiffFromBase.Abs().StringFixed(1)))
				} else {
					sb.WriteString(fmt.Sprintf("  Time Required:    %s\n", tf.formatYears(&alt)))
				}
			}

			if alt.HealthScoreDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Health Score:     %+d\n", alt.HealthScoreDiff))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*d %*d\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.Symbol+tf.formatDecimal(result.RequiredMonthlyContribution),
		numWidth, tf.Symbol+tf.formatDecimal(result.MonthlyCapacity),
		numWidth, tf.formatYears(result),
		numWidth/2, result.BalanceScore,
		numWidth/2, result.HealthScore)
}

func (tf *TableFormatter) formatYears(result *ComparisonResult) string {
	if !result.GoalAchievable {
		return "never"
	}
	return result.TimeRequiredYears.StringFixed(1) + " yrs"
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign to print before an absolute delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each plan
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.RequiredDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+%s%s/mo", tf.Symbol, tf.formatDecimal(alt.RequiredDiffFromBase))
		} else if alt.RequiredDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-%s%s/mo", tf.Symbol, tf.formatDecimal(alt.RequiredDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
