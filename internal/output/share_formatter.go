package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ShareFormatter produces a short unstyled summary suitable for pasting into
// a message.
type ShareFormatter struct{}

func (s ShareFormatter) Name() string { return "share" }

func (s ShareFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	money := NewMoney(report.Currency)

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "My goal plan")

	var goals []string
	for _, id := range report.Goals.IDs() {
		if report.Goals[id].Contributes() {
			goals = append(goals, id)
		}
	}
	if len(goals) > 0 {
		fmt.Fprintf(&buf, "Goals: %s (%s today)\n", strings.Join(goals, ", "), money.Format(r.TotalGoalCost))
	} else {
		fmt.Fprintln(&buf, "Goals: none selected")
	}

	fmt.Fprintf(&buf, "Required investment: %s a month for %d years\n", money.Format(r.RequiredMonthlyContribution), r.HorizonYears)
	fmt.Fprintf(&buf, "Time to reach the goals at %s a month: %s\n", money.Format(r.MonthlyCapacity), FormatYears(r.TimeRequiredYears))
	fmt.Fprintf(&buf, "Balance score %d/100 | Financial health %d/100\n", r.BalanceScore, r.FinancialHealthScore)

	switch {
	case r.GoalAchievable && r.HorizonMet:
		fmt.Fprintln(&buf, "Status: on track")
	case r.GoalAchievable:
		fmt.Fprintln(&buf, "Status: reachable after the horizon")
	default:
		fmt.Fprintln(&buf, "Status: not reachable at the current capacity")
	}

	return buf.Bytes(), nil
}
