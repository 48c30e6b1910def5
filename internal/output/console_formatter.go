package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ConsoleFormatter renders a styled terminal report. The verbose variant adds
// score breakdowns, the investment projection and the assumptions.
type ConsoleFormatter struct {
	Verbose bool
}

func (c ConsoleFormatter) Name() string {
	if c.Verbose {
		return "console-verbose"
	}
	return "console"
}

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	money := NewMoney(report.Currency)

	var buf bytes.Buffer

	fmt.Fprintln(&buf, TitleStyle.Render("GOAL PLAN REPORT"))
	if report.ID != "" {
		fmt.Fprintln(&buf, MutedStyle.Render(fmt.Sprintf("Report %s · %s", report.ID, report.Timestamp.Format("2006-01-02 15:04"))))
	}
	fmt.Fprintln(&buf)

	horizon := fmt.Sprintf("%d years", r.HorizonYears)
	fmt.Fprintln(&buf, lipgloss.JoinHorizontal(lipgloss.Top,
		MetricCard("Goal cost today", money.Format(r.TotalGoalCost)),
		MetricCard("Goal cost at horizon", money.Format(r.FutureGoalCost)),
		MetricCard("Required monthly", money.Format(r.RequiredMonthlyContribution)),
		MetricCard("Monthly capacity", money.Format(r.MonthlyCapacity)),
		MetricCard("Time required", FormatYears(r.TimeRequiredYears)),
		MetricCard("Horizon", horizon),
	))

	fmt.Fprintln(&buf, statusLine(r))

	fmt.Fprintln(&buf, SectionStyle.Render("SCORES"))
	fmt.Fprintf(&buf, "%s %s\n", LabelStyle.Render("Balance score:   "), ScoreBar(r.BalanceScore))
	fmt.Fprintf(&buf, "%s %s\n", LabelStyle.Render("Financial health:"), ScoreBar(r.FinancialHealthScore))
	if c.Verbose {
		writeBreakdown(&buf, "Balance", r.BalanceBreakdown)
		writeBreakdown(&buf, "Health", r.HealthBreakdown)
	}

	fmt.Fprintln(&buf, SectionStyle.Render("CASH FLOW"))
	writeField(&buf, "Savings rate", FormatPercentage(r.SavingsRatePct))
	writeField(&buf, "Expense ratio", FormatPercentage(r.ExpenseRatioPct))
	writeField(&buf, "Emergency fund", r.EmergencyFundMonths.StringFixed(1)+" months")
	writeField(&buf, "Real return", FormatPercentage(r.RealReturnPct))
	writeField(&buf, "Investment gap", money.Format(r.InvestmentGap))

	if c.Verbose {
		writeProjection(&buf, money, r.InvestmentProjection)
	}

	if r.Debt != nil {
		writeDebt(&buf, money, r.Debt)
	}

	if ls := r.LifeStage; ls != nil {
		writeLifeStage(&buf, money, ls)
	}

	if len(report.Scenarios) > 0 {
		fmt.Fprintln(&buf, SectionStyle.Render("ALTERNATIVE PLANS"))
		for _, s := range report.Scenarios {
			fmt.Fprintf(&buf, "• %s\n", ValueStyle.Render(s.Title))
			fmt.Fprintf(&buf, "  %s\n", s.Description)
			fmt.Fprintf(&buf, "  %s %s/month, %s %s, %s %s\n",
				LabelStyle.Render("capacity"), money.Format(s.MonthlyCapacity),
				LabelStyle.Render("time"), FormatYears(s.TimeRequiredYears),
				LabelStyle.Render("required"), money.Format(s.RequiredMonthlyContribution))
		}
	}

	if c.Verbose {
		fmt.Fprintln(&buf, SectionStyle.Render("KEY ASSUMPTIONS"))
		for _, a := range Assumptions(report) {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}

	return buf.Bytes(), nil
}

func statusLine(r *domain.CalculationResult) string {
	switch {
	case r.GoalAchievable && r.HorizonMet:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("✓ On track to reach the goals within the horizon")
	case r.GoalAchievable:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Render(
			fmt.Sprintf("⚠ Reachable in %s, after the %d-year horizon", FormatYears(r.TimeRequiredYears), r.HorizonYears))
	default:
		return lipgloss.NewStyle().Foreground(ColorDanger).Bold(true).Render("✗ Not reachable at the current monthly capacity")
	}
}

func writeField(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", LabelStyle.Render(fmt.Sprintf("%-22s", label+":")), ValueStyle.Render(value))
}

func writeBreakdown(buf *bytes.Buffer, name string, b domain.ScoreBreakdown) {
	fmt.Fprintf(buf, "  %s\n", LabelStyle.Render(fmt.Sprintf("%s: baseline %d", name, b.Baseline)))
	for _, adj := range b.Adjustments {
		style := lipgloss.NewStyle().Foreground(ColorSuccess)
		sign := "+"
		if adj.Points.IsNegative() {
			style = lipgloss.NewStyle().Foreground(ColorDanger)
			sign = ""
		}
		fmt.Fprintf(buf, "    %s %s (%s)\n", style.Render(sign+adj.Points.String()), adj.Factor, adj.Rule)
	}
}

func writeProjection(buf *bytes.Buffer, money Money, p domain.InvestmentProjection) {
	fmt.Fprintln(buf, SectionStyle.Render("EXISTING INVESTMENTS"))
	writeField(buf, "Invested today", money.Format(p.ExistingInvestments))
	writeField(buf, "Lump sum at horizon", money.Format(p.ExistingFutureValue))
	writeField(buf, "Contributions at horizon", money.Format(p.ContributionFutureValue))
	writeField(buf, "Projected value", money.Format(p.ProjectedValue))
	writeField(buf, "Total principal", money.Format(p.TotalPrincipal))
	writeField(buf, "Effective CAGR", FormatPercentage(p.EffectiveCAGRPct))
	writeField(buf, "Portfolio strength", fmt.Sprintf("%d/100", p.PortfolioStrength))
}

func writeDebt(buf *bytes.Buffer, money Money, d *domain.DebtMetrics) {
	fmt.Fprintln(buf, SectionStyle.Render("DEBT"))
	if d.LoanCount > 0 {
		writeField(buf, "Outstanding", fmt.Sprintf("%s across %d loan(s)", money.Format(d.TotalOutstanding), d.LoanCount))
		writeField(buf, "Average rate", FormatPercentage(d.WeightedAverageRatePct))
	}
	writeField(buf, "Monthly EMI", money.Format(d.MonthlyEMI))
	writeField(buf, "EMI to income", FormatPercentage(d.EMIToIncomePct))
	writeField(buf, "Debt to annual income", FormatPercentage(d.DebtToAnnualIncomePct))
	writeField(buf, "Net worth", money.Format(d.NetWorth))
	if d.InterestCoveragePct != nil {
		writeField(buf, "Interest coverage", FormatPercentage(*d.InterestCoveragePct))
	}
	if d.DebtGrowing {
		fmt.Fprintln(buf, lipgloss.NewStyle().Foreground(ColorDanger).Render("⚠ The EMI does not cover the interest; the debt is growing"))
	}
}

func writeLifeStage(buf *bytes.Buffer, money Money, ls *domain.LifeStageInsights) {
	fmt.Fprintln(buf, SectionStyle.Render("LIFE STAGES"))
	for _, stage := range []domain.LifeStage{ls.PreGoal, ls.PostGoal} {
		fmt.Fprintf(buf, "• %s %s\n  %s\n",
			ValueStyle.Render(stage.Name),
			LabelStyle.Render(fmt.Sprintf("(age %d-%d)", stage.StartAge, stage.EndAge)),
			stage.Strategy)
	}

	s := ls.Sustainability
	writeField(buf, "Goal reached at age", fmt.Sprintf("%d", ls.GoalAchievementAge))
	writeField(buf, "Corpus at goal", money.Format(s.CorpusAtGoal))
	writeField(buf, "Sustainable income", money.Format(s.SustainableAnnualIncome)+"/year")
	writeField(buf, "Required income", money.Format(s.RequiredAnnualIncome)+"/year")
	writeField(buf, "Sustainability", FormatPercentage(s.SustainabilityRatioPct))

	a := ls.Allocation
	writeField(buf, "Before the goal", allocationText(a.PreGoal))
	writeField(buf, "After the goal", allocationText(a.PostGoal))

	if len(ls.Insights) > 0 {
		fmt.Fprintln(buf, SectionStyle.Render("INSIGHTS"))
		insights := append([]domain.Insight(nil), ls.Insights...)
		sort.SliceStable(insights, func(i, j int) bool {
			return insights[i].Priority.Rank() < insights[j].Priority.Rank()
		})
		for _, in := range insights {
			style := InsightStyle(in.Type)
			fmt.Fprintf(buf, "%s %s\n  %s\n", style.Render(InsightIcon(in.Type)), style.Bold(true).Render(in.Title), in.Message)
		}
	}
}

func allocationText(a domain.Allocation) string {
	parts := []string{
		fmt.Sprintf("%d%% equity", a.EquityPct),
		fmt.Sprintf("%d%% debt", a.DebtPct),
	}
	if a.GoldPct > 0 {
		parts = append(parts, fmt.Sprintf("%d%% gold", a.GoldPct))
	}
	return strings.Join(parts, " / ")
}

