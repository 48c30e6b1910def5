package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates one planning run. It holds no mutable state
// between calls and is safe for concurrent use.
type CalculationEngine struct {
	Settings  domain.Settings
	Horizon   *HorizonSolver
	LifeStage *LifeStageAnalyzer
	Scoring   *ScoringEngine
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine(settings domain.Settings) *CalculationEngine {
	return &CalculationEngine{
		Settings:  settings,
		Horizon:   NewHorizonSolver(settings),
		LifeStage: NewLifeStageAnalyzer(settings),
		Scoring:   NewScoringEngine(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Evaluation is the subset of a result needed to compare plans.
type Evaluation struct {
	TotalGoalCost               decimal.Decimal
	MonthlyCapacity             decimal.Decimal
	RequiredMonthlyContribution decimal.Decimal
	TimeRequiredYears           decimal.Decimal
	Projection                  domain.InvestmentProjection
}

// prepare validates the profile and resolves the loan portfolio and EMI. The
// returned profile is a copy whenever anything had to be filled in.
func (ce *CalculationEngine) prepare(profile *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	p := profile
	if p.LoanPortfolio == nil && len(p.Loans) > 0 {
		portfolio, err := AggregateLoans(p.Loans)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate loans: %w", err)
		}
		p = p.DeepCopy()
		p.LoanPortfolio = portfolio
	}

	if p.ExistingMonthlyDebtService.IsZero() && p.LoanPortfolio != nil && p.LoanPortfolio.TotalMonthlyEMI.IsPositive() {
		if p == profile {
			p = p.DeepCopy()
		}
		p.ExistingMonthlyDebtService = p.LoanPortfolio.TotalMonthlyEMI
		ce.Logger.Debugf("using loan portfolio EMI %s", p.ExistingMonthlyDebtService)
	}

	return p, nil
}

// Prepare validates a profile and resolves its loans the way Calculate does.
// Callers that perturb profiles should transform the prepared copy so that
// derived values such as the EMI are not lost.
func (ce *CalculationEngine) Prepare(profile *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	return ce.prepare(profile)
}

// Evaluate runs the projector and both solvers only.
func (ce *CalculationEngine) Evaluate(profile *domain.FinancialProfile) (Evaluation, error) {
	p, err := ce.prepare(profile)
	if err != nil {
		return Evaluation{}, err
	}
	return ce.evaluate(p)
}

func (ce *CalculationEngine) evaluate(p *domain.FinancialProfile) (Evaluation, error) {
	ev := Evaluation{
		TotalGoalCost:   TotalGoalCost(p.Goals),
		MonthlyCapacity: p.EffectiveMonthlyCapacity(),
	}

	projection, err := ProjectInvestments(p.ExistingInvestmentsValue, p.CurrentMonthlyContribution,
		p.ContributionDurationYears, p.ExpectedAnnualReturnPct, p.HorizonYears)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to project investments: %w", err)
	}
	ev.Projection = projection

	ev.RequiredMonthlyContribution, err = RequiredMonthlyContribution(ev.TotalGoalCost, p.CurrentSavings,
		p.HorizonYears, p.ExpectedAnnualReturnPct, p.ExpectedAnnualInflationPct, projection)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to compute required contribution: %w", err)
	}

	ev.TimeRequiredYears, err = ce.Horizon.TimeRequired(ev.TotalGoalCost, p.CurrentSavings, ev.MonthlyCapacity,
		p.ExpectedAnnualReturnPct, p.ExpectedAnnualInflationPct, projection, p.HorizonYears)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to compute time required: %w", err)
	}

	return ev, nil
}

// Calculate runs the full pipeline for one profile.
func (ce *CalculationEngine) Calculate(profile *domain.FinancialProfile) (*domain.CalculationResult, error) {
	p, err := ce.prepare(profile)
	if err != nil {
		return nil, err
	}

	ev, err := ce.evaluate(p)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("goal cost %s, required %s/month, capacity %s/month, time %s years",
		ev.TotalGoalCost, ev.RequiredMonthlyContribution, ev.MonthlyCapacity, ev.TimeRequiredYears)

	horizon := decimal.NewFromInt(int64(p.HorizonYears))
	result := &domain.CalculationResult{
		TotalGoalCost:               ev.TotalGoalCost,
		RequiredMonthlyContribution: ev.RequiredMonthlyContribution,
		MonthlyCapacity:             ev.MonthlyCapacity,
		HorizonYears:                p.HorizonYears,
		TimeRequiredYears:           ev.TimeRequiredYears,
		GoalAchievable:              ev.TimeRequiredYears.LessThan(ce.Settings.UnreachableYears),
		HorizonMet:                  ev.TimeRequiredYears.LessThanOrEqual(horizon),
		InvestmentProjection:        ev.Projection,
	}

	result.FutureGoalCost, err = finmath.CompoundGrowth(ev.TotalGoalCost, p.ExpectedAnnualInflationPct, decimal.Max(decimalZero, horizon))
	if err != nil {
		return nil, fmt.Errorf("failed to inflate goal cost: %w", err)
	}
	result.FutureGoalCost = result.FutureGoalCost.Round(2)

	result.InvestmentGap = decimal.Max(decimalZero,
		ev.TotalGoalCost.Sub(ev.Projection.ProjectedValue).Sub(p.CurrentSavings)).Round(2)

	if p.MonthlyIncome.IsPositive() {
		result.ExpenseRatioPct = p.MonthlyExpenses.Div(p.MonthlyIncome).Mul(decimalHundred).Round(2)
		result.SavingsRatePct = p.MonthlyIncome.Sub(p.MonthlyExpenses).Div(p.MonthlyIncome).Mul(decimalHundred).Round(2)
	}

	var emergencyMonths *decimal.Decimal
	if p.MonthlyExpenses.IsPositive() {
		m := p.CurrentSavings.Div(p.MonthlyExpenses).Round(2)
		emergencyMonths = &m
		result.EmergencyFundMonths = m
	}

	result.RealReturnPct, err = finmath.RealReturnPct(p.ExpectedAnnualReturnPct, p.ExpectedAnnualInflationPct)
	if err != nil {
		return nil, fmt.Errorf("failed to compute real return: %w", err)
	}

	result.Debt = debtMetrics(p)

	result.LifeStage, err = ce.LifeStage.Analyze(p, ev.TotalGoalCost, ev.Projection)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze life stage: %w", err)
	}
	if result.LifeStage != nil && result.LifeStage.TimelineConflict {
		ce.Logger.Warnf("goal age %d exceeds life expectancy %d", result.LifeStage.GoalAchievementAge, p.LifeExpectancy)
	}

	inputs := ScoreInputs{
		MonthlyIncome:             p.MonthlyIncome,
		CurrentSavings:            p.CurrentSavings,
		ExpenseRatioPct:           result.ExpenseRatioPct,
		SavingsRatePct:            result.SavingsRatePct,
		TimeRequiredYears:         ev.TimeRequiredYears,
		HorizonYears:              p.HorizonYears,
		PortfolioStrength:         ev.Projection.PortfolioStrength,
		ContributionDurationYears: p.ContributionDurationYears,
		EmergencyFundMonths:       emergencyMonths,
		MonthlyEMI:                p.ExistingMonthlyDebtService,
		Debt:                      result.Debt,
		LifeStage:                 result.LifeStage,
	}
	result.BalanceBreakdown = ce.Scoring.BalanceScore(inputs)
	result.HealthBreakdown = ce.Scoring.HealthScore(inputs)
	result.BalanceScore = result.BalanceBreakdown.Score
	result.FinancialHealthScore = result.HealthBreakdown.Score

	ce.Logger.Infof("calculated plan: balance %d, health %d", result.BalanceScore, result.FinancialHealthScore)

	return result, nil
}

// debtMetrics returns nil when the household has neither debt nor EMI.
func debtMetrics(p *domain.FinancialProfile) *domain.DebtMetrics {
	emi := p.ExistingMonthlyDebtService
	if !p.LoanPortfolio.HasDebt() && !emi.IsPositive() {
		return nil
	}

	dm := &domain.DebtMetrics{MonthlyEMI: emi}
	if lp := p.LoanPortfolio; lp != nil {
		dm.TotalOutstanding = lp.TotalOutstanding
		dm.WeightedAverageRatePct = lp.WeightedAverageRatePct
		dm.LoanCount = lp.LoanCount
		dm.ImpliedAnnualInterest = lp.ImpliedAnnualInterest
	}
	dm.NetWorth = p.CurrentSavings.Sub(dm.TotalOutstanding)

	if p.MonthlyIncome.IsPositive() {
		dm.EMIToIncomePct = emi.Div(p.MonthlyIncome).Mul(decimalHundred).Round(2)
		dm.DebtToAnnualIncomePct = dm.TotalOutstanding.Div(p.MonthlyIncome.Mul(decimalTwelve)).Mul(decimalHundred).Round(2)
	}

	interest := dm.TotalOutstanding.Mul(finmath.Pct(dm.WeightedAverageRatePct))
	if interest.IsPositive() {
		coverage := emi.Mul(decimalTwelve).Div(interest).Mul(decimalHundred).Round(2)
		dm.InterestCoveragePct = &coverage
		dm.DebtGrowing = coverage.LessThan(decimalHundred)
	}

	return dm
}
