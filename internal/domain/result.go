package domain

import "github.com/shopspring/decimal"

// InvestmentProjection is the projected value of a household's existing
// investments and systematic contributions at the end of the horizon.
type InvestmentProjection struct {
	// ExistingInvestments is the raw lump sum before any growth.
	ExistingInvestments         decimal.Decimal `json:"existingInvestments"`
	ExistingFutureValue         decimal.Decimal `json:"existingFutureValue"`
	ContributionsToDateValue    decimal.Decimal `json:"contributionsToDateValue"`
	ContinuingContributionValue decimal.Decimal `json:"continuingContributionValue"`
	ContributionFutureValue     decimal.Decimal `json:"contributionFutureValue"`
	ProjectedValue              decimal.Decimal `json:"projectedValue"`
	RemainingContributionMonths int             `json:"remainingContributionMonths"`
	TotalPrincipal              decimal.Decimal `json:"totalPrincipal"`
	EffectiveCAGRPct            decimal.Decimal `json:"effectiveCagrPct"`
	PortfolioStrength           int             `json:"portfolioStrength"`
}

// ScoreAdjustment records one ladder rule that fired while scoring.
type ScoreAdjustment struct {
	Factor string          `json:"factor"`
	Rule   string          `json:"rule"`
	Points decimal.Decimal `json:"points"`
}

// ScoreBreakdown explains how a score was assembled from its baseline.
type ScoreBreakdown struct {
	Baseline    int               `json:"baseline"`
	Adjustments []ScoreAdjustment `json:"adjustments"`
	Score       int               `json:"score"`
}

// DebtMetrics summarises the debt position. Only present when the household
// carries debt or pays an EMI.
type DebtMetrics struct {
	TotalOutstanding       decimal.Decimal `json:"totalOutstanding"`
	WeightedAverageRatePct decimal.Decimal `json:"weightedAverageRatePct"`
	LoanCount              int             `json:"loanCount"`
	ImpliedAnnualInterest  decimal.Decimal `json:"impliedAnnualInterest"`
	MonthlyEMI             decimal.Decimal `json:"monthlyEmi"`
	EMIToIncomePct         decimal.Decimal `json:"emiToIncomePct"`
	DebtToAnnualIncomePct  decimal.Decimal `json:"debtToAnnualIncomePct"`
	NetWorth               decimal.Decimal `json:"netWorth"`

	// InterestCoveragePct is nil when there is no accruing interest to cover.
	InterestCoveragePct *decimal.Decimal `json:"interestCoveragePct,omitempty"`
	DebtGrowing         bool             `json:"debtGrowing"`
}

// InsightPriority orders insights for display.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Rank returns the sort rank of the priority; lower ranks sort first.
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Insight types
const (
	InsightWarning = "warning"
	InsightInfo    = "info"
	InsightSuccess = "success"
)

// Insight is one piece of narrative guidance.
type Insight struct {
	Type     string          `json:"type"`
	Priority InsightPriority `json:"priority"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
}

// LifeStage describes one phase of life relative to the goal date.
type LifeStage struct {
	Name     string `json:"name"`
	StartAge int    `json:"startAge"`
	EndAge   int    `json:"endAge"`
	Strategy string `json:"strategy"`
}

// PostGoalSustainability estimates whether the corpus left after paying for
// the goals supports living expenses for the rest of life.
type PostGoalSustainability struct {
	MonthlyExpenses         decimal.Decimal `json:"monthlyExpenses"`
	RequiredAnnualIncome    decimal.Decimal `json:"requiredAnnualIncome"`
	CorpusAtGoal            decimal.Decimal `json:"corpusAtGoal"`
	SustainableAnnualIncome decimal.Decimal `json:"sustainableAnnualIncome"`
	Sustainable             bool            `json:"sustainable"`
	SustainabilityRatioPct  decimal.Decimal `json:"sustainabilityRatioPct"`
}

// Allocation is an equity/debt/gold split in percent.
type Allocation struct {
	EquityPct int    `json:"equityPct"`
	DebtPct   int    `json:"debtPct"`
	GoldPct   int    `json:"goldPct"`
	Rationale string `json:"rationale"`
}

// AllocationSuggestion holds the suggested split for each phase.
type AllocationSuggestion struct {
	PreGoal  Allocation `json:"preGoal"`
	PostGoal Allocation `json:"postGoal"`
}

// LifeStageInsights is produced only when age, horizon and life expectancy
// are all usable.
type LifeStageInsights struct {
	GoalAchievementAge int                    `json:"goalAchievementAge"`
	PostGoalYears      int                    `json:"postGoalYears"`
	TimelineConflict   bool                   `json:"timelineConflict"`
	PreGoal            LifeStage              `json:"preGoal"`
	PostGoal           LifeStage              `json:"postGoal"`
	Sustainability     PostGoalSustainability `json:"sustainability"`
	Insights           []Insight              `json:"insights"`
	Allocation         AllocationSuggestion   `json:"allocation"`
}

// CalculationResult is the complete output of one engine run.
type CalculationResult struct {
	TotalGoalCost               decimal.Decimal `json:"totalGoalCost"`
	FutureGoalCost              decimal.Decimal `json:"futureGoalCost"`
	RequiredMonthlyContribution decimal.Decimal `json:"requiredMonthlyContribution"`
	MonthlyCapacity             decimal.Decimal `json:"monthlyCapacity"`
	HorizonYears                int             `json:"horizonYears"`
	TimeRequiredYears           decimal.Decimal `json:"timeRequiredYears"`
	GoalAchievable              bool            `json:"goalAchievable"`
	HorizonMet                  bool            `json:"horizonMet"`

	SavingsRatePct      decimal.Decimal `json:"savingsRatePct"`
	ExpenseRatioPct     decimal.Decimal `json:"expenseRatioPct"`
	EmergencyFundMonths decimal.Decimal `json:"emergencyFundMonths"`
	RealReturnPct       decimal.Decimal `json:"realReturnPct"`

	BalanceScore         int            `json:"balanceScore"`
	FinancialHealthScore int            `json:"financialHealthScore"`
	BalanceBreakdown     ScoreBreakdown `json:"balanceBreakdown"`
	HealthBreakdown      ScoreBreakdown `json:"healthBreakdown"`

	InvestmentProjection InvestmentProjection `json:"investmentProjection"`
	InvestmentGap        decimal.Decimal      `json:"investmentGap"`

	Debt      *DebtMetrics       `json:"debt,omitempty"`
	LifeStage *LifeStageInsights `json:"lifeStageInsights,omitempty"`
}

// Scenario is an alternative plan derived from a baseline result.
type Scenario struct {
	Kind                        string          `json:"kind"`
	Title                       string          `json:"title"`
	Description                 string          `json:"description"`
	MonthlyCapacity             decimal.Decimal `json:"monthlyCapacity"`
	RequiredMonthlyContribution decimal.Decimal `json:"requiredMonthlyContribution"`
	TimeRequiredYears           decimal.Decimal `json:"timeRequiredYears"`
	HorizonYears                int             `json:"horizonYears"`
	ExpectedReturnPct           decimal.Decimal `json:"expectedReturnPct"`
}
