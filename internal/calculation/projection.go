package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalZero    = decimal.Zero
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

func strengthBaseLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "existing_investments",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=1,000,000", Match: atLeast(1000000), Delta: 30},
			{Label: ">=500,000", Match: atLeast(500000), Delta: 20},
			{Label: ">=100,000", Match: atLeast(100000), Delta: 10},
			{Label: ">0", Match: above(0), Delta: 5},
		},
	}
}

func strengthConsistencyLadder() Ladder[contributionHistory] {
	return Ladder[contributionHistory]{
		Name: "contribution_consistency",
		Rules: []Rule[contributionHistory]{
			{Label: ">=20,000 for >=3y", Match: sustained(20000, 3), Delta: 40},
			{Label: ">=10,000 for >=2y", Match: sustained(10000, 2), Delta: 30},
			{Label: ">=5,000 for >=1y", Match: sustained(5000, 1), Delta: 20},
			{Label: ">0", Match: func(h contributionHistory) bool { return h.Monthly.IsPositive() }, Delta: 10},
		},
	}
}

func strengthDisciplineLadder() Ladder[decimal.Decimal] {
	return Ladder[decimal.Decimal]{
		Name: "contribution_discipline",
		Rules: []Rule[decimal.Decimal]{
			{Label: ">=5y", Match: atLeast(5), Delta: 30},
			{Label: ">=3y", Match: atLeast(3), Delta: 20},
			{Label: ">=1y", Match: atLeast(1), Delta: 10},
		},
	}
}

// contributionHistory is an ongoing monthly contribution and how long it has run.
type contributionHistory struct {
	Monthly decimal.Decimal
	Years   decimal.Decimal
}

func sustained(monthly, years int64) func(contributionHistory) bool {
	m := decimal.NewFromInt(monthly)
	y := decimal.NewFromInt(years)
	return func(h contributionHistory) bool {
		return h.Monthly.GreaterThanOrEqual(m) && h.Years.GreaterThanOrEqual(y)
	}
}

// PortfolioStrength scores existing investment behaviour on a 0-100 scale.
// It never decreases when any single input increases.
func PortfolioStrength(existing, monthly, durationYears decimal.Decimal) int {
	score := strengthBaseLadder().Points(existing) +
		strengthConsistencyLadder().Points(contributionHistory{Monthly: monthly, Years: durationYears}) +
		strengthDisciplineLadder().Points(durationYears)
	if score > 100 {
		score = 100
	}
	return score
}

// ProjectInvestments projects existing investments and an ongoing monthly
// contribution to the end of the horizon.
//
// Contributions made so far are treated as a single lump deposited today and
// grown for the whole horizon.
func ProjectInvestments(existing, monthly, elapsedYears, annualRatePct decimal.Decimal, horizonYears int) (domain.InvestmentProjection, error) {
	if elapsedYears.IsNegative() {
		return domain.InvestmentProjection{}, &finmath.InvalidArgumentError{
			Operation: "ProjectInvestments", Argument: "elapsedYears", Message: "must not be negative",
		}
	}

	growthYears := decimalZero
	horizonMonths := 0
	if horizonYears > 0 {
		growthYears = decimal.NewFromInt(int64(horizonYears))
		horizonMonths = horizonYears * 12
	}

	existingFV, err := finmath.CompoundGrowth(existing, annualRatePct, growthYears)
	if err != nil {
		return domain.InvestmentProjection{}, fmt.Errorf("failed to grow existing investments: %w", err)
	}

	elapsedMonths := int(elapsedYears.Mul(decimalTwelve).Round(0).IntPart())
	remaining := horizonMonths - elapsedMonths
	if remaining < 0 {
		remaining = 0
	}

	proj := domain.InvestmentProjection{
		ExistingInvestments:         existing,
		ExistingFutureValue:         existingFV,
		ContributionsToDateValue:    decimalZero,
		ContinuingContributionValue: decimalZero,
		ContributionFutureValue:     decimalZero,
		RemainingContributionMonths: remaining,
		TotalPrincipal:              existing,
		EffectiveCAGRPct:            decimalZero,
		PortfolioStrength:           PortfolioStrength(existing, monthly, elapsedYears),
	}

	if monthly.IsPositive() {
		paidSoFar := monthly.Mul(decimalTwelve).Mul(elapsedYears)
		toDate, err := finmath.CompoundGrowth(paidSoFar, annualRatePct, growthYears)
		if err != nil {
			return domain.InvestmentProjection{}, fmt.Errorf("failed to grow past contributions: %w", err)
		}
		continuing, err := finmath.FutureValueOfAnnuity(monthly, annualRatePct, remaining)
		if err != nil {
			return domain.InvestmentProjection{}, fmt.Errorf("failed to project continuing contributions: %w", err)
		}

		proj.ContributionsToDateValue = toDate
		proj.ContinuingContributionValue = continuing
		proj.ContributionFutureValue = toDate.Add(continuing)
		proj.TotalPrincipal = proj.TotalPrincipal.
			Add(paidSoFar).
			Add(monthly.Mul(decimal.NewFromInt(int64(remaining))))
	}

	proj.ProjectedValue = proj.ExistingFutureValue.Add(proj.ContributionFutureValue)

	if horizonYears > 0 && proj.TotalPrincipal.IsPositive() {
		cagr, err := finmath.CAGR(proj.TotalPrincipal, proj.ProjectedValue, growthYears)
		if err == nil {
			proj.EffectiveCAGRPct = cagr
		}
	}

	return proj, nil
}
