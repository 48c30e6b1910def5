package calculation

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/finmath"
	"github.com/shopspring/decimal"
)

const simulationPrecision = 8

// HorizonSolver reconciles the chosen horizon with what a monthly capacity
// can actually reach.
type HorizonSolver struct {
	Tolerance        decimal.Decimal
	MaxMonths        int
	UnreachableYears decimal.Decimal
}

// NewHorizonSolver builds a solver from the engine settings.
func NewHorizonSolver(settings domain.Settings) *HorizonSolver {
	return &HorizonSolver{
		Tolerance:        settings.HorizonTolerance,
		MaxMonths:        settings.MaxSimulationMonths,
		UnreachableYears: settings.UnreachableYears,
	}
}

// TimeRequired returns the years needed to reach totalGoalCost investing
// capacity every month. When capacity covers the closed-form requirement for
// horizonYears (within the tolerance band) the horizon is returned unchanged.
// Otherwise the plan is simulated month by month against an inflating target;
// UnreachableYears is returned when the target is not crossed within MaxMonths.
func (hs *HorizonSolver) TimeRequired(
	totalGoalCost, currentSavings, capacity decimal.Decimal,
	annualRatePct, annualInflationPct decimal.Decimal,
	projection domain.InvestmentProjection,
	horizonYears int,
) (decimal.Decimal, error) {
	if !totalGoalCost.IsPositive() {
		return decimalZero, nil
	}

	if horizonYears > 0 {
		required, err := RequiredMonthlyContribution(totalGoalCost, currentSavings, horizonYears,
			annualRatePct, annualInflationPct, projection)
		if err != nil {
			return decimalZero, err
		}
		if capacity.GreaterThanOrEqual(required.Mul(hs.Tolerance)) {
			return decimal.NewFromInt(int64(horizonYears)), nil
		}
	}

	value := currentSavings.Add(projection.ExistingInvestments)
	if value.GreaterThanOrEqual(totalGoalCost) {
		return decimalZero, nil
	}
	if !capacity.IsPositive() {
		return hs.UnreachableYears, nil
	}

	return hs.simulate(value, totalGoalCost, capacity, annualRatePct, annualInflationPct)
}

func (hs *HorizonSolver) simulate(value, target, capacity, annualRatePct, annualInflationPct decimal.Decimal) (decimal.Decimal, error) {
	growth := decimalOne.Add(finmath.MonthlyRate(annualRatePct))
	inflation, err := finmath.GrowthFactor(annualInflationPct, decimalOne.Div(decimalTwelve))
	if err != nil {
		return decimalZero, fmt.Errorf("failed to derive monthly inflation: %w", err)
	}

	for month := 1; month <= hs.MaxMonths; month++ {
		value = value.Mul(growth).Add(capacity).Round(simulationPrecision)
		target = target.Mul(inflation).Round(simulationPrecision)
		if value.GreaterThanOrEqual(target) {
			return decimal.NewFromInt(int64(month)).Div(decimalTwelve).Round(1), nil
		}
	}
	return hs.UnreachableYears, nil
}
