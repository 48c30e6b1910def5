// Package scenario derives alternative plans from a baseline profile by
// perturbing it with profile transforms and re-running the solvers.
package scenario

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/transform"
	"github.com/shopspring/decimal"
)

// Scenario kinds.
const (
	KindAggressive    = "aggressive"
	KindExtended      = "extended"
	KindConservative  = "conservative"
	KindOptimized     = "optimized"
	KindBoostExisting = "boost_existing"
	KindCurrentPlan   = "current"
	KindImprovement   = "improvement"
)

// direction decides whether a perturbed evaluation moved the way its scenario claims.
type direction func(base, alt calculation.Evaluation) bool

func fasterThan(base, alt calculation.Evaluation) bool {
	return alt.TimeRequiredYears.LessThan(base.TimeRequiredYears)
}

func slowerThan(base, alt calculation.Evaluation) bool {
	return alt.TimeRequiredYears.GreaterThan(base.TimeRequiredYears)
}

func cheaperThan(base, alt calculation.Evaluation) bool {
	return alt.RequiredMonthlyContribution.LessThan(base.RequiredMonthlyContribution)
}

type candidate struct {
	kind       string
	title      string
	applies    func(p *domain.FinancialProfile) bool
	transforms []transform.ProfileTransform
	keep       direction
	describe   func(ev calculation.Evaluation, p *domain.FinancialProfile) string
}

// Generator produces alternative plans. It is safe for concurrent use when
// the underlying engine is.
type Generator struct {
	Engine   *calculation.CalculationEngine
	Settings domain.ScenarioSettings
}

// NewGenerator creates a generator using the engine's scenario settings.
func NewGenerator(engine *calculation.CalculationEngine) *Generator {
	return &Generator{
		Engine:   engine,
		Settings: engine.Settings.Scenario,
	}
}

func (g *Generator) candidates() []candidate {
	s := g.Settings
	always := func(*domain.FinancialProfile) bool { return true }

	return []candidate{
		{
			kind:       KindAggressive,
			title:      "Aggressive investing",
			applies:    always,
			transforms: []transform.ProfileTransform{&transform.ScaleCapacity{Factor: s.AggressiveCapacityFactor}},
			keep:       fasterThan,
			describe: func(ev calculation.Evaluation, _ *domain.FinancialProfile) string {
				return fmt.Sprintf("Invest %s per month to reach your goals in %s years", ev.MonthlyCapacity.StringFixed(0), ev.TimeRequiredYears.String())
			},
		},
		{
			kind:       KindExtended,
			title:      "Extended timeline",
			applies:    always,
			transforms: []transform.ProfileTransform{&transform.ExtendHorizon{Years: s.HorizonExtensionYears}},
			keep:       cheaperThan,
			describe: func(ev calculation.Evaluation, p *domain.FinancialProfile) string {
				return fmt.Sprintf("Take %d years instead and invest only %s per month", p.HorizonYears, ev.RequiredMonthlyContribution.StringFixed(0))
			},
		},
		{
			kind:       KindConservative,
			title:      "Conservative approach",
			applies:    always,
			transforms: []transform.ProfileTransform{&transform.ScaleCapacity{Factor: s.ConservativeCapacityFactor}},
			keep:       slowerThan,
			describe: func(ev calculation.Evaluation, _ *domain.FinancialProfile) string {
				return fmt.Sprintf("Invest %s per month and reach your goals in %s years", ev.MonthlyCapacity.StringFixed(0), ev.TimeRequiredYears.String())
			},
		},
		{
			kind:  KindOptimized,
			title: "Optimized portfolio",
			applies: func(p *domain.FinancialProfile) bool {
				return p.ExistingInvestmentsValue.GreaterThan(s.ReturnUpliftMinInvestments)
			},
			transforms: []transform.ProfileTransform{&transform.AdjustReturn{DeltaPct: s.ReturnUpliftPct}},
			keep:       cheaperThan,
			describe: func(ev calculation.Evaluation, p *domain.FinancialProfile) string {
				return fmt.Sprintf("Rebalancing towards %s%% returns lowers the requirement to %s per month", p.ExpectedAnnualReturnPct.String(), ev.RequiredMonthlyContribution.StringFixed(0))
			},
		},
		{
			kind:  KindBoostExisting,
			title: "Boost existing investments",
			applies: func(p *domain.FinancialProfile) bool {
				return p.CurrentMonthlyContribution.IsPositive()
			},
			transforms: []transform.ProfileTransform{&transform.ScaleContribution{Factor: s.ExistingContributionFactor}},
			keep:       cheaperThan,
			describe: func(ev calculation.Evaluation, p *domain.FinancialProfile) string {
				return fmt.Sprintf("Raising your ongoing contribution to %s lowers the additional requirement to %s per month", p.CurrentMonthlyContribution.StringFixed(0), ev.RequiredMonthlyContribution.StringFixed(0))
			},
		},
	}
}

// Generate evaluates the profile and each perturbation of it, returning the
// scenarios that move in the direction they claim. When none qualify it
// returns the current plan, plus a modest improvement if that shortens the
// time required. The context is checked between evaluations.
func (g *Generator) Generate(ctx context.Context, profile *domain.FinancialProfile) ([]domain.Scenario, error) {
	prepared, err := g.Engine.Prepare(profile)
	if err != nil {
		return nil, err
	}

	base, err := g.Engine.Evaluate(prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate baseline: %w", err)
	}

	var scenarios []domain.Scenario
	for _, c := range g.candidates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.applies(prepared) {
			continue
		}

		alt, ev, err := g.evaluate(prepared, c.transforms)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", c.kind, err)
		}
		if !c.keep(base, ev) {
			g.Engine.Logger.Debugf("dropping %s scenario: time %s, required %s", c.kind, ev.TimeRequiredYears, ev.RequiredMonthlyContribution)
			continue
		}

		scenarios = append(scenarios, newScenario(c.kind, c.title, c.describe(ev, alt), alt, ev))
	}

	if len(scenarios) > 0 {
		return scenarios, nil
	}

	scenarios = append(scenarios, newScenario(KindCurrentPlan, "Continue current plan",
		fmt.Sprintf("Keep investing %s per month", base.MonthlyCapacity.StringFixed(0)), prepared, base))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	improved, ev, err := g.evaluate(prepared, []transform.ProfileTransform{
		&transform.ScaleCapacity{Factor: g.Settings.FallbackImprovementFactor},
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", KindImprovement, err)
	}
	if fasterThan(base, ev) {
		pct := g.Settings.FallbackImprovementFactor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
		scenarios = append(scenarios, newScenario(KindImprovement, "Small improvement",
			fmt.Sprintf("Investing %s%% more saves %s years", pct.String(), base.TimeRequiredYears.Sub(ev.TimeRequiredYears).String()),
			improved, ev))
	}

	return scenarios, nil
}

func (g *Generator) evaluate(p *domain.FinancialProfile, transforms []transform.ProfileTransform) (*domain.FinancialProfile, calculation.Evaluation, error) {
	alt, err := transform.ApplyTransforms(p, transforms)
	if err != nil {
		return nil, calculation.Evaluation{}, err
	}
	ev, err := g.Engine.Evaluate(alt)
	if err != nil {
		return nil, calculation.Evaluation{}, err
	}
	return alt, ev, nil
}

func newScenario(kind, title, description string, p *domain.FinancialProfile, ev calculation.Evaluation) domain.Scenario {
	return domain.Scenario{
		Kind:                        kind,
		Title:                       title,
		Description:                 description,
		MonthlyCapacity:             ev.MonthlyCapacity,
		RequiredMonthlyContribution: ev.RequiredMonthlyContribution,
		TimeRequiredYears:           ev.TimeRequiredYears,
		HorizonYears:                p.HorizonYears,
		ExpectedReturnPct:           p.ExpectedAnnualReturnPct,
	}
}
