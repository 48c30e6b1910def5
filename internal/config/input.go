package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProfileDocument is a profile as written by a user. Every field is optional;
// missing values are filled in by Sanitize.
type ProfileDocument struct {
	Age            *int `yaml:"age"`
	HorizonYears   *int `yaml:"horizon_years"`
	LifeExpectancy *int `yaml:"life_expectancy"`

	MonthlyIncome              *decimal.Decimal `yaml:"monthly_income"`
	MonthlyExpenses            *decimal.Decimal `yaml:"monthly_expenses"`
	CurrentSavings             *decimal.Decimal `yaml:"current_savings"`
	ExistingMonthlyDebtService *decimal.Decimal `yaml:"existing_monthly_debt_service"`

	ExpectedAnnualReturnPct    *decimal.Decimal `yaml:"expected_annual_return_pct"`
	ExpectedAnnualInflationPct *decimal.Decimal `yaml:"expected_annual_inflation_pct"`

	ExistingInvestmentsValue   *decimal.Decimal `yaml:"existing_investments_value"`
	CurrentMonthlyContribution *decimal.Decimal `yaml:"current_monthly_contribution"`
	ContributionDurationYears  *decimal.Decimal `yaml:"contribution_duration_years"`

	MonthlyCapacity *decimal.Decimal `yaml:"monthly_capacity"`

	Goals map[string]GoalDocument `yaml:"goals"`
	Loans []domain.Loan           `yaml:"loans"`
}

// GoalDocument is a goal entry; a goal with an amount and no enabled flag is enabled.
type GoalDocument struct {
	Enabled *bool            `yaml:"enabled"`
	Amount  *decimal.Decimal `yaml:"amount"`
}

// InputParser handles parsing of profile documents
type InputParser struct {
	Settings domain.Settings
}

// NewInputParser creates a new input parser
func NewInputParser(settings domain.Settings) *InputParser {
	return &InputParser{Settings: settings}
}

// LoadFromFile loads a profile from a YAML or JSON file. Warnings describe
// every value that was defaulted or clamped.
func (ip *InputParser) LoadFromFile(filename string) (*domain.FinancialProfile, []string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	return ip.Parse(data)
}

// Parse decodes a YAML or JSON document and sanitizes it.
func (ip *InputParser) Parse(data []byte) (*domain.FinancialProfile, []string, error) {
	var doc ProfileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile, warnings := ip.Sanitize(&doc)
	return profile, warnings, nil
}

// Sanitize turns a document into an engine-ready profile. It never fails:
// missing numbers become 0 (return and inflation use the configured defaults)
// and out-of-range values are clamped.
func (ip *InputParser) Sanitize(doc *ProfileDocument) (*domain.FinancialProfile, []string) {
	s := &sanitizer{}

	p := &domain.FinancialProfile{
		Age:            s.intRange("age", doc.Age, ip.Settings.Limits.MinAge, ip.Settings.Limits.MaxAge),
		HorizonYears:   s.intRange("horizon_years", doc.HorizonYears, 0, ip.Settings.Limits.MaxHorizonYears),
		LifeExpectancy: s.intRange("life_expectancy", doc.LifeExpectancy, 0, ip.Settings.Limits.MaxLifeExpectancy),

		MonthlyIncome:              s.amount("monthly_income", doc.MonthlyIncome),
		MonthlyExpenses:            s.amount("monthly_expenses", doc.MonthlyExpenses),
		CurrentSavings:             s.amount("current_savings", doc.CurrentSavings),
		ExistingMonthlyDebtService: s.amount("existing_monthly_debt_service", doc.ExistingMonthlyDebtService),

		ExpectedAnnualReturnPct: s.pct("expected_annual_return_pct", doc.ExpectedAnnualReturnPct,
			ip.Settings.DefaultReturnPct, ip.Settings.Limits.MaxReturnPct),
		ExpectedAnnualInflationPct: s.pct("expected_annual_inflation_pct", doc.ExpectedAnnualInflationPct,
			ip.Settings.DefaultInflationPct, ip.Settings.Limits.MaxInflationPct),

		ExistingInvestmentsValue:   s.amount("existing_investments_value", doc.ExistingInvestmentsValue),
		CurrentMonthlyContribution: s.amount("current_monthly_contribution", doc.CurrentMonthlyContribution),
		ContributionDurationYears:  s.amount("contribution_duration_years", doc.ContributionDurationYears),
	}

	// A duration without a contribution describes nothing.
	if p.CurrentMonthlyContribution.IsZero() && p.ContributionDurationYears.IsPositive() {
		s.warnf("contribution_duration_years ignored without a current_monthly_contribution")
		p.ContributionDurationYears = decimal.Zero
	}

	if doc.MonthlyCapacity != nil {
		if doc.MonthlyCapacity.IsNegative() {
			s.warnf("monthly_capacity %s is negative, using the monthly surplus instead", doc.MonthlyCapacity)
		} else {
			capacity := *doc.MonthlyCapacity
			p.MonthlyCapacity = &capacity
		}
	}

	if p.LifeExpectancy > 0 && p.Age > 0 && p.LifeExpectancy <= p.Age {
		s.warnf("life_expectancy %d is not above age %d, life-stage analysis is disabled", p.LifeExpectancy, p.Age)
	}

	p.Goals = s.goals(doc.Goals)
	p.Loans = s.loans(doc.Loans)

	return p, s.warnings
}

type sanitizer struct {
	warnings []string
}

func (s *sanitizer) warnf(format string, args ...interface{}) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

// intRange leaves a missing or zero value at 0; min only applies to values that were supplied.
func (s *sanitizer) intRange(field string, v *int, min, max int) int {
	if v == nil || *v == 0 {
		return 0
	}
	switch {
	case *v < 0:
		s.warnf("%s %d is negative, using 0", field, *v)
		return 0
	case *v < min:
		s.warnf("%s %d is below %d, using %d", field, *v, min, min)
		return min
	case max > 0 && *v > max:
		s.warnf("%s %d is above %d, using %d", field, *v, max, max)
		return max
	}
	return *v
}

func (s *sanitizer) amount(field string, v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	if v.IsNegative() {
		s.warnf("%s %s is negative, using 0", field, v)
		return decimal.Zero
	}
	return *v
}

func (s *sanitizer) pct(field string, v *decimal.Decimal, def, max decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	if v.IsNegative() {
		s.warnf("%s %s is negative, using 0", field, v)
		return decimal.Zero
	}
	if max.IsPositive() && v.GreaterThan(max) {
		s.warnf("%s %s is above %s, using %s", field, v, max, max)
		return max
	}
	return *v
}

func (s *sanitizer) goals(docs map[string]GoalDocument) domain.GoalSet {
	goals := make(domain.GoalSet, len(docs))

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if id == "" {
			s.warnf("goal with an empty id ignored")
			continue
		}
		g := docs[id]
		goal := domain.Goal{
			Enabled: g.Enabled == nil || *g.Enabled,
			Amount:  s.amount("goals."+id+".amount", g.Amount),
		}
		goals[id] = goal
	}
	return goals
}

func (s *sanitizer) loans(loans []domain.Loan) []domain.Loan {
	if len(loans) == 0 {
		return nil
	}

	out := make([]domain.Loan, 0, len(loans))
	for i, l := range loans {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("loan %d", i+1)
			l.Name = name
		}
		if !l.Principal.IsPositive() {
			s.warnf("loan %q has no outstanding principal, ignored", name)
			continue
		}
		if l.RatePct.IsNegative() {
			s.warnf("loan %q rate %s is negative, using 0", name, l.RatePct)
			l.RatePct = decimal.Zero
		}
		if l.RemainingTenureMonths < 0 {
			s.warnf("loan %q tenure %d is negative, using 0", name, l.RemainingTenureMonths)
			l.RemainingTenureMonths = 0
		}
		if l.ActualEMI.IsNegative() {
			s.warnf("loan %q EMI %s is negative, deriving it from the tenure", name, l.ActualEMI)
			l.ActualEMI = decimal.Zero
		}
		out = append(out, l)
	}
	return out
}

// MarshalProfile renders a profile as a YAML document that Parse accepts.
func MarshalProfile(p *domain.FinancialProfile) ([]byte, error) {
	doc := ProfileDocument{
		Age:                        &p.Age,
		HorizonYears:               &p.HorizonYears,
		LifeExpectancy:             &p.LifeExpectancy,
		MonthlyIncome:              &p.MonthlyIncome,
		MonthlyExpenses:            &p.MonthlyExpenses,
		CurrentSavings:             &p.CurrentSavings,
		ExistingMonthlyDebtService: &p.ExistingMonthlyDebtService,
		ExpectedAnnualReturnPct:    &p.ExpectedAnnualReturnPct,
		ExpectedAnnualInflationPct: &p.ExpectedAnnualInflationPct,
		ExistingInvestmentsValue:   &p.ExistingInvestmentsValue,
		CurrentMonthlyContribution: &p.CurrentMonthlyContribution,
		ContributionDurationYears:  &p.ContributionDurationYears,
		MonthlyCapacity:            p.MonthlyCapacity,
		Loans:                      p.Loans,
	}

	if len(p.Goals) > 0 {
		doc.Goals = make(map[string]GoalDocument, len(p.Goals))
		for id, g := range p.Goals {
			enabled, amount := g.Enabled, g.Amount
			doc.Goals[id] = GoalDocument{Enabled: &enabled, Amount: &amount}
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// ExampleProfile is the profile written by `goalplan init`.
func ExampleProfile(settings domain.Settings) *domain.FinancialProfile {
	return &domain.FinancialProfile{
		Age:                        35,
		HorizonYears:               15,
		LifeExpectancy:             85,
		MonthlyIncome:              decimal.NewFromInt(100000),
		MonthlyExpenses:            decimal.NewFromInt(50000),
		CurrentSavings:             decimal.NewFromInt(500000),
		ExpectedAnnualReturnPct:    settings.DefaultReturnPct,
		ExpectedAnnualInflationPct: settings.DefaultInflationPct,
		Goals: domain.GoalSet{
			domain.GoalHouse:     {Enabled: true, Amount: decimal.NewFromInt(5000000)},
			domain.GoalEmergency: {Enabled: true, Amount: decimal.NewFromInt(300000)},
			domain.GoalTravel:    {Enabled: false, Amount: decimal.NewFromInt(200000)},
		},
	}
}
