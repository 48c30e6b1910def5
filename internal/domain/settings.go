package domain

import "github.com/shopspring/decimal"

// Currency describes how amounts are displayed. Amounts are stored in the base
// currency and multiplied by ExchangeRate for display only.
type Currency struct {
	Code         string          `yaml:"code" json:"code"`
	Symbol       string          `yaml:"symbol" json:"symbol"`
	ExchangeRate decimal.Decimal `yaml:"exchange_rate" json:"exchange_rate"`
}

// ScenarioSettings holds the perturbations used to build alternative plans.
type ScenarioSettings struct {
	AggressiveCapacityFactor   decimal.Decimal `json:"aggressiveCapacityFactor"`
	ConservativeCapacityFactor decimal.Decimal `json:"conservativeCapacityFactor"`
	HorizonExtensionYears      int             `json:"horizonExtensionYears"`
	ReturnUpliftPct            decimal.Decimal `json:"returnUpliftPct"`
	ReturnUpliftMinInvestments decimal.Decimal `json:"returnUpliftMinInvestments"`
	ExistingContributionFactor decimal.Decimal `json:"existingContributionFactor"`
	FallbackImprovementFactor  decimal.Decimal `json:"fallbackImprovementFactor"`
}

// ValidationLimits bound raw user input before it reaches the engine.
type ValidationLimits struct {
	MinAge            int             `json:"minAge"`
	MaxAge            int             `json:"maxAge"`
	MaxHorizonYears   int             `json:"maxHorizonYears"`
	MaxLifeExpectancy int             `json:"maxLifeExpectancy"`
	MaxReturnPct      decimal.Decimal `json:"maxReturnPct"`
	MaxInflationPct   decimal.Decimal `json:"maxInflationPct"`
}

// Settings is the immutable engine configuration. It is passed by value so
// engines built from different settings never share state.
type Settings struct {
	DefaultReturnPct    decimal.Decimal `json:"defaultReturnPct"`
	DefaultInflationPct decimal.Decimal `json:"defaultInflationPct"`

	// UnreachableYears is reported as time required when a goal cannot be
	// reached within MaxSimulationMonths.
	UnreachableYears    decimal.Decimal `json:"unreachableYears"`
	MaxSimulationMonths int             `json:"maxSimulationMonths"`
	HorizonTolerance    decimal.Decimal `json:"horizonTolerance"`

	SafeWithdrawalRatePct decimal.Decimal `json:"safeWithdrawalRatePct"`
	PostGoalReturnPct     decimal.Decimal `json:"postGoalReturnPct"`
	PostGoalExpenseFactor decimal.Decimal `json:"postGoalExpenseFactor"`

	Scenario ScenarioSettings `json:"scenario"`
	Limits   ValidationLimits `json:"limits"`
	Currency Currency         `json:"currency"`
}

// DefaultSettings returns the stock planning assumptions.
func DefaultSettings() Settings {
	return Settings{
		DefaultReturnPct:      decimal.NewFromInt(12),
		DefaultInflationPct:   decimal.NewFromInt(6),
		UnreachableYears:      decimal.NewFromInt(999),
		MaxSimulationMonths:   600,
		HorizonTolerance:      decimal.NewFromFloat(0.95),
		SafeWithdrawalRatePct: decimal.NewFromInt(4),
		PostGoalReturnPct:     decimal.NewFromInt(8),
		PostGoalExpenseFactor: decimal.NewFromFloat(0.7),
		Scenario: ScenarioSettings{
			AggressiveCapacityFactor:   decimal.NewFromFloat(1.5),
			ConservativeCapacityFactor: decimal.NewFromFloat(0.75),
			HorizonExtensionYears:      3,
			ReturnUpliftPct:            decimal.NewFromInt(2),
			ReturnUpliftMinInvestments: decimal.NewFromInt(100000),
			ExistingContributionFactor: decimal.NewFromFloat(1.5),
			FallbackImprovementFactor:  decimal.NewFromFloat(1.2),
		},
		Limits: ValidationLimits{
			MinAge:            18,
			MaxAge:            100,
			MaxHorizonYears:   50,
			MaxLifeExpectancy: 120,
			MaxReturnPct:      decimal.NewFromInt(30),
			MaxInflationPct:   decimal.NewFromInt(20),
		},
		Currency: Currency{
			Code:         "INR",
			Symbol:       "₹",
			ExchangeRate: decimal.NewFromInt(1),
		},
	}
}
