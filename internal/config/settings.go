package config

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GOALPLAN_LOGGING_LEVEL.
const EnvPrefix = "GOALPLAN"

// AppConfig holds application settings loaded from an optional file and the environment.
type AppConfig struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Planning PlanningConfig `mapstructure:"planning" yaml:"planning"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`             // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format"`           // json, console
	OutputFile string `mapstructure:"output_file" yaml:"output_file"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // console, json, csv, share
}

// PlanningConfig overrides engine assumptions.
type PlanningConfig struct {
	DefaultReturnPct      float64 `mapstructure:"default_return_pct" yaml:"default_return_pct"`
	DefaultInflationPct   float64 `mapstructure:"default_inflation_pct" yaml:"default_inflation_pct"`
	MaxSimulationMonths   int     `mapstructure:"max_simulation_months" yaml:"max_simulation_months"`
	UnreachableYears      int     `mapstructure:"unreachable_years" yaml:"unreachable_years"`
	HorizonTolerance      float64 `mapstructure:"horizon_tolerance" yaml:"horizon_tolerance"`
	SafeWithdrawalRatePct float64 `mapstructure:"safe_withdrawal_rate_pct" yaml:"safe_withdrawal_rate_pct"`
	PostGoalReturnPct     float64 `mapstructure:"post_goal_return_pct" yaml:"post_goal_return_pct"`
	CurrencyCode          string  `mapstructure:"currency_code" yaml:"currency_code"`
	CurrencySymbol        string  `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	ExchangeRate          float64 `mapstructure:"exchange_rate" yaml:"exchange_rate"`
}

// DefaultAppConfig mirrors domain.DefaultSettings.
func DefaultAppConfig() AppConfig {
	s := domain.DefaultSettings()
	return AppConfig{
		Logging: LoggingConfig{Level: "warn", Format: "console"},
		Output:  OutputConfig{Format: "console"},
		Planning: PlanningConfig{
			DefaultReturnPct:      s.DefaultReturnPct.InexactFloat64(),
			DefaultInflationPct:   s.DefaultInflationPct.InexactFloat64(),
			MaxSimulationMonths:   s.MaxSimulationMonths,
			UnreachableYears:      int(s.UnreachableYears.IntPart()),
			HorizonTolerance:      s.HorizonTolerance.InexactFloat64(),
			SafeWithdrawalRatePct: s.SafeWithdrawalRatePct.InexactFloat64(),
			PostGoalReturnPct:     s.PostGoalReturnPct.InexactFloat64(),
			CurrencyCode:          s.Currency.Code,
			CurrencySymbol:        s.Currency.Symbol,
			ExchangeRate:          s.Currency.ExchangeRate.InexactFloat64(),
		},
	}
}

// LoadAppConfig reads settings from path (optional) and GOALPLAN_* environment
// variables. It uses its own viper instance so callers never share state.
func LoadAppConfig(path string) (*AppConfig, error) {
	v := viper.New()

	defaults := DefaultAppConfig()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.output_file", defaults.Logging.OutputFile)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("planning.default_return_pct", defaults.Planning.DefaultReturnPct)
	v.SetDefault("planning.default_inflation_pct", defaults.Planning.DefaultInflationPct)
	v.SetDefault("planning.max_simulation_months", defaults.Planning.MaxSimulationMonths)
	v.SetDefault("planning.unreachable_years", defaults.Planning.UnreachableYears)
	v.SetDefault("planning.horizon_tolerance", defaults.Planning.HorizonTolerance)
	v.SetDefault("planning.safe_withdrawal_rate_pct", defaults.Planning.SafeWithdrawalRatePct)
	v.SetDefault("planning.post_goal_return_pct", defaults.Planning.PostGoalReturnPct)
	v.SetDefault("planning.currency_code", defaults.Planning.CurrencyCode)
	v.SetDefault("planning.currency_symbol", defaults.Planning.CurrencySymbol)
	v.SetDefault("planning.exchange_rate", defaults.Planning.ExchangeRate)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerations and ranges that would otherwise fail later.
func (c *AppConfig) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Planning.MaxSimulationMonths <= 0 {
		return fmt.Errorf("planning.max_simulation_months must be positive, got %d", c.Planning.MaxSimulationMonths)
	}
	if c.Planning.HorizonTolerance <= 0 || c.Planning.HorizonTolerance > 1 {
		return fmt.Errorf("planning.horizon_tolerance must be in (0, 1], got %g", c.Planning.HorizonTolerance)
	}
	if c.Planning.ExchangeRate <= 0 {
		return fmt.Errorf("planning.exchange_rate must be positive, got %g", c.Planning.ExchangeRate)
	}

	return nil
}

// Settings applies the planning overrides to the default engine settings.
func (c *AppConfig) Settings() domain.Settings {
	s := domain.DefaultSettings()
	p := c.Planning

	s.DefaultReturnPct = decimal.NewFromFloat(p.DefaultReturnPct)
	s.DefaultInflationPct = decimal.NewFromFloat(p.DefaultInflationPct)
	s.MaxSimulationMonths = p.MaxSimulationMonths
	s.UnreachableYears = decimal.NewFromInt(int64(p.UnreachableYears))
	s.HorizonTolerance = decimal.NewFromFloat(p.HorizonTolerance)
	s.SafeWithdrawalRatePct = decimal.NewFromFloat(p.SafeWithdrawalRatePct)
	s.PostGoalReturnPct = decimal.NewFromFloat(p.PostGoalReturnPct)
	s.Currency = domain.Currency{
		Code:         p.CurrencyCode,
		Symbol:       p.CurrencySymbol,
		ExchangeRate: decimal.NewFromFloat(p.ExchangeRate),
	}

	return s
}
