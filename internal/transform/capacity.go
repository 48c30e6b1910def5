package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleCapacity multiplies the monthly investment capacity by Factor and pins
// the result as an explicit capacity override.
type ScaleCapacity struct {
	Factor decimal.Decimal // e.g. 1.5 for 50% more capacity
}

func (sc *ScaleCapacity) Name() string {
	return "scale_capacity"
}

func (sc *ScaleCapacity) Description() string {
	return fmt.Sprintf("Scale monthly investment capacity by %sx", sc.Factor.String())
}

func (sc *ScaleCapacity) Validate(base *domain.FinancialProfile) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor.String()), nil)
	}
	return requireBase(sc.Name(), base)
}

func (sc *ScaleCapacity) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	capacity := base.EffectiveMonthlyCapacity().Mul(sc.Factor)
	modified.MonthlyCapacity = &capacity
	return modified, nil
}

// SetCapacity pins the monthly investment capacity to an absolute amount.
type SetCapacity struct {
	Amount decimal.Decimal
}

func (s *SetCapacity) Name() string {
	return "set_capacity"
}

func (s *SetCapacity) Description() string {
	return fmt.Sprintf("Set monthly investment capacity to %s", s.Amount.StringFixed(0))
}

func (s *SetCapacity) Validate(base *domain.FinancialProfile) error {
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", s.Amount.String()), nil)
	}
	return requireBase(s.Name(), base)
}

func (s *SetCapacity) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	amount := s.Amount
	modified.MonthlyCapacity = &amount
	return modified, nil
}

// ScaleContribution multiplies the existing systematic monthly contribution.
type ScaleContribution struct {
	Factor decimal.Decimal
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	return fmt.Sprintf("Scale existing monthly contribution by %sx", sc.Factor.String())
}

func (sc *ScaleContribution) Validate(base *domain.FinancialProfile) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor.String()), nil)
	}
	if err := requireBase(sc.Name(), base); err != nil {
		return err
	}
	if !base.CurrentMonthlyContribution.IsPositive() {
		return NewTransformError(sc.Name(), "validate", "profile has no existing monthly contribution", nil)
	}
	return nil
}

func (sc *ScaleContribution) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.CurrentMonthlyContribution = base.CurrentMonthlyContribution.Mul(sc.Factor)
	return modified, nil
}

// AddSavings adds a lump sum to current savings. Negative amounts withdraw,
// but savings never drop below zero.
type AddSavings struct {
	Amount decimal.Decimal
}

func (as *AddSavings) Name() string {
	return "add_savings"
}

func (as *AddSavings) Description() string {
	if as.Amount.IsNegative() {
		return fmt.Sprintf("Withdraw %s from savings", as.Amount.Neg().StringFixed(0))
	}
	return fmt.Sprintf("Add %s to savings", as.Amount.StringFixed(0))
}

func (as *AddSavings) Validate(base *domain.FinancialProfile) error {
	return requireBase(as.Name(), base)
}

func (as *AddSavings) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.CurrentSavings = decimal.Max(decimal.Zero, base.CurrentSavings.Add(as.Amount))
	return modified, nil
}
