package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ExtendHorizon moves the goal horizon out by a number of years.
// This is useful for exploring "give it a few more years" plans.
type ExtendHorizon struct {
	Years int // Years to add (non-negative)
}

func (eh *ExtendHorizon) Name() string {
	return "extend_horizon"
}

func (eh *ExtendHorizon) Description() string {
	return fmt.Sprintf("Extend the goal horizon by %d years", eh.Years)
}

func (eh *ExtendHorizon) Validate(base *domain.FinancialProfile) error {
	if eh.Years < 0 {
		return NewTransformError(eh.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", eh.Years), nil)
	}
	return requireBase(eh.Name(), base)
}

func (eh *ExtendHorizon) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.HorizonYears = base.HorizonYears + eh.Years
	return modified, nil
}

// SetHorizon sets the goal horizon to an absolute number of years.
type SetHorizon struct {
	Years int
}

func (sh *SetHorizon) Name() string {
	return "set_horizon"
}

func (sh *SetHorizon) Description() string {
	return fmt.Sprintf("Set the goal horizon to %d years", sh.Years)
}

func (sh *SetHorizon) Validate(base *domain.FinancialProfile) error {
	if sh.Years < 0 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", sh.Years), nil)
	}
	return requireBase(sh.Name(), base)
}

func (sh *SetHorizon) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.HorizonYears = sh.Years
	return modified, nil
}

// SetLifeExpectancy overrides the planning life expectancy.
type SetLifeExpectancy struct {
	Age int
}

func (sle *SetLifeExpectancy) Name() string {
	return "set_life_expectancy"
}

func (sle *SetLifeExpectancy) Description() string {
	return fmt.Sprintf("Plan for a life expectancy of %d", sle.Age)
}

func (sle *SetLifeExpectancy) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(sle.Name(), base); err != nil {
		return err
	}
	if sle.Age <= base.Age {
		return NewTransformError(sle.Name(), "validate", fmt.Sprintf("life expectancy %d must exceed current age %d", sle.Age, base.Age), nil)
	}
	return nil
}

func (sle *SetLifeExpectancy) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.LifeExpectancy = sle.Age
	return modified, nil
}
