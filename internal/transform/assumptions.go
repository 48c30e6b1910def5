package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

var minusHundred = decimal.NewFromInt(-100)

// AdjustReturn shifts the expected annual return by DeltaPct percentage points.
type AdjustReturn struct {
	DeltaPct decimal.Decimal // e.g. 2 for +2%
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Adjust expected return by %s%%", signed(ar.DeltaPct))
}

func (ar *AdjustReturn) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if base.ExpectedAnnualReturnPct.Add(ar.DeltaPct).LessThanOrEqual(minusHundred) {
		return NewTransformError(ar.Name(), "validate", "resulting return must be greater than -100%", nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.ExpectedAnnualReturnPct = base.ExpectedAnnualReturnPct.Add(ar.DeltaPct)
	return modified, nil
}

// AdjustInflation shifts the expected annual inflation by DeltaPct percentage
// points. It changes both the inflated goal cost and the real return.
type AdjustInflation struct {
	DeltaPct decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Adjust expected inflation by %s%%", signed(ai.DeltaPct))
}

func (ai *AdjustInflation) Validate(base *domain.FinancialProfile) error {
	if err := requireBase(ai.Name(), base); err != nil {
		return err
	}
	if base.ExpectedAnnualInflationPct.Add(ai.DeltaPct).LessThanOrEqual(minusHundred) {
		return NewTransformError(ai.Name(), "validate", "resulting inflation must be greater than -100%", nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	modified.ExpectedAnnualInflationPct = base.ExpectedAnnualInflationPct.Add(ai.DeltaPct)
	return modified, nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String()
	}
	return "+" + d.String()
}
