package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SetGoal sets the amount of a goal and enables it, adding the goal when the
// profile does not have it yet.
type SetGoal struct {
	ID     string
	Amount decimal.Decimal
}

func (sg *SetGoal) Name() string {
	return "set_goal"
}

func (sg *SetGoal) Description() string {
	return fmt.Sprintf("Set %s goal to %s", sg.ID, sg.Amount.StringFixed(0))
}

func (sg *SetGoal) Validate(base *domain.FinancialProfile) error {
	if sg.ID == "" {
		return NewTransformError(sg.Name(), "validate", "goal id cannot be empty", nil)
	}
	if sg.Amount.IsNegative() {
		return NewTransformError(sg.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sg.Amount.String()), nil)
	}
	return requireBase(sg.Name(), base)
}

func (sg *SetGoal) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	if modified.Goals == nil {
		modified.Goals = make(domain.GoalSet)
	}
	modified.Goals[sg.ID] = domain.Goal{Enabled: true, Amount: sg.Amount}
	return modified, nil
}

// ToggleGoal enables or disables an existing goal without touching its amount.
type ToggleGoal struct {
	ID      string
	Enabled bool
}

func (tg *ToggleGoal) Name() string {
	return "toggle_goal"
}

func (tg *ToggleGoal) Description() string {
	if tg.Enabled {
		return fmt.Sprintf("Enable %s goal", tg.ID)
	}
	return fmt.Sprintf("Disable %s goal", tg.ID)
}

func (tg *ToggleGoal) Validate(base *domain.FinancialProfile) error {
	if tg.ID == "" {
		return NewTransformError(tg.Name(), "validate", "goal id cannot be empty", nil)
	}
	if err := requireBase(tg.Name(), base); err != nil {
		return err
	}
	if _, ok := base.Goals[tg.ID]; !ok {
		return NewTransformError(tg.Name(), "validate", fmt.Sprintf("goal %s not found in profile", tg.ID), nil)
	}
	return nil
}

func (tg *ToggleGoal) Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error) {
	modified := base.DeepCopy()
	g := modified.Goals[tg.ID]
	g.Enabled = tg.Enabled
	modified.Goals[tg.ID] = g
	return modified, nil
}
