package calculation

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TotalGoalCost sums the amounts of every enabled goal with a positive amount.
func TotalGoalCost(goals domain.GoalSet) decimal.Decimal {
	total := decimalZero
	for _, g := range goals {
		if g.Contributes() {
			total = total.Add(g.Amount)
		}
	}
	return total
}

// EnabledGoals returns the ids of the goals counted by TotalGoalCost, sorted.
func EnabledGoals(goals domain.GoalSet) []string {
	ids := []string{}
	for _, id := range goals.IDs() {
		if goals[id].Contributes() {
			ids = append(ids, id)
		}
	}
	return ids
}
