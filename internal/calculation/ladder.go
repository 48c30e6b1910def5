package calculation

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Rule is one band of a threshold ladder.
type Rule[T any] struct {
	Label string
	Match func(T) bool
	Delta int
}

// Ladder is an ordered table of rules. The first matching rule wins; rules
// never stack.
type Ladder[T any] struct {
	Name  string
	Rules []Rule[T]
}

// Evaluate returns the first rule matching v.
func (l Ladder[T]) Evaluate(v T) (Rule[T], bool) {
	for _, r := range l.Rules {
		if r.Match(v) {
			return r, true
		}
	}
	return Rule[T]{}, false
}

// Points returns the delta of the first matching rule, or 0.
func (l Ladder[T]) Points(v T) int {
	r, ok := l.Evaluate(v)
	if !ok {
		return 0
	}
	return r.Delta
}

func atLeast(threshold int64) func(decimal.Decimal) bool {
	t := decimal.NewFromInt(threshold)
	return func(v decimal.Decimal) bool { return v.GreaterThanOrEqual(t) }
}

func above(threshold int64) func(decimal.Decimal) bool {
	t := decimal.NewFromInt(threshold)
	return func(v decimal.Decimal) bool { return v.GreaterThan(t) }
}

func below(threshold int64) func(decimal.Decimal) bool {
	t := decimal.NewFromInt(threshold)
	return func(v decimal.Decimal) bool { return v.LessThan(t) }
}

func atMost(threshold int64) func(decimal.Decimal) bool {
	t := decimal.NewFromInt(threshold)
	return func(v decimal.Decimal) bool { return v.LessThanOrEqual(t) }
}

func atMostDec(threshold decimal.Decimal) func(decimal.Decimal) bool {
	return func(v decimal.Decimal) bool { return v.LessThanOrEqual(threshold) }
}

func always(decimal.Decimal) bool { return true }

// scoreCard accumulates ladder results on top of a baseline.
type scoreCard struct {
	baseline    int
	total       decimal.Decimal
	adjustments []domain.ScoreAdjustment
}

func newScoreCard(baseline int) *scoreCard {
	return &scoreCard{baseline: baseline, total: decimal.NewFromInt(int64(baseline))}
}

func (sc *scoreCard) add(factor, rule string, points decimal.Decimal) {
	if points.IsZero() {
		return
	}
	sc.total = sc.total.Add(points)
	sc.adjustments = append(sc.adjustments, domain.ScoreAdjustment{Factor: factor, Rule: rule, Points: points})
}

// apply evaluates l against v and records the matching rule on sc.
func apply[T any](sc *scoreCard, l Ladder[T], v T) {
	if r, ok := l.Evaluate(v); ok {
		sc.add(l.Name, r.Label, decimal.NewFromInt(int64(r.Delta)))
	}
}

// score rounds the running total and clamps it to [0,100].
func (sc *scoreCard) score() int {
	s := int(sc.total.Round(0).IntPart())
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func (sc *scoreCard) breakdown() domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Baseline:    sc.baseline,
		Adjustments: sc.adjustments,
		Score:       sc.score(),
	}
}
