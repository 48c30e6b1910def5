// Package finmath provides the time-value-of-money primitives used by the
// planning engine. All functions are pure.
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

const powPrecision = 16

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
	minusHundred = decimal.NewFromInt(-100)
)

// Pct converts a percentage to a fraction.
func Pct(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// MonthlyRate converts an annual percentage to a monthly fraction.
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(hundred).Div(monthsInYear)
}

// powInt raises base to a non-negative integer power by repeated squaring.
// decimal.Pow is only exact for integer exponents; intermediate values are
// rounded to keep the coefficients bounded.
func powInt(base decimal.Decimal, n int64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		base = base.Mul(base).Round(powPrecision)
		n >>= 1
	}
	return result
}

// Pow raises base to exp. Integer exponents are computed exactly in decimal;
// fractional exponents go through float64.
func Pow(base, exp decimal.Decimal) (decimal.Decimal, error) {
	if exp.Equal(exp.Truncate(0)) {
		n := exp.IntPart()
		if n >= 0 {
			return powInt(base, n), nil
		}
		if base.IsZero() {
			return decimal.Zero, invalid("Pow", "base", "zero raised to a negative power")
		}
		return decimal.NewFromInt(1).Div(powInt(base, -n)), nil
	}

	if base.IsNegative() {
		return decimal.Zero, invalid("Pow", "base", "negative base with fractional exponent")
	}
	f := math.Pow(base.InexactFloat64(), exp.InexactFloat64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, invalid("Pow", "exp", "result is not finite")
	}
	return decimal.NewFromFloat(f), nil
}

// GrowthFactor returns (1 + annualRatePct/100)^years.
func GrowthFactor(annualRatePct, years decimal.Decimal) (decimal.Decimal, error) {
	if annualRatePct.LessThanOrEqual(minusHundred) {
		return decimal.Zero, invalid("GrowthFactor", "annualRatePct", "must be greater than -100")
	}
	if years.IsNegative() {
		return decimal.Zero, invalid("GrowthFactor", "years", "must not be negative")
	}
	return Pow(decimal.NewFromInt(1).Add(Pct(annualRatePct)), years)
}

// CompoundGrowth returns principal·(1 + annualRatePct/100)^years.
func CompoundGrowth(principal, annualRatePct, years decimal.Decimal) (decimal.Decimal, error) {
	factor, err := GrowthFactor(annualRatePct, years)
	if err != nil {
		return decimal.Zero, err
	}
	return principal.Mul(factor), nil
}

// FutureValueOfAnnuity returns the future value of an ordinary annuity of
// monthly payments. A zero rate degrades to payment·months.
func FutureValueOfAnnuity(payment, annualRatePct decimal.Decimal, months int) (decimal.Decimal, error) {
	if months < 0 {
		return decimal.Zero, invalid("FutureValueOfAnnuity", "months", "must not be negative")
	}
	if annualRatePct.LessThanOrEqual(minusHundred) {
		return decimal.Zero, invalid("FutureValueOfAnnuity", "annualRatePct", "must be greater than -100")
	}

	n := decimal.NewFromInt(int64(months))
	if annualRatePct.IsZero() {
		return payment.Mul(n), nil
	}

	r := MonthlyRate(annualRatePct)
	factor := powInt(decimal.NewFromInt(1).Add(r), int64(months))
	return payment.Mul(factor.Sub(decimal.NewFromInt(1))).Div(r), nil
}

// SolveAnnuityPayment returns the monthly payment whose ordinary-annuity
// future value after months equals target. A zero rate degrades to target/months.
func SolveAnnuityPayment(target, annualRatePct decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, invalid("SolveAnnuityPayment", "months", "must be positive")
	}
	if target.IsNegative() {
		return decimal.Zero, invalid("SolveAnnuityPayment", "target", "must not be negative")
	}
	if annualRatePct.LessThanOrEqual(minusHundred) {
		return decimal.Zero, invalid("SolveAnnuityPayment", "annualRatePct", "must be greater than -100")
	}

	n := decimal.NewFromInt(int64(months))
	if annualRatePct.IsZero() {
		return target.Div(n), nil
	}

	r := MonthlyRate(annualRatePct)
	growth := powInt(decimal.NewFromInt(1).Add(r), int64(months)).Sub(decimal.NewFromInt(1))
	if growth.IsZero() {
		return target.Div(n), nil
	}
	return target.Mul(r).Div(growth), nil
}

// AmortizingPayment returns the level monthly payment that retires principal
// over months: P·r/(1−(1+r)^−n), or P/n at 0%.
func AmortizingPayment(principal, annualRatePct decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, invalid("AmortizingPayment", "months", "must be positive")
	}
	if annualRatePct.LessThanOrEqual(minusHundred) {
		return decimal.Zero, invalid("AmortizingPayment", "annualRatePct", "must be greater than -100")
	}
	if annualRatePct.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))), nil
	}

	r := MonthlyRate(annualRatePct)
	power := powInt(decimal.NewFromInt(1).Add(r), int64(months))
	discount := power.Sub(decimal.NewFromInt(1)).Div(power)
	if discount.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))), nil
	}
	return principal.Mul(r).Div(discount), nil
}

// RealReturnPct returns the inflation-adjusted return in percent, rounded to
// one decimal place.
func RealReturnPct(nominalPct, inflationPct decimal.Decimal) (decimal.Decimal, error) {
	if inflationPct.LessThanOrEqual(minusHundred) {
		return decimal.Zero, invalid("RealReturnPct", "inflationPct", "must be greater than -100")
	}
	one := decimal.NewFromInt(1)
	ratio := one.Add(Pct(nominalPct)).Div(one.Add(Pct(inflationPct)))
	return ratio.Sub(one).Mul(hundred).Round(1), nil
}

// CAGR returns the compound annual growth rate in percent between begin and
// end over years, rounded to two decimal places.
func CAGR(begin, end, years decimal.Decimal) (decimal.Decimal, error) {
	if !begin.IsPositive() {
		return decimal.Zero, invalid("CAGR", "begin", "must be positive")
	}
	if !years.IsPositive() {
		return decimal.Zero, invalid("CAGR", "years", "must be positive")
	}
	if end.IsNegative() {
		return decimal.Zero, invalid("CAGR", "end", "must not be negative")
	}

	f := math.Pow(end.Div(begin).InexactFloat64(), 1/years.InexactFloat64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, invalid("CAGR", "end", "result is not finite")
	}
	return decimal.NewFromFloat(f).Sub(decimal.NewFromInt(1)).Mul(hundred).Round(2), nil
}
