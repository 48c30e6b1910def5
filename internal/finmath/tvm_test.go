package finmath

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalNear(t *testing.T, expected, actual decimal.Decimal, tolerance string, msg string) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	assert.True(t, diff.LessThanOrEqual(d(tolerance)), "%s: expected %s, got %s", msg, expected, actual)
}

func TestCompoundGrowth(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		years     string
		expected  string
	}{
		{"two years at 10%", "1000", "10", "2", "1210"},
		{"zero years", "1000", "10", "0", "1000"},
		{"zero rate", "1000", "0", "15", "1000"},
		{"half year", "10000", "21", "0.5", "11000"},
		{"negative rate", "1000", "-50", "1", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompoundGrowth(d(tt.principal), d(tt.rate), d(tt.years))
			require.NoError(t, err)
			assertDecimalNear(t, d(tt.expected), got, "0.000001", tt.name)
		})
	}
}

func TestFutureValueOfAnnuity(t *testing.T) {
	t.Run("zero rate is linear", func(t *testing.T) {
		got, err := FutureValueOfAnnuity(d("1000"), decimal.Zero, 12)
		require.NoError(t, err)
		assert.True(t, got.Equal(d("12000")), "FV(1000, 0, 12) should be 12000, got %s", got)
	})

	t.Run("one percent monthly", func(t *testing.T) {
		got, err := FutureValueOfAnnuity(d("100"), d("12"), 12)
		require.NoError(t, err)
		assertDecimalNear(t, d("1268.2503013197"), got, "0.0000001", "FV(100, 12%, 12)")
	})

	t.Run("zero months", func(t *testing.T) {
		got, err := FutureValueOfAnnuity(d("100"), d("12"), 0)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("negative months", func(t *testing.T) {
		_, err := FutureValueOfAnnuity(d("100"), d("12"), -1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestSolveAnnuityPayment(t *testing.T) {
	t.Run("inverse of future value", func(t *testing.T) {
		for _, rate := range []string{"0", "6", "12", "18"} {
			fv, err := FutureValueOfAnnuity(d("2500"), d(rate), 180)
			require.NoError(t, err)
			payment, err := SolveAnnuityPayment(fv, d(rate), 180)
			require.NoError(t, err)
			assertDecimalNear(t, d("2500"), payment, "0.000001", "rate "+rate)
		}
	})

	t.Run("zero rate divides evenly", func(t *testing.T) {
		got, err := SolveAnnuityPayment(d("12000"), decimal.Zero, 12)
		require.NoError(t, err)
		assert.True(t, got.Equal(d("1000")))
	})

	t.Run("zero target", func(t *testing.T) {
		got, err := SolveAnnuityPayment(decimal.Zero, d("12"), 12)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("guards", func(t *testing.T) {
		_, err := SolveAnnuityPayment(d("100"), d("12"), 0)
		assert.ErrorIs(t, err, ErrInvalidArgument, "months must be positive")

		_, err = SolveAnnuityPayment(d("-1"), d("12"), 12)
		assert.ErrorIs(t, err, ErrInvalidArgument, "negative target")

		_, err = SolveAnnuityPayment(d("100"), d("-100"), 12)
		assert.ErrorIs(t, err, ErrInvalidArgument, "rate at -100%")
	})
}

func TestAmortizingPayment(t *testing.T) {
	got, err := AmortizingPayment(d("100000"), d("12"), 12)
	require.NoError(t, err)
	assertDecimalNear(t, d("8884.88"), got.Round(2), "0", "12 month loan at 12%")

	got, err = AmortizingPayment(d("120000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, got.Equal(d("10000")))

	_, err = AmortizingPayment(d("1000"), d("5"), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRealReturnPct(t *testing.T) {
	got, err := RealReturnPct(d("12"), d("6"))
	require.NoError(t, err)
	assert.Equal(t, "5.7", got.String())

	got, err = RealReturnPct(d("6"), d("6"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = RealReturnPct(d("6"), d("-100"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCAGR(t *testing.T) {
	got, err := CAGR(d("100"), d("121"), d("2"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("10")), "expected 10%%, got %s", got)

	_, err = CAGR(decimal.Zero, d("121"), d("2"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CAGR(d("100"), d("121"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPow(t *testing.T) {
	got, err := Pow(d("1.01"), d("12"))
	require.NoError(t, err)
	assertDecimalNear(t, d("1.126825030131969720661201"), got, "0.0000000000001", "integer exponent")

	got, err = Pow(d("4"), d("0.5"))
	require.NoError(t, err)
	assertDecimalNear(t, d("2"), got, "0.0000000001", "square root")

	got, err = Pow(d("2"), d("-2"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("0.25")))

	_, err = Pow(decimal.Zero, d("-1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidArgumentError(t *testing.T) {
	_, err := CompoundGrowth(d("100"), d("5"), d("-1"))
	require.Error(t, err)

	var argErr *InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "GrowthFactor", argErr.Operation)
	assert.Equal(t, "years", argErr.Argument)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "must not be negative")
}
