package output

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
	hundred  = decimal.NewFromInt(100)

	// unreachableYears matches the engine's default sentinel. Reports do not
	// carry settings, so anything at or above it renders as "never".
	unreachableYears = domain.DefaultSettings().UnreachableYears
)

// Money converts and formats base-currency amounts for display.
type Money struct {
	Symbol string
	Rate   decimal.Decimal
}

// NewMoney builds a Money from a report currency. A blank currency falls back
// to the default settings.
func NewMoney(c domain.Currency) Money {
	def := domain.DefaultSettings().Currency
	m := Money{Symbol: c.Symbol, Rate: c.ExchangeRate}
	if m.Symbol == "" && c.Code == "" {
		m.Symbol = def.Symbol
	}
	if !m.Rate.IsPositive() {
		m.Rate = def.ExchangeRate
	}
	return m
}

// Convert applies the exchange rate.
func (m Money) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(m.Rate)
}

// Format renders a whole-unit amount with thousands separators, e.g. ₹18,508.
func (m Money) Format(amount decimal.Decimal) string {
	v := m.Convert(amount).Round(0)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	return message.NewPrinter(language.English).Sprintf("%s%s%d", sign, m.Symbol, v.IntPart())
}

// Compact renders large amounts as 18.5K or 2.50M.
func (m Money) Compact(amount decimal.Decimal) string {
	v := m.Convert(amount)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}

	switch {
	case v.GreaterThanOrEqual(million):
		return sign + m.Symbol + v.Div(million).StringFixed(2) + "M"
	case v.GreaterThanOrEqual(thousand):
		return sign + m.Symbol + v.Div(thousand).StringFixed(1) + "K"
	default:
		return sign + m.Symbol + v.StringFixed(0)
	}
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

// FormatYears renders a time requirement, using "never" for the unreachable sentinel.
func FormatYears(years decimal.Decimal) string {
	if years.GreaterThanOrEqual(unreachableYears) {
		return "never"
	}
	return years.StringFixed(1) + " years"
}
