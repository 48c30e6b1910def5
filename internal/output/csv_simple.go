package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// CSVFormatter writes one row for the current plan followed by one row per
// alternative plan. Amounts are in the report currency.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	money := NewMoney(report.Currency)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Kind", "MonthlyCapacity", "RequiredMonthly", "TimeRequiredYears", "HorizonYears", "ExpectedReturnPct", "BalanceScore", "HealthScore"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	var returnPct string
	if report.Profile != nil {
		returnPct = report.Profile.ExpectedAnnualReturnPct.StringFixed(2)
	}
	current := []string{
		"Current plan",
		"base",
		money.Convert(r.MonthlyCapacity).StringFixed(2),
		money.Convert(r.RequiredMonthlyContribution).StringFixed(2),
		r.TimeRequiredYears.StringFixed(1),
		strconv.Itoa(r.HorizonYears),
		returnPct,
		strconv.Itoa(r.BalanceScore),
		strconv.Itoa(r.FinancialHealthScore),
	}
	if err := w.Write(current); err != nil {
		return nil, err
	}

	for _, s := range report.Scenarios {
		row := []string{
			s.Title,
			s.Kind,
			money.Convert(s.MonthlyCapacity).StringFixed(2),
			money.Convert(s.RequiredMonthlyContribution).StringFixed(2),
			s.TimeRequiredYears.StringFixed(1),
			strconv.Itoa(s.HorizonYears),
			s.ExpectedReturnPct.StringFixed(2),
			"",
			"",
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
