package compare

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ProfilePath:      "/path/to/profile.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:                "base",
			RequiredMonthlyContribution: decimal.NewFromInt(18508),
			MonthlyCapacity:             decimal.NewFromInt(5000),
			TimeRequiredYears:           decimal.NewFromFloat(26.8),
			HorizonYears:                15,
			GoalAchievable:              true,
			BalanceScore:                55,
			HealthScore:                 60,
			InvestmentGap:               decimal.NewFromInt(4500000),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:                "extend_3yr",
				Description:                 "Extend the goal horizon by 3 years",
				RequiredMonthlyContribution: decimal.NewFromInt(15000),
				MonthlyCapacity:             decimal.NewFromInt(5000),
				TimeRequiredYears:           decimal.NewFromFloat(26.8),
				HorizonYears:                18,
				GoalAchievable:              true,
				BalanceScore:                58,
				HealthScore:                 62,
				InvestmentGap:               decimal.NewFromInt(4500000),
				RequiredDiffFromBase:        decimal.NewFromInt(-3508),
				RequiredPctFromBase:         decimal.NewFromFloat(-18.95),
				HealthScoreDiff:             2,
			},
			{
				ScenarioName:                "conservative",
				RequiredMonthlyContribution: decimal.NewFromInt(18508),
				MonthlyCapacity:             decimal.NewFromInt(3750),
				TimeRequiredYears:           decimal.NewFromInt(999),
				HorizonYears:                15,
				GoalAchievable:              false,
				BalanceScore:                40,
				HealthScore:                 50,
				TimeDiffFromBase:            decimal.NewFromFloat(972.2),
				HealthScoreDiff:             -10,
			},
		},
		Recommendations: []string{
			"Lowest Contribution: extend_3yr needs 3508 less per month than the base plan",
			"Warning: conservative makes the goals unreachable",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{Symbol: "₹"}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"GOAL PLAN COMPARISON",
		"Base Plan: base",
		"Profile: /path/to/profile.yaml",
		"base (base)",
		"extend_3yr",
		"₹18.5K",
		"-₹3.5K (-19.0%)",
		"Health Score:     +2",
		"Health Score:     -10",
		"never",
		"RECOMMENDATIONS",
		"• Warning: conservative makes the goals unreachable",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.ProfilePath = ""

	result := formatter.Format(compSet)

	if contains(result, "COMPARISON TO BASE") {
		t.Error("Did not expect comparison section without alternatives")
	}
	if contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect recommendations section")
	}
	if contains(result, "Profile:") {
		t.Error("Did not expect profile line without a path")
	}
}

func TestTableFormatter_FormatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		input    decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(500), "500"},
		{decimal.NewFromInt(1500), "1.5K"},
		{decimal.NewFromInt(18508), "18.5K"},
		{decimal.NewFromInt(2500000), "2.50M"},
		{decimal.NewFromInt(-2500), "-2.5K"},
	}

	for _, tt := range tests {
		result := formatter.formatDecimal(tt.input)
		if result != tt.expected {
			t.Errorf("formatDecimal(%s) = %s, expected %s", tt.input.String(), result, tt.expected)
		}
	}
}

func TestTableFormatter_Truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got %s", got)
	}
	if got := formatter.truncate("a_very_long_template_name", 10); got != "a_very_..." {
		t.Errorf("Expected 'a_very_...', got %s", got)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{Symbol: "$"}

	result := formatter.FormatCompact(sampleComparisonSet())

	expected := "Base: base | extend_3yr: -$3.5K/mo | conservative: ="
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines (header + 3 rows), got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "Scenario,Type,Required Monthly") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "base,base,18508.00,5000.00,26.8,15,true,55,60") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !contains(lines[2], "extend_3yr,alternative,15000.00") || !contains(lines[2], "-3508.00,-18.95") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
	if !contains(lines[3], "999.0,15,false") {
		t.Errorf("Unexpected unreachable row: %s", lines[3])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded ComparisonSet
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded.BaseScenarioName != "base" {
			t.Errorf("Expected base scenario name 'base', got %s", decoded.BaseScenarioName)
		}
		if len(decoded.AlternativeResults) != 2 {
			t.Errorf("Expected 2 alternatives, got %d", len(decoded.AlternativeResults))
		}
		if !decoded.AlternativeResults[0].RequiredPctFromBase.Equal(decimal.NewFromFloat(-18.95)) {
			t.Errorf("Expected -18.95, got %s", decoded.AlternativeResults[0].RequiredPctFromBase)
		}
		if pretty != contains(result, "\n  ") {
			t.Errorf("Pretty=%v did not match indentation in output", pretty)
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
