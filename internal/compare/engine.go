package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(calcEngine.Settings.Scenario),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base plan
	Templates        []string // Template names to apply, one alternative each
	Transforms       []string // Transform specs, each applied alone as one alternative
}

// NamedProfile pairs a profile with a display name
type NamedProfile struct {
	Name    string
	Profile *domain.FinancialProfile
}

// Compare runs the base profile and one alternative per template or transform spec
func (ce *CompareEngine) Compare(
	ctx context.Context,
	profile *domain.FinancialProfile,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	base, err := ce.CalcEngine.Prepare(profile)
	if err != nil {
		return nil, err
	}

	baseCalc, err := ce.CalcEngine.Calculate(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseCalc)

	alternatives := []ComparisonResult{}

	run := func(name, description string, transforms []transform.ProfileTransform) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}

		calc, err := ce.CalcEngine.Calculate(modified)
		if err != nil {
			return fmt.Errorf("failed to calculate plan %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(name, calc)
		altResult.Description = description
		altResult.Transforms = transform.Describe(transforms)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
		return nil
	}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		if err := run(template.Name, template.Description, template.Transforms); err != nil {
			return nil, err
		}
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := run(spec, t.Description(), []transform.ProfileTransform{t}); err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareProfiles compares explicit profiles (not using templates)
func (ce *CompareEngine) CompareProfiles(
	ctx context.Context,
	base NamedProfile,
	alternatives []NamedProfile,
) (*ComparisonSet, error) {
	baseCalc, err := ce.CalcEngine.Calculate(base.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, baseCalc)

	results := []ComparisonResult{}
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		calc, err := ce.CalcEngine.Calculate(alt.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", alt.Name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, calc)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
