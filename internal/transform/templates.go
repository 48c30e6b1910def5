package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common planning
// alternatives. Factors come from the scenario settings so templates and the
// scenario generator agree.
func CreateBuiltInTemplates(s domain.ScenarioSettings) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "aggressive",
		Description: fmt.Sprintf("Invest %sx the current monthly capacity", s.AggressiveCapacityFactor.String()),
		Transforms: []ProfileTransform{
			&ScaleCapacity{Factor: s.AggressiveCapacityFactor},
		},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: fmt.Sprintf("Invest only %sx the current monthly capacity", s.ConservativeCapacityFactor.String()),
		Transforms: []ProfileTransform{
			&ScaleCapacity{Factor: s.ConservativeCapacityFactor},
		},
	})

	registry.Register(Template{
		Name:        "capacity_plus_20",
		Description: "Increase monthly investing by 20%",
		Transforms: []ProfileTransform{
			&ScaleCapacity{Factor: s.FallbackImprovementFactor},
		},
	})

	for _, years := range []int{s.HorizonExtensionYears, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("extend_%dyr", years),
			Description: fmt.Sprintf("Extend the goal horizon by %d years", years),
			Transforms: []ProfileTransform{
				&ExtendHorizon{Years: years},
			},
		})
	}

	registry.Register(Template{
		Name:        "optimized_portfolio",
		Description: fmt.Sprintf("Rebalance for %s%% more expected return", s.ReturnUpliftPct.String()),
		Transforms: []ProfileTransform{
			&AdjustReturn{DeltaPct: s.ReturnUpliftPct},
		},
	})

	registry.Register(Template{
		Name:        "boost_contribution",
		Description: fmt.Sprintf("Raise the existing monthly contribution %sx", s.ExistingContributionFactor.String()),
		Transforms: []ProfileTransform{
			&ScaleContribution{Factor: s.ExistingContributionFactor},
		},
	})

	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Stress test: inflation 2% higher than expected",
		Transforms: []ProfileTransform{
			&AdjustInflation{DeltaPct: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "low_return",
		Description: "Stress test: returns 2% lower than expected",
		Transforms: []ProfileTransform{
			&AdjustReturn{DeltaPct: decimal.NewFromInt(-2)},
		},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "aggressive_extend",
		Description: fmt.Sprintf("Aggressive investing + %d more years", s.HorizonExtensionYears),
		Transforms: []ProfileTransform{
			&ScaleCapacity{Factor: s.AggressiveCapacityFactor},
			&ExtendHorizon{Years: s.HorizonExtensionYears},
		},
	})

	registry.Register(Template{
		Name:        "stress",
		Description: "Stress test: lower returns and higher inflation together",
		Transforms: []ProfileTransform{
			&AdjustReturn{DeltaPct: decimal.NewFromInt(-2)},
			&AdjustInflation{DeltaPct: decimal.NewFromInt(2)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base *domain.FinancialProfile, template Template) (*domain.FinancialProfile, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Investment Capacity":    {},
		"Timeline":               {},
		"Assumptions":            {},
		"Combination Strategies": {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case len(template.Transforms) > 1:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		case strings.HasPrefix(name, "extend_"):
			categories["Timeline"] = append(categories["Timeline"], template)
		case strings.HasPrefix(name, "high_"), strings.HasPrefix(name, "low_"), name == "optimized_portfolio":
			categories["Assumptions"] = append(categories["Assumptions"], template)
		default:
			categories["Investment Capacity"] = append(categories["Investment Capacity"], template)
		}
	}

	for _, category := range []string{"Investment Capacity", "Timeline", "Assumptions", "Combination Strategies"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  goalplan compare profile.yaml --with aggressive,extend_3yr\n")
	sb.WriteString("  goalplan compare profile.yaml --with conservative,stress\n")

	return sb.String()
}
