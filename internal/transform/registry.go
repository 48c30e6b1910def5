package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale_capacity", createScaleCapacity)
	registry.Register("set_capacity", createSetCapacity)
	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("add_savings", createAddSavings)
	registry.Register("extend_horizon", createExtendHorizon)
	registry.Register("set_horizon", createSetHorizon)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("set_goal", createSetGoal)
	registry.Register("toggle_goal", createToggleGoal)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "extend_horizon:years=3"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs, stopping at the first failure.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ProfileTransform, error) {
	transforms := make([]ProfileTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createScaleCapacity(params map[string]string) (ProfileTransform, error) {
	factor, err := decimalParam("scale_capacity", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleCapacity{Factor: factor}, nil
}

func createSetCapacity(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("set_capacity", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetCapacity{Amount: amount}, nil
}

func createScaleContribution(params map[string]string) (ProfileTransform, error) {
	factor, err := decimalParam("scale_contribution", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createAddSavings(params map[string]string) (ProfileTransform, error) {
	amount, err := decimalParam("add_savings", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddSavings{Amount: amount}, nil
}

func createExtendHorizon(params map[string]string) (ProfileTransform, error) {
	years, err := intParam("extend_horizon", params, "years")
	if err != nil {
		return nil, err
	}
	return &ExtendHorizon{Years: years}, nil
}

func createSetHorizon(params map[string]string) (ProfileTransform, error) {
	years, err := intParam("set_horizon", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetHorizon{Years: years}, nil
}

func createSetLifeExpectancy(params map[string]string) (ProfileTransform, error) {
	age, err := intParam("set_life_expectancy", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetLifeExpectancy{Age: age}, nil
}

func createAdjustReturn(params map[string]string) (ProfileTransform, error) {
	delta, err := decimalParam("adjust_return", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{DeltaPct: delta}, nil
}

func createAdjustInflation(params map[string]string) (ProfileTransform, error) {
	delta, err := decimalParam("adjust_inflation", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{DeltaPct: delta}, nil
}

func createSetGoal(params map[string]string) (ProfileTransform, error) {
	id, ok := params["goal"]
	if !ok {
		return nil, fmt.Errorf("set_goal requires 'goal' parameter")
	}
	amount, err := decimalParam("set_goal", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetGoal{ID: id, Amount: amount}, nil
}

func createToggleGoal(params map[string]string) (ProfileTransform, error) {
	id, ok := params["goal"]
	if !ok {
		return nil, fmt.Errorf("toggle_goal requires 'goal' parameter")
	}

	enabled := true
	if raw, ok := params["enabled"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = v
	}

	return &ToggleGoal{ID: id, Enabled: enabled}, nil
}
