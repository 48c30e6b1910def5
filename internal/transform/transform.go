package transform

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ProfileTransform defines the interface for all profile transformations.
// Transforms are composable operations that modify a financial profile in
// predictable ways, enabling alternative plans, what-if runs and template
// comparison.
type ProfileTransform interface {
	// Apply transforms a base profile and returns a new modified profile.
	// The base profile is never mutated.
	Apply(base *domain.FinancialProfile) (*domain.FinancialProfile, error)

	// Name returns a short identifier for this transform (e.g., "extend_horizon").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base *domain.FinancialProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.FinancialProfile, transforms []ProfileTransform) (*domain.FinancialProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain.
func Describe(transforms []ProfileTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			out = append(out, t.Description())
		}
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func requireBase(name string, base *domain.FinancialProfile) error {
	if base == nil {
		return NewTransformError(name, "validate", "base profile cannot be nil", nil)
	}
	return nil
}
