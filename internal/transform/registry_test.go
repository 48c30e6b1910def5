package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()

	for _, want := range []string{
		"scale_capacity", "scale_contribution", "extend_horizon", "adjust_return",
		"adjust_inflation", "set_goal", "toggle_goal", "add_savings", "set_life_expectancy",
	} {
		assert.Contains(t, names, want)
	}
	assert.IsIncreasing(t, names, "names should be sorted")
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
	}{
		{"scale_capacity:factor=1.5", "scale_capacity"},
		{"set_capacity:amount=20000", "set_capacity"},
		{"scale_contribution: factor = 2", "scale_contribution"},
		{"add_savings:amount=-1000", "add_savings"},
		{"extend_horizon:years=3", "extend_horizon"},
		{"set_horizon:years=10", "set_horizon"},
		{"set_life_expectancy:age=90", "set_life_expectancy"},
		{"adjust_return:delta=2", "adjust_return"},
		{"adjust_inflation:delta=-0.5", "adjust_inflation"},
		{"set_goal:goal=vehicle,amount=800000", "set_goal"},
		{"toggle_goal:goal=travel,enabled=false", "toggle_goal"},
		{"toggle_goal:goal=travel", "toggle_goal"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tr.Name())
		})
	}
}

func TestTransformRegistry_ParsedValues(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("scale_capacity:factor=1.25")
	require.NoError(t, err)
	sc, ok := tr.(*ScaleCapacity)
	require.True(t, ok)
	assert.True(t, sc.Factor.Equal(decimal.NewFromFloat(1.25)))

	tr, err = registry.ParseTransformSpec("toggle_goal:goal=travel,enabled=false")
	require.NoError(t, err)
	tg, ok := tr.(*ToggleGoal)
	require.True(t, ok)
	assert.Equal(t, "travel", tg.ID)
	assert.False(t, tg.Enabled)
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()

	for _, spec := range []string{
		"extend_horizon",
		"unknown_transform:x=1",
		"extend_horizon:years",
		"extend_horizon:years=three",
		"extend_horizon:months=3",
		"scale_capacity:factor=abc",
		"set_goal:amount=5",
		"toggle_goal:goal=travel,enabled=maybe",
	} {
		_, err := registry.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestTransformRegistry_ParseTransformSpecs(t *testing.T) {
	registry := NewTransformRegistry()

	transforms, err := registry.ParseTransformSpecs([]string{"extend_horizon:years=2", "adjust_return:delta=1"})
	require.NoError(t, err)
	assert.Len(t, transforms, 2)

	result, err := ApplyTransforms(createTestProfile(), transforms)
	require.NoError(t, err)
	assert.Equal(t, 17, result.HorizonYears)
	assert.True(t, result.ExpectedAnnualReturnPct.Equal(decimal.NewFromInt(13)))

	_, err = registry.ParseTransformSpecs([]string{"extend_horizon:years=2", "bogus"})
	assert.Error(t, err)
}
