package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		completion float64
		want       EvaluationResult
	}{
		{150, ResultExcellent},
		{100, ResultExcellent},
		{99.999, ResultGood},
		{80, ResultGood},
		{79.999, ResultNeedsImprovement},
		{50, ResultNeedsImprovement},
		{49.999, ResultNotMet},
		{0, ResultNotMet},
		{-20, ResultNotMet},
		{math.Inf(1), ResultExcellent},
		{math.Inf(-1), ResultNotMet},
		{math.NaN(), ResultNotMet},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.completion), "completion %v", tt.completion)
	}
}

func TestClassify_AlwaysValidAndStable(t *testing.T) {
	for c := -50.0; c <= 200; c += 0.5 {
		first := Classify(c)
		assert.True(t, first.IsValid(), "completion %v", c)
		assert.Equal(t, first, Classify(c))
	}
}

func TestClampCompletion(t *testing.T) {
	assert.Equal(t, 0.0, ClampCompletion(-5))
	assert.Equal(t, 0.0, ClampCompletion(0))
	assert.Equal(t, 250.0, ClampCompletion(250))
}

func TestEvaluationResult_IsAchieved(t *testing.T) {
	assert.True(t, ResultExcellent.IsAchieved())
	assert.True(t, ResultGood.IsAchieved())
	assert.False(t, ResultNeedsImprovement.IsAchieved())
	assert.False(t, ResultNotMet.IsAchieved())
}

func TestEvaluationResults_Order(t *testing.T) {
	assert.Equal(t, []EvaluationResult{
		ResultExcellent, ResultGood, ResultNeedsImprovement, ResultNotMet,
	}, EvaluationResults())
}
