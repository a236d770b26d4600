package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairness-audit/backend/internal/fairness"
)

func TestFallbackRulesCoverEveryFactor(t *testing.T) {
	for _, f := range fairness.AllRiskFactors {
		assert.NotEmpty(t, FallbackRules[f], string(f))
	}
}

func TestRuleRecommender(t *testing.T) {
	healthy := fairness.FairnessMetrics{
		StatisticalParity: 1, EqualOpportunity: 1, EqualizedOdds: 1, DemographicParity: 1, DisparateImpact: 1,
		Accuracy: 1, Precision: 1, Recall: 1, F1Score: 1,
	}

	tests := []struct {
		name     string
		input    RecommendationInput
		expected []string
	}{
		{
			name:     "empty batch",
			input:    NewRecommendationInput(fairness.FairnessMetrics{}, fairness.RiskHigh, 0, "v1"),
			expected: append([]string{InsufficientDataRecommendation}, tableFor(fairness.RiskFactors(fairness.FairnessMetrics{}))...),
		},
		{
			name:     "healthy",
			input:    NewRecommendationInput(healthy, fairness.RiskLow, 10, "v1"),
			expected: []string{NoBreachRecommendation},
		},
		{
			name:     "factors derived when absent",
			input:    RecommendationInput{Metrics: fairness.FairnessMetrics{StatisticalParity: 1, EqualOpportunity: 1, EqualizedOdds: 1, DemographicParity: 1, DisparateImpact: 1, Accuracy: 1, Precision: 1, Recall: 0.1}, SampleSize: 3},
			expected: []string{FallbackRules[fairness.FactorRecall]},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := NewRuleRecommender().Recommend(context.Background(), tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, recs)
		})
	}
}
