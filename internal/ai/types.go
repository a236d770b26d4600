package ai

import "fairness-audit/backend/internal/fairness"

// RecommendationInput carries the audit signals handed to a recommender.
type RecommendationInput struct {
	Metrics      fairness.FairnessMetrics
	RiskLevel    fairness.RiskLevel
	RiskFactors  []fairness.RiskFactor
	SampleSize   int
	ModelVersion string
}

// NewRecommendationInput derives the tripped factors from the metrics.
func NewRecommendationInput(metrics fairness.FairnessMetrics, level fairness.RiskLevel, sampleSize int, modelVersion string) RecommendationInput {
	return RecommendationInput{
		Metrics:      metrics,
		RiskLevel:    level,
		RiskFactors:  fairness.RiskFactors(metrics),
		SampleSize:   sampleSize,
		ModelVersion: modelVersion,
	}
}
