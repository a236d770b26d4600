package ai

import (
	"context"

	"fairness-audit/backend/internal/fairness"
)

const (
	// InsufficientDataRecommendation is emitted when the audited batch is empty.
	InsufficientDataRecommendation = "Insufficient data: audit a non-empty batch of classified results before drawing fairness conclusions."
	// NoBreachRecommendation is emitted when no risk factor is tripped.
	NoBreachRecommendation = "No fairness thresholds breached; keep monitoring category-level rates on each new model version."
)

// FallbackRules maps every risk factor to its deterministic recommendation.
var FallbackRules = map[fairness.RiskFactor]string{
	fairness.FactorStatisticalParity: "Review category-level positive-rate gaps and rebalance training data for under- or over-flagged categories.",
	fairness.FactorEqualOpportunity:  "Compare true-positive rates across categories and add labelled examples for the categories with the lowest detection rate.",
	fairness.FactorEqualizedOdds:     "Calibrate per-category decision thresholds so both true- and false-positive rates converge across groups.",
	fairness.FactorDemographicParity: "Audit the demographic composition of the evaluation set and reweight samples so each group is represented proportionally.",
	fairness.FactorDisparateImpact:   "Investigate the category with the lowest positive rate; a disparate impact ratio under 0.8 fails the four-fifths rule.",
	fairness.FactorFalsePositiveRate: "Reduce false positives by reviewing items flagged as biased without supporting instances and tightening detection sensitivity.",
	fairness.FactorFalseNegativeRate: "Reduce false negatives by reviewing items with bias instances that were not flagged and lowering the detection threshold.",
	fairness.FactorAccuracy:          "Re-evaluate the detector on a held-out, human-labelled sample to locate systematic classification errors.",
	fairness.FactorPrecision:         "Improve precision by requiring at least one confident bias instance before an item is flagged.",
	fairness.FactorRecall:            "Improve recall by expanding the bias lexicon and retraining on missed examples.",
}

// RuleRecommender produces recommendations from the fallback rule table.
type RuleRecommender struct{}

// NewRuleRecommender returns the deterministic rule-table recommender.
func NewRuleRecommender() *RuleRecommender {
	return &RuleRecommender{}
}

// Enabled always reports true; the rule table has no external dependency.
func (r *RuleRecommender) Enabled() bool {
	return true
}

// Recommend returns one recommendation per tripped factor in evaluation order.
func (r *RuleRecommender) Recommend(_ context.Context, input RecommendationInput) ([]string, error) {
	factors := input.RiskFactors
	if factors == nil {
		factors = fairness.RiskFactors(input.Metrics)
	}
	var out []string
	if input.SampleSize == 0 {
		out = append(out, InsufficientDataRecommendation)
	}
	for _, f := range factors {
		if rec, ok := FallbackRules[f]; ok {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		out = append(out, NoBreachRecommendation)
	}
	return out, nil
}
