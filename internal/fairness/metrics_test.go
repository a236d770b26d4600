package fairness

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(detected bool, categories ...Category) AnalysisResult {
	instances := make([]BiasInstance, 0, len(categories))
	for _, c := range categories {
		instances = append(instances, BiasInstance{Category: c, Confidence: 0.9})
	}
	return AnalysisResult{BiasDetected: detected, BiasInstances: instances}
}

func TestCalculateMetricsEmptyBatch(t *testing.T) {
	m := CalculateMetrics(nil)

	assert.Equal(t, FairnessMetrics{}, m)
	assert.Equal(t, RiskHigh, ClassifyRisk(m))
	assert.Equal(t, 8, RiskScore(m))
}

func TestCalculateMetricsGenderAgeGap(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender),
		tagged(true, CategoryGender),
		tagged(false, CategoryAge),
		tagged(false, CategoryAge),
	}

	rates := CalculateGroupRates(results, ExtractCategories(results))
	assert.Equal(t, 1.0, rates.PositiveRate[CategoryGender])
	assert.Equal(t, 0.0, rates.PositiveRate[CategoryAge])

	m := CalculateMetrics(results)
	assert.Equal(t, 0.0, m.StatisticalParity)
	assert.Equal(t, 0.0, m.DemographicParity)
	assert.Equal(t, 0.0, m.DisparateImpact)
	assert.Equal(t, 0.0, m.EqualOpportunity)
	assert.Equal(t, 0.5, m.EqualizedOdds)
	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 1.0, m.Precision)
	assert.Equal(t, 0.5, m.Recall)
	assert.InDelta(t, 2.0/3.0, m.F1Score, 1e-9)
	assert.Equal(t, 0.0, m.FalsePositiveRate)
	assert.Equal(t, 0.5, m.FalseNegativeRate)
	assert.Equal(t, RiskMedium, ClassifyRisk(m))
}

func TestCalculateMetricsUncategorisedBatch(t *testing.T) {
	results := make([]AnalysisResult, 10)
	for i := range results {
		results[i] = tagged(false)
	}

	m := CalculateMetrics(results)

	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	// no instances means no categories, so every group ratio takes the guarded zero
	assert.Equal(t, 0.0, m.StatisticalParity)
	assert.Equal(t, 0.0, m.DisparateImpact)
	assert.Equal(t, RiskMedium, ClassifyRisk(m))
}

func TestCalculateMetricsSingleCategory(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryRacial),
		tagged(true, CategoryRacial),
		tagged(false),
	}

	m := CalculateMetrics(results)

	assert.Equal(t, 1.0, m.StatisticalParity)
	assert.Equal(t, 1.0, m.DemographicParity)
	assert.Equal(t, 1.0, m.EqualOpportunity)
	assert.Equal(t, 1.0, m.EqualizedOdds)
	assert.Equal(t, 1.0, m.DisparateImpact)
}

func TestCalculateMetricsDegenerateResults(t *testing.T) {
	results := []AnalysisResult{
		tagged(true),
		tagged(false, CategoryPolitical),
	}

	cm := CountConfusion(results)
	assert.Equal(t, Confusion{Total: 2, TruePositives: 1, FalsePositives: 1, FalseNegatives: 1}, cm)

	m := CalculateMetrics(results)
	assert.Equal(t, 0.5, m.Accuracy)
	assert.Equal(t, 0.5, m.Precision)
	assert.Equal(t, 0.5, m.Recall)
	assert.Equal(t, 0.5, m.F1Score)
	assert.Equal(t, 0.5, m.FalsePositiveRate)
	assert.Equal(t, 0.5, m.FalseNegativeRate)
	// the only categorised result is undetected, so the positive rate vector is all zero
	assert.Equal(t, 1.0, m.StatisticalParity)
	assert.Equal(t, 0.0, m.DisparateImpact)
}

func TestCalculateMetricsAccuracyAboveOneIsFlagged(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender),
		tagged(true, CategoryAge),
	}

	m := CalculateMetrics(results)

	assert.Equal(t, 2.0, m.Accuracy)
	assert.Equal(t, []string{"accuracy"}, m.OutOfRange())
}

func TestPrecisionNeverIncreasesWithFalsePositives(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender),
		tagged(true, CategoryReligious),
		tagged(false, CategoryGender),
	}
	prev := CalculateMetrics(results).Precision
	for i := 0; i < 10; i++ {
		results = append(results, tagged(true))
		next := CalculateMetrics(results).Precision
		require.LessOrEqual(t, next, prev)
		prev = next
	}
}

func TestMetricsStayInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(30)
		results := make([]AnalysisResult, n)
		for i := range results {
			var cats []Category
			for k := rng.Intn(3); k > 0; k-- {
				cats = append(cats, Categories[rng.Intn(len(Categories))])
			}
			results[i] = tagged(rng.Intn(2) == 0, cats...)
		}

		m := CalculateMetrics(results)
		for name, v := range map[string]float64{
			"statisticalParity": m.StatisticalParity,
			"equalOpportunity":  m.EqualOpportunity,
			"equalizedOdds":     m.EqualizedOdds,
			"demographicParity": m.DemographicParity,
			"disparateImpact":   m.DisparateImpact,
			"falsePositiveRate": m.FalsePositiveRate,
			"falseNegativeRate": m.FalseNegativeRate,
			"precision":         m.Precision,
			"recall":            m.Recall,
			"f1Score":           m.F1Score,
		} {
			require.GreaterOrEqual(t, v, 0.0, name)
			require.LessOrEqual(t, v, 1.0, name)
		}
		require.GreaterOrEqual(t, m.Accuracy, 0.0)
	}
}

func TestMetricsAreDeterministic(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender, CategoryAge),
		tagged(false, CategoryEconomic),
		tagged(true),
	}
	assert.Equal(t, CalculateMetrics(results), CalculateMetrics(results))
	assert.Equal(t, PerformanceByCategory(results), PerformanceByCategory(results))
}
