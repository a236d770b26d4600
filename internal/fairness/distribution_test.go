package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiasDistributionNormalisesByResultCount(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender, CategoryGender, CategoryAge),
		tagged(true, CategoryGender),
		tagged(false),
		tagged(false),
	}

	dist := BiasDistribution(results)

	assert.Equal(t, map[Category]float64{
		CategoryGender: 0.75,
		CategoryAge:    0.25,
	}, dist)
	assert.Equal(t, 4, InstanceCount(results))
}

func TestBiasDistributionMaySumAboveOne(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender, CategoryRacial, CategoryAge),
	}
	total := 0.0
	for _, v := range BiasDistribution(results) {
		total += v
	}
	assert.Equal(t, 3.0, total)
}

func TestBiasDistributionEmpty(t *testing.T) {
	assert.Empty(t, BiasDistribution(nil))
	assert.Empty(t, PerformanceByCategory(nil))
}

func TestPerformanceByCategory(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryGender),
		tagged(true, CategoryGender),
		tagged(false, CategoryAge),
		tagged(false, CategoryAge),
		tagged(true, CategoryCultural),
		tagged(false, CategoryCultural),
	}

	perf := PerformanceByCategory(results)

	assert.Equal(t, CategoryPerformance{Accuracy: 2, Precision: 1, Recall: 1}, perf[CategoryGender])
	assert.Equal(t, CategoryPerformance{Accuracy: 0, Precision: 0, Recall: 0}, perf[CategoryAge])
	assert.Equal(t, CategoryPerformance{Accuracy: 1, Precision: 1, Recall: 0.5}, perf[CategoryCultural])
}

func TestExtractCategoriesCanonicalOrder(t *testing.T) {
	results := []AnalysisResult{
		tagged(true, CategoryOther, CategoryAge),
		tagged(false, CategoryGender, CategoryAge),
		tagged(false),
	}

	assert.Equal(t, []Category{CategoryGender, CategoryAge, CategoryOther}, ExtractCategories(results))
	assert.Empty(t, ExtractCategories(nil))
}
