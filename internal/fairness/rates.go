package fairness

import "gonum.org/v1/gonum/floats"

// GroupRates holds the per-category rates that feed the group-fairness ratios.
type GroupRates struct {
	PositiveRate      map[Category]float64
	TruePositiveRate  map[Category]float64
	FalsePositiveRate map[Category]float64
}

// CalculateGroupRates computes positive, true-positive and false-positive rates
// for every category over the subset of results tagged with it. An empty subset
// yields zero rates.
//
// The false-positive filter asks for detected results without the category inside
// a subset selected by having it, so it is zero for every category.
func CalculateGroupRates(results []AnalysisResult, categories []Category) GroupRates {
	rates := GroupRates{
		PositiveRate:      make(map[Category]float64, len(categories)),
		TruePositiveRate:  make(map[Category]float64, len(categories)),
		FalsePositiveRate: make(map[Category]float64, len(categories)),
	}
	for _, c := range categories {
		subset := resultsFor(results, c)
		var positives, truePositives, falsePositives int
		for _, r := range subset {
			if !r.BiasDetected {
				continue
			}
			positives++
			if r.HasCategory(c) {
				truePositives++
			} else {
				falsePositives++
			}
		}
		rates.PositiveRate[c] = ratio(positives, len(subset))
		rates.TruePositiveRate[c] = ratio(truePositives, len(subset))
		rates.FalsePositiveRate[c] = ratio(falsePositives, len(subset))
	}
	return rates
}

// spread returns max-min over the rate values and whether any value was present.
func spread(rates map[Category]float64) (float64, bool) {
	if len(rates) == 0 {
		return 0, false
	}
	lo, hi := bounds(rates)
	return hi - lo, true
}

func bounds(rates map[Category]float64) (float64, float64) {
	values := make([]float64, 0, len(rates))
	for _, v := range rates {
		values = append(values, v)
	}
	return floats.Min(values), floats.Max(values)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
