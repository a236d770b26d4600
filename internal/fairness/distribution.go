package fairness

// BiasDistribution returns, per category, the number of instances tagged with it
// divided by the number of results. Values are not normalised to sum to 1.
func BiasDistribution(results []AnalysisResult) map[Category]float64 {
	counts := make(map[Category]int)
	for _, r := range results {
		for _, inst := range r.BiasInstances {
			counts[inst.Category]++
		}
	}
	dist := make(map[Category]float64, len(counts))
	for c, n := range counts {
		dist[c] = ratio(n, len(results))
	}
	return dist
}

// PerformanceByCategory recomputes accuracy, precision and recall over the subset
// of results tagged with each category, using category-specific filters.
func PerformanceByCategory(results []AnalysisResult) map[Category]CategoryPerformance {
	categories := ExtractCategories(results)
	perf := make(map[Category]CategoryPerformance, len(categories))
	for _, c := range categories {
		subset := resultsFor(results, c)
		cm := Confusion{Total: len(subset)}
		for _, r := range subset {
			tagged := r.HasCategory(c)
			switch {
			case r.BiasDetected && tagged:
				cm.TruePositives++
			case r.BiasDetected:
				cm.FalsePositives++
			case tagged:
				cm.FalseNegatives++
			}
		}
		perf[c] = CategoryPerformance{
			Accuracy:  cm.Accuracy(),
			Precision: cm.Precision(),
			Recall:    cm.Recall(),
		}
	}
	return perf
}

// InstanceCount returns the total number of bias instances in the batch.
func InstanceCount(results []AnalysisResult) int {
	n := 0
	for _, r := range results {
		n += len(r.BiasInstances)
	}
	return n
}
