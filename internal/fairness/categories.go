package fairness

// ExtractCategories returns the union of instance categories across results in
// canonical order. Tags outside the known set are appended in first-seen order so
// that an unvalidated batch still yields a complete breakdown.
func ExtractCategories(results []AnalysisResult) []Category {
	seen := make(map[Category]struct{})
	var unknown []Category
	for _, r := range results {
		for _, inst := range r.BiasInstances {
			if _, ok := seen[inst.Category]; ok {
				continue
			}
			seen[inst.Category] = struct{}{}
			if !inst.Category.Valid() {
				unknown = append(unknown, inst.Category)
			}
		}
	}
	out := make([]Category, 0, len(seen))
	for _, c := range Categories {
		if _, ok := seen[c]; ok {
			out = append(out, c)
		}
	}
	return append(out, unknown...)
}

// resultsFor returns the results carrying at least one instance tagged c.
func resultsFor(results []AnalysisResult, c Category) []AnalysisResult {
	var out []AnalysisResult
	for _, r := range results {
		if r.HasCategory(c) {
			out = append(out, r)
		}
	}
	return out
}
