package fairness

// Confusion holds the counts behind the base classification metrics.
//
// The counts mix two signals: a detected item is a true positive whether or not
// instances were attached, a detected item with no instances is also a false
// positive, and an undetected item with instances is a false negative.
type Confusion struct {
	Total          int
	TruePositives  int
	FalsePositives int
	FalseNegatives int
}

// CountConfusion tallies the confusion counts over the whole batch.
func CountConfusion(results []AnalysisResult) Confusion {
	cm := Confusion{Total: len(results)}
	for _, r := range results {
		switch {
		case r.BiasDetected && len(r.BiasInstances) == 0:
			cm.TruePositives++
			cm.FalsePositives++
		case r.BiasDetected:
			cm.TruePositives++
		case len(r.BiasInstances) > 0:
			cm.FalseNegatives++
		}
	}
	return cm
}

// Accuracy is (TP + (total - FP - FN)) / total.
func (cm Confusion) Accuracy() float64 {
	return ratio(cm.TruePositives+cm.Total-cm.FalsePositives-cm.FalseNegatives, cm.Total)
}

// Precision is TP / (TP + FP).
func (cm Confusion) Precision() float64 {
	return ratio(cm.TruePositives, cm.TruePositives+cm.FalsePositives)
}

// Recall is TP / (TP + FN).
func (cm Confusion) Recall() float64 {
	return ratio(cm.TruePositives, cm.TruePositives+cm.FalseNegatives)
}

// CalculateMetrics computes the full metric record for a batch. Every zero
// denominator resolves to 0, and an empty category set leaves the group ratios at 0.
func CalculateMetrics(results []AnalysisResult) FairnessMetrics {
	cm := CountConfusion(results)
	precision := cm.Precision()
	recall := cm.Recall()

	m := FairnessMetrics{
		FalsePositiveRate: ratio(cm.FalsePositives, cm.Total),
		FalseNegativeRate: ratio(cm.FalseNegatives, cm.Total),
		Accuracy:          cm.Accuracy(),
		Precision:         precision,
		Recall:            recall,
		F1Score:           f1(precision, recall),
	}

	rates := CalculateGroupRates(results, ExtractCategories(results))
	applyGroupRatios(&m, rates)
	return m
}

func applyGroupRatios(m *FairnessMetrics, rates GroupRates) {
	positiveSpread, ok := spread(rates.PositiveRate)
	if !ok {
		return
	}
	tprSpread, _ := spread(rates.TruePositiveRate)
	fprSpread, _ := spread(rates.FalsePositiveRate)

	m.StatisticalParity = 1 - positiveSpread
	m.DemographicParity = 1 - positiveSpread
	m.EqualOpportunity = 1 - tprSpread
	m.EqualizedOdds = 1 - (tprSpread+fprSpread)/2

	lo, hi := bounds(rates.PositiveRate)
	if hi > 0 {
		m.DisparateImpact = lo / hi
	}
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}
