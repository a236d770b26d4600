package fairness

const (
	fairnessThreshold    = 0.8
	errorRateThreshold   = 0.2
	performanceThreshold = 0.8
)

// RiskFactor names one threshold check over a metric.
type RiskFactor string

const (
	FactorStatisticalParity RiskFactor = "statisticalParity<0.8"
	FactorEqualOpportunity  RiskFactor = "equalOpportunity<0.8"
	FactorEqualizedOdds     RiskFactor = "equalizedOdds<0.8"
	FactorDemographicParity RiskFactor = "demographicParity<0.8"
	FactorDisparateImpact   RiskFactor = "disparateImpact<0.8"
	FactorFalsePositiveRate RiskFactor = "falsePositiveRate>0.2"
	FactorFalseNegativeRate RiskFactor = "falseNegativeRate>0.2"
	FactorAccuracy          RiskFactor = "accuracy<0.8"
	FactorPrecision         RiskFactor = "precision<0.8"
	FactorRecall            RiskFactor = "recall<0.8"
)

// AllRiskFactors lists the factors in evaluation order.
var AllRiskFactors = []RiskFactor{
	FactorStatisticalParity,
	FactorEqualOpportunity,
	FactorEqualizedOdds,
	FactorDemographicParity,
	FactorDisparateImpact,
	FactorFalsePositiveRate,
	FactorFalseNegativeRate,
	FactorAccuracy,
	FactorPrecision,
	FactorRecall,
}

// Tripped reports whether the factor's threshold is breached by m.
func (f RiskFactor) Tripped(m FairnessMetrics) bool {
	switch f {
	case FactorStatisticalParity:
		return m.StatisticalParity < fairnessThreshold
	case FactorEqualOpportunity:
		return m.EqualOpportunity < fairnessThreshold
	case FactorEqualizedOdds:
		return m.EqualizedOdds < fairnessThreshold
	case FactorDemographicParity:
		return m.DemographicParity < fairnessThreshold
	case FactorDisparateImpact:
		return m.DisparateImpact < fairnessThreshold
	case FactorFalsePositiveRate:
		return m.FalsePositiveRate > errorRateThreshold
	case FactorFalseNegativeRate:
		return m.FalseNegativeRate > errorRateThreshold
	case FactorAccuracy:
		return m.Accuracy < performanceThreshold
	case FactorPrecision:
		return m.Precision < performanceThreshold
	case FactorRecall:
		return m.Recall < performanceThreshold
	default:
		return false
	}
}

// RiskFactors returns the tripped factors in evaluation order.
func RiskFactors(m FairnessMetrics) []RiskFactor {
	var out []RiskFactor
	for _, f := range AllRiskFactors {
		if f.Tripped(m) {
			out = append(out, f)
		}
	}
	return out
}

// RiskScore is the number of tripped factors.
func RiskScore(m FairnessMetrics) int {
	return len(RiskFactors(m))
}

// ClassifyRisk maps metrics to a risk level: up to 3 tripped factors is low,
// 4 to 7 is medium, 8 or more is high.
func ClassifyRisk(m FairnessMetrics) RiskLevel {
	return LevelForScore(RiskScore(m))
}

// LevelForScore maps a risk score to its level.
func LevelForScore(score int) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 7:
		return RiskMedium
	default:
		return RiskHigh
	}
}
