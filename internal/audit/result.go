package audit

import (
	"time"

	"fairness-audit/backend/internal/fairness"
)

// Result is the outcome of one audit. It is not modified after creation.
type Result struct {
	ID                    string                                           `json:"id"`
	Metrics               fairness.FairnessMetrics                         `json:"metrics"`
	Recommendations       []string                                         `json:"recommendations"`
	RiskLevel             fairness.RiskLevel                               `json:"riskLevel"`
	RiskScore             int                                              `json:"riskScore"`
	BiasCount             int                                              `json:"biasCount"`
	AuditDate             time.Time                                        `json:"auditDate"`
	ModelVersion          string                                           `json:"modelVersion"`
	DatasetInfo           fairness.DatasetInfo                             `json:"datasetInfo"`
	BiasDistribution      map[fairness.Category]float64                    `json:"biasDistribution"`
	PerformanceByCategory map[fairness.Category]fairness.CategoryPerformance `json:"performanceByCategory"`
}

func (r Result) clone() Result {
	out := r
	out.Recommendations = append([]string(nil), r.Recommendations...)
	out.DatasetInfo.Demographics = cloneMap(r.DatasetInfo.Demographics)
	out.DatasetInfo.Categories = cloneMap(r.DatasetInfo.Categories)
	out.BiasDistribution = cloneMap(r.BiasDistribution)
	out.PerformanceByCategory = cloneMap(r.PerformanceByCategory)
	return out
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
