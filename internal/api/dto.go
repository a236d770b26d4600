package api

import "fairness-audit/backend/internal/fairness"

// AuditRequest is the body of POST /api/audits.
type AuditRequest struct {
	Results      []fairness.AnalysisResult `json:"results"`
	DatasetInfo  fairness.DatasetInfo      `json:"datasetInfo"`
	ModelVersion string                    `json:"modelVersion"`
}

// ErrorResponse is the payload of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
