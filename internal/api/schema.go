package api

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"fairness-audit/backend/internal/fairness"
)

const auditRequestSchemaURL = "audit-request.schema.json"

// compileAuditRequestSchema builds the request schema with the category enum
// taken from the known category list.
func compileAuditRequestSchema() (*jsonschema.Schema, error) {
	categories := make([]string, 0, len(fairness.Categories))
	for _, c := range fairness.Categories {
		categories = append(categories, string(c))
	}
	counts := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "integer", "minimum": 0},
	}
	doc := map[string]any{
		"$schema":  "https://json-schema.org/draft/2020-12/schema",
		"type":     "object",
		"required": []string{"results", "datasetInfo"},
		"properties": map[string]any{
			"modelVersion": map[string]any{"type": "string"},
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"biasDetected", "biasInstances"},
					"properties": map[string]any{
						"biasDetected": map[string]any{"type": "boolean"},
						"biasInstances": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []string{"category"},
								"properties": map[string]any{
									"category":   map[string]any{"type": "string", "enum": categories},
									"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
								},
							},
						},
					},
				},
			},
			"datasetInfo": map[string]any{
				"type":     "object",
				"required": []string{"size"},
				"properties": map[string]any{
					"size":         map[string]any{"type": "integer", "minimum": 0},
					"demographics": counts,
					"categories":   counts,
				},
			},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal request schema: %w", err)
	}
	schema, err := jsonschema.CompileString(auditRequestSchemaURL, string(raw))
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return schema, nil
}

// decodeAuditRequest validates the raw body against the schema before decoding it.
func decodeAuditRequest(schema *jsonschema.Schema, body []byte) (AuditRequest, error) {
	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return AuditRequest{}, fmt.Errorf("%w: malformed json: %v", fairness.ErrInvalidInput, err)
	}
	if err := schema.Validate(instance); err != nil {
		return AuditRequest{}, fmt.Errorf("%w: %v", fairness.ErrInvalidInput, err)
	}
	var req AuditRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return AuditRequest{}, fmt.Errorf("%w: %v", fairness.ErrInvalidInput, err)
	}
	return req, nil
}
