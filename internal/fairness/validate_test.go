package fairness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		results []AnalysisResult
		info    DatasetInfo
		field   string
	}{
		{"empty batch", nil, DatasetInfo{}, ""},
		{"valid", []AnalysisResult{tagged(true, CategoryGender), tagged(false)}, DatasetInfo{Size: 2}, ""},
		{"missing instances", []AnalysisResult{tagged(true), {BiasDetected: true}}, DatasetInfo{}, "biasInstances"},
		{"unknown category", []AnalysisResult{tagged(true, Category("height"))}, DatasetInfo{}, "biasInstances[0].category"},
		{"confidence range", []AnalysisResult{{BiasDetected: true, BiasInstances: []BiasInstance{{Category: CategoryAge, Confidence: 1.5}}}}, DatasetInfo{}, "biasInstances[0].confidence"},
		{"negative size", nil, DatasetInfo{Size: -1}, "datasetInfo.size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.results, tc.info)
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Validate([]AnalysisResult{tagged(false), {}}, DatasetInfo{})
	assert.EqualError(t, err, "result 1: invalid biasInstances: missing")
}
