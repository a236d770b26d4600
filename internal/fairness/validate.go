package fairness

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks a batch that cannot be audited.
var ErrInvalidInput = errors.New("invalid audit input")

// ValidationError describes the first malformed result in a batch.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("result %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Validate checks every result and the dataset description before any metric is
// computed. Missing instance lists, unknown categories and confidences outside
// [0,1] are rejected.
func Validate(results []AnalysisResult, info DatasetInfo) error {
	if info.Size < 0 {
		return &ValidationError{Index: -1, Field: "datasetInfo.size", Reason: "must not be negative"}
	}
	for i, r := range results {
		if r.BiasInstances == nil {
			return &ValidationError{Index: i, Field: "biasInstances", Reason: "missing"}
		}
		for j, inst := range r.BiasInstances {
			field := fmt.Sprintf("biasInstances[%d]", j)
			if !inst.Category.Valid() {
				return &ValidationError{Index: i, Field: field + ".category", Reason: fmt.Sprintf("unknown category %q", inst.Category)}
			}
			if math.IsNaN(inst.Confidence) || inst.Confidence < 0 || inst.Confidence > 1 {
				return &ValidationError{Index: i, Field: field + ".confidence", Reason: "must be between 0 and 1"}
			}
		}
	}
	return nil
}
