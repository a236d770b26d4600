package ai

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

type recommenderChain struct {
	primary  Recommender
	fallback Recommender
}

// WithFallback returns a recommender that first tries the primary implementation and
// falls back to the provided recommender when the primary is unavailable, fails, or
// produces no usable recommendations.
func WithFallback(primary, fallback Recommender) Recommender {
	if primary == nil {
		return fallback
	}
	if fallback == nil {
		return primary
	}
	return &recommenderChain{primary: primary, fallback: fallback}
}

func (c *recommenderChain) Enabled() bool {
	if c == nil {
		return false
	}
	if c.primary != nil && c.primary.Enabled() {
		return true
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return true
	}
	return false
}

func (c *recommenderChain) Recommend(ctx context.Context, input RecommendationInput) ([]string, error) {
	if c == nil {
		return nil, ErrDisabled
	}
	if c.primary != nil && c.primary.Enabled() {
		recs, err := c.primary.Recommend(ctx, input)
		if err == nil && len(recs) > 0 {
			return recs, nil
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"risk_level":    input.RiskLevel,
			"model_version": input.ModelVersion,
		}).Warn("primary recommender unavailable, using rule table")
	}
	if c.fallback != nil && c.fallback.Enabled() {
		// the primary may have exhausted the caller's deadline
		return c.fallback.Recommend(context.WithoutCancel(ctx), input)
	}
	return nil, ErrDisabled
}

func cleanRecommendations(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, rec := range in {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		if _, ok := seen[rec]; ok {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
	}
	return out
}
