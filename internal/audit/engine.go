package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fairness-audit/backend/internal/ai"
	"fairness-audit/backend/internal/fairness"
)

const defaultRecommendTimeout = 15 * time.Second

// Recorder persists audit results outside the process.
type Recorder interface {
	SaveAudit(ctx context.Context, result Result) error
}

// Publisher is notified of every completed audit.
type Publisher interface {
	Publish(result Result)
}

// Options configures optional engine collaborators.
type Options struct {
	RecommendTimeout time.Duration
	Clock            func() time.Time
	Recorder         Recorder
	Publisher        Publisher
}

// Engine runs fairness audits and records them in its history.
type Engine struct {
	history          *History
	recommender      ai.Recommender
	recommendTimeout time.Duration
	now              func() time.Time
	recorder         Recorder
	publisher        Publisher
}

// NewEngine wires an engine. The rule-table recommender always backs the supplied
// recommender, so recommendation failures never fail an audit.
func NewEngine(history *History, recommender ai.Recommender, opts Options) *Engine {
	if history == nil {
		history = NewHistory()
	}
	timeout := opts.RecommendTimeout
	if timeout <= 0 {
		timeout = defaultRecommendTimeout
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{
		history:          history,
		recommender:      ai.WithFallback(recommender, ai.NewRuleRecommender()),
		recommendTimeout: timeout,
		now:              clock,
		recorder:         opts.Recorder,
		publisher:        opts.Publisher,
	}
}

// History exposes the engine's audit history.
func (e *Engine) History() *History {
	return e.history
}

// PerformAudit validates the batch, computes metrics, risk and recommendations,
// and appends the result to the history. Only invalid input is reported as an error.
func (e *Engine) PerformAudit(ctx context.Context, results []fairness.AnalysisResult, info fairness.DatasetInfo, modelVersion string) (Result, error) {
	if err := fairness.Validate(results, info); err != nil {
		logrus.WithError(err).WithField("model_version", modelVersion).Warn("audit input rejected")
		return Result{}, err
	}
	start := time.Now()

	metrics := fairness.CalculateMetrics(results)
	if flagged := metrics.OutOfRange(); len(flagged) > 0 {
		logrus.WithFields(logrus.Fields{
			"model_version": modelVersion,
			"metrics":       flagged,
		}).Warn("base metrics outside [0,1]")
	}
	distribution := fairness.BiasDistribution(results)
	performance := fairness.PerformanceByCategory(results)
	score := fairness.RiskScore(metrics)
	level := fairness.LevelForScore(score)

	recommendations := e.recommend(ctx, ai.NewRecommendationInput(metrics, level, len(results), modelVersion))

	result := Result{
		ID:                    uuid.NewString(),
		Metrics:               metrics,
		Recommendations:       recommendations,
		RiskLevel:             level,
		RiskScore:             score,
		BiasCount:             fairness.InstanceCount(results),
		AuditDate:             e.now(),
		ModelVersion:          modelVersion,
		DatasetInfo:           info,
		BiasDistribution:      distribution,
		PerformanceByCategory: performance,
	}
	e.history.Append(result)

	if e.recorder != nil {
		if err := e.recorder.SaveAudit(context.WithoutCancel(ctx), result); err != nil {
			logrus.WithError(err).WithField("audit_id", result.ID).Warn("persist audit")
		}
	}
	if e.publisher != nil {
		e.publisher.Publish(result)
	}

	logrus.WithFields(logrus.Fields{
		"audit_id":      result.ID,
		"model_version": modelVersion,
		"results":       len(results),
		"risk_level":    level,
		"risk_score":    score,
		"duration":      time.Since(start),
	}).Info("fairness audit completed")

	return result.clone(), nil
}

func (e *Engine) recommend(ctx context.Context, input ai.RecommendationInput) []string {
	ctx, cancel := context.WithTimeout(ctx, e.recommendTimeout)
	defer cancel()

	recs, err := e.recommender.Recommend(ctx, input)
	if err == nil && len(recs) > 0 {
		return recs
	}
	logrus.WithError(err).Warn("recommender returned nothing, using rule table")
	recs, _ = ai.NewRuleRecommender().Recommend(context.Background(), input)
	return recs
}
