package store

import (
	"encoding/json"
	"strings"
	"time"
)

// AuditEntry is the persisted form of one fairness audit.
type AuditEntry struct {
	ID                  string    `gorm:"primaryKey;size:36"`
	Timestamp           time.Time `gorm:"index"`
	ModelVersion        string    `gorm:"size:128;index"`
	RiskLevel           string    `gorm:"size:16;index"`
	RiskScore           float64
	BiasCount           int
	FairnessScore       float64
	Category            string `gorm:"size:32"`
	DetailsJSON         string `gorm:"type:text"`
	RecommendationsJSON string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SetRecommendations persists the recommendation list as JSON.
func (e *AuditEntry) SetRecommendations(recs []string) {
	if recs == nil {
		e.RecommendationsJSON = "[]"
		return
	}
	payload, _ := json.Marshal(recs)
	e.RecommendationsJSON = string(payload)
}

// Recommendations returns the decoded recommendation list.
func (e *AuditEntry) Recommendations() []string {
	if strings.TrimSpace(e.RecommendationsJSON) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(e.RecommendationsJSON), &out); err != nil {
		return nil
	}
	return out
}
