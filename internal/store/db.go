package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"fairness-audit/backend/internal/audit"
	"fairness-audit/backend/internal/fairness"
)

// ErrNotFound is returned when an audit id has no stored entry.
var ErrNotFound = errors.New("audit not found")

// Database wraps the GORM DB handle and exposes repository helpers.
type Database struct {
	gorm *gorm.DB
	mu   sync.Mutex
}

// Open initializes the SQLite-backed database at the provided path.
func Open(path string, silent bool) (*Database, error) {
	cfg := &gorm.Config{}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&AuditEntry{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		logrus.WithError(err).Warn("enable WAL mode")
	}
	if err := db.Exec("PRAGMA synchronous=NORMAL").Error; err != nil {
		logrus.WithError(err).Warn("set synchronous pragma")
	}
	return &Database{gorm: db}, nil
}

// GORM exposes the raw gorm.DB handle.
func (d *Database) GORM() *gorm.DB {
	return d.gorm
}

// Close closes the underlying database connection.
func (d *Database) Close() error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveAudit writes the audit result as an entry. Saving the same id twice keeps
// the first entry, since results never change after creation.
func (d *Database) SaveAudit(ctx context.Context, result audit.Result) error {
	entry, err := EntryFromResult(result)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// EntryFromResult flattens an audit result into its stored form.
func EntryFromResult(result audit.Result) (AuditEntry, error) {
	details, err := json.Marshal(result)
	if err != nil {
		return AuditEntry{}, fmt.Errorf("marshal audit details: %w", err)
	}
	entry := AuditEntry{
		ID:            result.ID,
		Timestamp:     result.AuditDate,
		ModelVersion:  result.ModelVersion,
		RiskLevel:     string(result.RiskLevel),
		RiskScore:     float64(result.RiskScore),
		BiasCount:     result.BiasCount,
		FairnessScore: result.Metrics.FairnessScore(),
		Category:      string(dominantCategory(result.BiasDistribution)),
		DetailsJSON:   string(details),
	}
	entry.SetRecommendations(result.Recommendations)
	return entry, nil
}

// Result decodes the full audit result stored with the entry.
func (e *AuditEntry) Result() (audit.Result, error) {
	var result audit.Result
	if err := json.Unmarshal([]byte(e.DetailsJSON), &result); err != nil {
		return audit.Result{}, fmt.Errorf("decode audit %s: %w", e.ID, err)
	}
	return result, nil
}

// ListAudits returns stored entries oldest first. A positive limit keeps only the
// most recent entries.
func (d *Database) ListAudits(ctx context.Context, limit int) ([]AuditEntry, error) {
	var entries []AuditEntry
	q := d.gorm.WithContext(ctx).Model(&AuditEntry{}).Order("timestamp DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// GetAudit loads a single entry by id.
func (d *Database) GetAudit(ctx context.Context, id string) (AuditEntry, error) {
	var entry AuditEntry
	err := d.gorm.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AuditEntry{}, ErrNotFound
	}
	if err != nil {
		return AuditEntry{}, err
	}
	return entry, nil
}

// CountAudits returns the number of stored entries.
func (d *Database) CountAudits(ctx context.Context) (int64, error) {
	var count int64
	if err := d.gorm.WithContext(ctx).Model(&AuditEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LoadResults decodes the most recent stored audits, oldest first, for seeding
// an in-memory history. Entries that fail to decode are skipped.
func (d *Database) LoadResults(ctx context.Context, limit int) ([]audit.Result, error) {
	entries, err := d.ListAudits(ctx, limit)
	if err != nil {
		return nil, err
	}
	results := make([]audit.Result, 0, len(entries))
	for i := range entries {
		result, err := entries[i].Result()
		if err != nil {
			logrus.WithError(err).WithField("audit_id", entries[i].ID).Warn("skip undecodable audit")
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// dominantCategory returns the category with the largest distribution share,
// breaking ties by name.
func dominantCategory(dist map[fairness.Category]float64) fairness.Category {
	if len(dist) == 0 {
		return ""
	}
	keys := make([]fairness.Category, 0, len(dist))
	for c := range dist {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	best := keys[0]
	for _, c := range keys[1:] {
		if dist[c] > dist[best] {
			best = c
		}
	}
	return best
}
