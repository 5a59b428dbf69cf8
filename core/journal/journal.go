package journal

import (
	"context"
	"fmt"
	"time"

	"embed-sync/core/reconcile"

	"gorm.io/gorm"
)

// DefaultListLimit is used when List is called without a positive limit.
const DefaultListLimit = 20

// Store persists sync runs and their per-channel results.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a journal backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates or updates the journal tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Run{}, &ChannelRecord{}); err != nil {
		return fmt.Errorf("failed to migrate journal tables: %w", err)
	}
	return nil
}

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, runID string, dryRun bool) error {
	run := Run{
		ID:        runID,
		Status:    StatusRunning,
		DryRun:    dryRun,
		StartedAt: s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", runID, err)
	}
	return nil
}

// RecordChannel stores the outcome of one channel.
func (s *Store) RecordChannel(ctx context.Context, runID string, result reconcile.ChannelResult) error {
	record := ChannelRecord{
		RunID:       runID,
		Channel:     result.Channel,
		Skipped:     string(result.Skipped),
		Files:       len(result.Files),
		Sent:        result.Sent,
		BulkDeleted: result.BulkDeleted,
		Deleted:     result.Deleted,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record channel %s for run %s: %w", result.Channel, runID, err)
	}
	return nil
}

// FinishRun marks a run as done, or failed when runErr is not nil.
func (s *Store) FinishRun(ctx context.Context, runID string, runErr error) error {
	status := StatusDone
	message := ""
	if runErr != nil {
		status = StatusFailed
		message = runErr.Error()
	}

	err := s.db.WithContext(ctx).
		Model(&Run{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"status":      status,
			"error":       message,
			"finished_at": s.now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	return nil
}

// List returns the most recent runs with their channel results, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var runs []Run
	err := s.db.WithContext(ctx).
		Preload("Channels").
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
