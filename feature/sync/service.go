package sync

import (
	"context"
	"fmt"
	"strings"
	gosync "sync"

	"embed-sync/core/journal"
	"embed-sync/core/logger"
	"embed-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner executes a reconciliation pass.
type Runner interface {
	Run(ctx context.Context, channels []string, opts reconcile.Options) (*reconcile.Report, error)
}

// RunLister reads past runs from the journal.
type RunLister interface {
	List(ctx context.Context, limit int) ([]journal.Run, error)
}

// Request describes a sync triggered over HTTP.
type Request struct {
	// Channels restricts the run. Empty syncs every local channel directory.
	Channels []string `json:"channels"`
	// DryRun plans the run without deleting or sending anything.
	DryRun bool `json:"dry_run"`
	// PurgeScope overrides the configured purge scope (recent, history).
	PurgeScope string `json:"purge_scope"`
}

// Service serializes sync runs triggered over HTTP.
type Service struct {
	runner  Runner
	journal RunLister
	scope   reconcile.PurgeScope
	logger  *zap.Logger

	mu    gosync.Mutex
	group singleflight.Group
}

// NewService creates a sync service. journal may be nil when the run journal is disabled.
func NewService(runner Runner, journal RunLister, scope reconcile.PurgeScope, logger *zap.Logger) *Service {
	return &Service{
		runner:  runner,
		journal: journal,
		scope:   scope,
		logger:  logger,
	}
}

// Sync runs a reconciliation. Identical concurrent requests share one run,
// and different requests wait for the running one to finish.
func (s *Service) Sync(ctx context.Context, req Request) (*reconcile.Report, error) {
	scope := s.scope
	if req.PurgeScope != "" {
		parsed, err := reconcile.ParsePurgeScope(req.PurgeScope)
		if err != nil {
			return nil, err
		}
		scope = parsed
	}

	channels := normalizeChannels(req.Channels)
	opts := reconcile.Options{DryRun: req.DryRun, PurgeScope: scope}
	key := fmt.Sprintf("%t|%s|%s", opts.DryRun, opts.PurgeScope, strings.Join(channels, ","))

	// The run outlives the request that started it when others joined it.
	runCtx := context.WithoutCancel(ctx)
	result, err, shared := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.runner.Run(runCtx, channels, opts)
	})
	if shared {
		s.logger.Debug("Joined running sync", zap.String("key", key))
	}

	report, _ := result.(*reconcile.Report)
	return report, err
}

// Runs lists recent journal entries.
func (s *Service) Runs(ctx context.Context, limit int) ([]journal.Run, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.List(ctx, limit)
}

// JournalEnabled reports whether runs are persisted.
func (s *Service) JournalEnabled() bool {
	return s.journal != nil
}

// logReport writes the summary of a finished run.
func (s *Service) logReport(l *zap.Logger, report *reconcile.Report) {
	if report == nil {
		return
	}
	summary := report.Summary()
	logger.WithRunID(l, report.RunID).Info("Sync finished",
		zap.Bool("dry_run", report.DryRun),
		zap.String("phase", string(report.Phase)),
		zap.Int("channels", summary.Channels),
		zap.Int("skipped", summary.Skipped),
		zap.Int("messages", summary.Messages),
		zap.Int("sent", summary.Sent),
		zap.Int("bulk_deleted", summary.BulkDeleted),
		zap.Int("deleted", summary.Deleted),
	)
}

// normalizeChannels trims names and drops empty ones, keeping the requested order.
func normalizeChannels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, name := range in {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
