package cmd

import (
	"context"
	"fmt"

	"embed-sync/core/config"
	"embed-sync/core/logger"
	"embed-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncRoot       string
	syncDryRun     bool
	syncPurgeScope string
)

// syncCmd reconciles local channel definitions with the guild.
var syncCmd = &cobra.Command{
	Use:   "sync [channel...]",
	Short: "Replace bot messages in channels with the local definitions",
	Long: `Sync deletes every message the bot previously posted in each channel
and re-posts the embeds defined in the channel's local directory.

Channels are taken from the arguments, then from SYNC_CHANNELS (or
CHANGED_CHANNELS), and otherwise every subdirectory of the root is synced.

Examples:
  # Sync every channel directory
  embed-sync sync

  # Sync two channels only
  embed-sync sync rules faq

  # Show what would be deleted and sent
  embed-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncRoot, "root", "", "Directory holding one subdirectory per channel (overrides SYNC_ROOT)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan the run without deleting or sending messages")
	syncCmd.Flags().StringVar(&syncPurgeScope, "purge-scope", "", "How far back to purge bot messages: recent or history (overrides SYNC_PURGE_SCOPE)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if syncRoot != "" {
		cfg.Sync.Root = syncRoot
	}
	if syncPurgeScope != "" {
		cfg.Sync.PurgeScope = syncPurgeScope
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	scope, err := reconcile.ParsePurgeScope(cfg.Sync.PurgeScope)
	if err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	channels := args
	if len(channels) == 0 {
		channels = cfg.Sync.ChannelList()
	}

	c, err := newComponents(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer c.Close()

	report, err := c.reconciler.Run(ctx, channels, reconcile.Options{DryRun: syncDryRun, PurgeScope: scope})
	printSyncReport(l, report)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if syncDryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	l.Info("Sync complete")
	return nil
}

// printSyncReport logs the per-channel results and the totals of a run.
func printSyncReport(l *zap.Logger, report *reconcile.Report) {
	if report == nil {
		return
	}
	l = logger.WithRunID(l, report.RunID)

	for _, ch := range report.Channels {
		if ch.Skipped != "" {
			l.Info("Channel skipped",
				zap.String("channel", ch.Channel),
				zap.String("reason", string(ch.Skipped)),
			)
			continue
		}
		l.Info("Channel result",
			zap.String("channel", ch.Channel),
			zap.Strings("files", ch.Files),
			zap.Int("messages", ch.Messages),
			zap.Int("sent", ch.Sent),
			zap.Int("bulk_deleted", ch.BulkDeleted),
			zap.Int("deleted", ch.Deleted),
			zap.Strings("archives", ch.Archives),
		)
	}

	s := report.Summary()
	l.Info("Sync report",
		zap.String("phase", string(report.Phase)),
		zap.Bool("dry_run", report.DryRun),
		zap.Int("channels", s.Channels),
		zap.Int("skipped", s.Skipped),
		zap.Int("files", s.Files),
		zap.Int("messages", s.Messages),
		zap.Int("sent", s.Sent),
		zap.Int("bulk_deleted", s.BulkDeleted),
		zap.Int("deleted", s.Deleted),
	)
}
