package cmd

import (
	"context"
	"fmt"

	"embed-sync/core/config"
	"embed-sync/core/database"
	"embed-sync/core/discord"
	"embed-sync/core/journal"
	"embed-sync/core/reconcile"
	"embed-sync/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// components holds the clients shared by a sync run or the HTTP service.
type components struct {
	reconciler *reconcile.Reconciler
	discord    discord.Client
	journal    *journal.Store
	db         *gorm.DB
}

// newComponents builds the reconciler and its optional archive and journal.
// The journal is best effort: when the database is unreachable runs go on without it.
func newComponents(ctx context.Context, cfg *config.Config, l *zap.Logger) (*components, error) {
	dc, err := discord.NewClient(cfg.Discord)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	c := &components{discord: dc}
	c.reconciler = reconcile.New(dc, afero.NewOsFs(), cfg.Sync.Root, cfg.Discord.GuildID, l)

	if cfg.Archive.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		c.reconciler.SetArchiver(reconcile.NewStorageArchiver(store, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Archive.Prefix))
		l.Info("Purge archive enabled", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Archive.Prefix))
	}

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			l.Warn("Run journal disabled, database connection failed", zap.Error(err))
			return c, nil
		}
		c.db = db

		store := journal.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			l.Warn("Run journal disabled, migration failed", zap.Error(err))
			return c, nil
		}
		c.journal = store
		c.reconciler.SetRecorder(store)
		l.Info("Run journal enabled", zap.String("database", cfg.Database.Name))
	}

	return c, nil
}

// Close releases the Discord session and the database pool.
func (c *components) Close() {
	if c.discord != nil {
		_ = c.discord.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
