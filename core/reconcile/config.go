package reconcile

import "strings"

// Config holds configuration for a sync run.
type Config struct {
	// Root is the directory holding one subdirectory per channel.
	Root string `mapstructure:"root" default:"channels"`
	// Channels is a space separated list of channel names restricting the run.
	// When empty every subdirectory of Root is synced.
	Channels string `mapstructure:"channels" default:""`
	// PurgeScope selects how far back prior messages are purged (recent, history).
	PurgeScope string `mapstructure:"purge_scope" default:"recent"`
}

// ChannelList splits Channels on whitespace.
func (c Config) ChannelList() []string {
	return strings.Fields(c.Channels)
}

// ArchiveConfig controls archiving of purged messages to object storage.
type ArchiveConfig struct {
	// Enabled uploads a snapshot of every purged page before deleting it.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object key prefix for snapshots.
	Prefix string `mapstructure:"prefix" default:"purged"`
}
