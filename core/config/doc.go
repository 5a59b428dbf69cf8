// Package config provides configuration management for embed-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Discord: bot token, guild ID and request timeout
//   - Sync: channel root directory, channel filter and purge scope
//   - Archive: snapshots of purged messages
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection for the run journal
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Keys map to SECTION_KEY environment variables (e.g. SYNC_ROOT). The
// variables BOT_TOKEN, GUILD_ID and CHANGED_CHANNELS are still honoured for
// discord.token, discord.guild_id and sync.channels.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
