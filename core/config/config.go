package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"embed-sync/core/database"
	"embed-sync/core/discord"
	"embed-sync/core/logger"
	"embed-sync/core/reconcile"
	"embed-sync/core/server"
	"embed-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrMissingToken is returned when no bot token is configured.
	ErrMissingToken = errors.New("discord token is not configured (DISCORD_TOKEN or BOT_TOKEN)")
	// ErrMissingGuild is returned when no guild ID is configured.
	ErrMissingGuild = errors.New("discord guild id is not configured (DISCORD_GUILD_ID or GUILD_ID)")
)

// legacyEnv maps config keys to the environment variable names read for them, in priority order.
var legacyEnv = map[string][]string{
	"discord.token":    {"DISCORD_TOKEN", "BOT_TOKEN"},
	"discord.guild_id": {"DISCORD_GUILD_ID", "GUILD_ID"},
	"sync.channels":    {"SYNC_CHANNELS", "CHANGED_CHANNELS"},
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Discord holds the bot credentials and target guild.
	Discord discord.Config `mapstructure:"discord"`
	// Sync holds the local definition tree and purge settings.
	Sync reconcile.Config `mapstructure:"sync"`
	// Archive controls snapshots of purged messages.
	Archive reconcile.ArchiveConfig `mapstructure:"archive"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used by the archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run journal.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings every sync run needs before contacting Discord.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Discord.Token) == "" {
		return ErrMissingToken
	}
	if strings.TrimSpace(c.Discord.GuildID) == "" {
		return ErrMissingGuild
	}
	if _, err := reconcile.ParsePurgeScope(c.Sync.PurgeScope); err != nil {
		return err
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
