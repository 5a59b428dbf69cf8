package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable a test may set so the host environment does not leak in.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DISCORD_TOKEN", "BOT_TOKEN", "DISCORD_GUILD_ID", "GUILD_ID",
		"SYNC_CHANNELS", "CHANGED_CHANNELS", "SYNC_ROOT", "SYNC_PURGE_SCOPE",
		"SERVER_PORT", "LOG_LEVEL", "DATABASE_ENABLED", "ARCHIVE_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "channels", cfg.Sync.Root)
	assert.Equal(t, "recent", cfg.Sync.PurgeScope)
	assert.Empty(t, cfg.Sync.ChannelList())
	assert.Equal(t, 30, cfg.Discord.TimeoutSeconds)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "purged", cfg.Archive.Prefix)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 3306, cfg.Database.Port)
}

func TestLoadConfig_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_GUILD_ID", "123")
	t.Setenv("SYNC_CHANNELS", "rules faq")
	t.Setenv("SYNC_ROOT", "/srv/channels")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Equal(t, "123", cfg.Discord.GuildID)
	assert.Equal(t, []string{"rules", "faq"}, cfg.Sync.ChannelList())
	assert.Equal(t, "/srv/channels", cfg.Sync.Root)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_LegacyAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "legacy-token")
	t.Setenv("GUILD_ID", "456")
	t.Setenv("CHANGED_CHANNELS", "announcements")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "legacy-token", cfg.Discord.Token)
	assert.Equal(t, "456", cfg.Discord.GuildID)
	assert.Equal(t, []string{"announcements"}, cfg.Sync.ChannelList())
}

func TestLoadConfig_NewNamesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "new")
	t.Setenv("BOT_TOKEN", "old")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Discord.Token)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "BOT_TOKEN=from-file\nGUILD_ID=789\nSYNC_PURGE_SCOPE=history\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Discord.Token)
	assert.Equal(t, "789", cfg.Discord.GuildID)
	assert.Equal(t, "history", cfg.Sync.PurgeScope)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Discord.Token = "token"
		c.Discord.GuildID = "123"
		c.Sync.PurgeScope = "history"
		return c
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.Discord.Token = " "
	assert.True(t, errors.Is(c.Validate(), ErrMissingToken))

	c = valid()
	c.Discord.GuildID = ""
	assert.True(t, errors.Is(c.Validate(), ErrMissingGuild))

	c = valid()
	c.Sync.PurgeScope = "all"
	assert.Error(t, c.Validate())
}
