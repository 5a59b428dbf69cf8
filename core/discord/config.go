package discord

// Config holds configuration for the Discord connection.
type Config struct {
	// Token is the bot token used to authenticate.
	Token string `mapstructure:"token" default:""`
	// GuildID is the server whose channels are reconciled.
	GuildID string `mapstructure:"guild_id" default:""`
	// TimeoutSeconds bounds each HTTP request made to the Discord API.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
