package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// MaxPageSize is the largest number of messages Discord returns per history request.
const MaxPageSize = 100

// BulkDeleteWindow is the maximum message age accepted by the bulk delete endpoint.
const BulkDeleteWindow = 14 * 24 * time.Hour

// Client defines the Discord operations used by the reconciler.
type Client interface {
	// BotUser returns the authenticated bot user.
	BotUser(ctx context.Context) (*discordgo.User, error)
	// Guild fetches a guild by ID.
	Guild(ctx context.Context, guildID string) (*discordgo.Guild, error)
	// GuildChannels lists all channels of a guild.
	GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error)
	// ChannelMessages fetches up to limit messages, newest first.
	// If beforeID is not empty only messages older than it are returned.
	ChannelMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
	// BulkDelete deletes up to 100 messages younger than BulkDeleteWindow in one call.
	BulkDelete(ctx context.Context, channelID string, messageIDs []string) error
	// DeleteMessage deletes a single message.
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	// SendMessage posts a message with embeds and files.
	SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	// Close releases the session.
	Close() error
}

// NewClient creates a Discord REST client authenticated as a bot.
func NewClient(cfg Config) (Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	session.Client = &http.Client{Timeout: time.Duration(timeout) * time.Second}

	return &sessionClient{session: session}, nil
}

type sessionClient struct {
	session *discordgo.Session
}

func (c *sessionClient) BotUser(ctx context.Context) (*discordgo.User, error) {
	user, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}
	return user, nil
}

func (c *sessionClient) Guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	guild, err := c.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", guildID, err)
	}
	return guild, nil
}

func (c *sessionClient) GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list channels of guild %s: %w", guildID, err)
	}
	return channels, nil
}

func (c *sessionClient) ChannelMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	messages, err := c.session.ChannelMessages(channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages of channel %s: %w", channelID, err)
	}
	return messages, nil
}

func (c *sessionClient) BulkDelete(ctx context.Context, channelID string, messageIDs []string) error {
	if err := c.session.ChannelMessagesBulkDelete(channelID, messageIDs, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to bulk delete %d messages in channel %s: %w", len(messageIDs), channelID, err)
	}
	return nil
}

func (c *sessionClient) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := c.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s in channel %s: %w", messageID, channelID, err)
	}
	return nil
}

func (c *sessionClient) SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return msg, nil
}

func (c *sessionClient) Close() error {
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}
