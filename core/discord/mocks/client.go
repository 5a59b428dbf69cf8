package mocks

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of discord.Client
type Client struct {
	mock.Mock
}

func (m *Client) BotUser(ctx context.Context) (*discordgo.User, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*discordgo.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	args := m.Called(ctx, guildID)
	if guild, ok := args.Get(0).(*discordgo.Guild); ok {
		return guild, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	args := m.Called(ctx, guildID)
	if channels, ok := args.Get(0).([]*discordgo.Channel); ok {
		return channels, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ChannelMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	args := m.Called(ctx, channelID, limit, beforeID)
	if messages, ok := args.Get(0).([]*discordgo.Message); ok {
		return messages, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) BulkDelete(ctx context.Context, channelID string, messageIDs []string) error {
	args := m.Called(ctx, channelID, messageIDs)
	return args.Error(0)
}

func (m *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	args := m.Called(ctx, channelID, messageID)
	return args.Error(0)
}

func (m *Client) SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	args := m.Called(ctx, channelID, data)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}
