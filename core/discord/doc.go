// Package discord wraps the discordgo REST client with the small set of calls
// the channel reconciler needs.
//
// Only REST endpoints are used; no gateway connection is opened. Every call
// receives the caller's context through discordgo.WithContext so a stalled
// request can be abandoned.
//
// # Client Interface
//
// The Client interface is the remote collaborator of the reconciler and can be
// mocked in unit tests (see core/discord/mocks).
//
// # Operations
//
//   - BotUser: the identity whose messages are purged.
//   - Guild / GuildChannels: locate the configured server and its channels.
//   - ChannelMessages: page through recent history, newest first.
//   - BulkDelete / DeleteMessage: remove prior messages.
//   - SendMessage: post embeds and file uploads.
//
// # Usage
//
//	client, err := discord.NewClient(cfg.Discord)
//	defer client.Close()
//	channels, err := client.GuildChannels(ctx, cfg.Discord.GuildID)
package discord
