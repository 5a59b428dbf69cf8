package reconcile

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"embed-sync/core/discord"
	"embed-sync/feature/embeds"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// outbound is a compiled message already converted to the wire embed type.
type outbound struct {
	embeds      []*discordgo.MessageEmbed
	attachments []embeds.Attachment
}

// batch is the compiled output of one definition file.
type batch struct {
	file     string
	messages []outbound
}

// load parses, compiles and converts every file in order, so nothing that
// could fail before sending is left for after the purge.
func (r *Reconciler) load(l *zap.Logger, dir string, files []string) ([]batch, error) {
	batches := make([]batch, 0, len(files))
	for _, file := range files {
		doc, err := embeds.ParseFile(r.fs, filepath.Join(dir, file))
		if err != nil {
			return nil, err
		}

		compiled := embeds.Compile(doc, r.fs, dir)
		b := batch{file: file, messages: make([]outbound, 0, len(compiled))}
		for i, msg := range compiled {
			converted, err := discord.ToMessageEmbeds(msg.Embeds)
			if err != nil {
				return nil, fmt.Errorf("%s message %d: %w", file, i, err)
			}
			for j, e := range msg.Embeds {
				if dropped := discord.UnknownEmbedFields(e); len(dropped) > 0 {
					l.Warn("Embed fields not supported by the client are ignored",
						zap.String("file", file),
						zap.Int("message", i),
						zap.Int("embed", j),
						zap.Strings("fields", dropped),
					)
				}
			}
			b.messages = append(b.messages, outbound{embeds: converted, attachments: msg.Attachments})
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// send posts every compiled message in file order, then in-file order,
// waiting for each call to finish before the next.
func (r *Reconciler) send(ctx context.Context, state *run, l *zap.Logger, channelID string, batches []batch, result *ChannelResult) error {
	for _, b := range batches {
		for i, msg := range b.messages {
			action := Action{
				Type:        ActionSend,
				File:        b.file,
				Embeds:      len(msg.embeds),
				Attachments: attachmentNames(msg.attachments),
			}
			result.Actions = append(result.Actions, action)

			if state.opts.DryRun {
				l.Info("Dry-run: would send message",
					zap.String("file", b.file),
					zap.Int("index", i),
					zap.Int("embeds", action.Embeds),
					zap.Strings("attachments", action.Attachments),
				)
				continue
			}

			if err := r.sendMessage(ctx, channelID, msg); err != nil {
				return fmt.Errorf("%s message %d: %w", b.file, i, err)
			}
			result.Sent++
		}
	}
	return nil
}

// sendMessage uploads one outbound message with its attachment files.
func (r *Reconciler) sendMessage(ctx context.Context, channelID string, msg outbound) error {
	data, closers, err := r.buildMessageSend(msg)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	if err != nil {
		return err
	}

	_, err = r.client.SendMessage(ctx, channelID, data)
	return err
}

// buildMessageSend opens the attachment files of an outbound message.
// The returned closers must be closed once the message has been sent.
func (r *Reconciler) buildMessageSend(msg outbound) (*discordgo.MessageSend, []io.Closer, error) {
	data := &discordgo.MessageSend{Embeds: msg.embeds}
	closers := make([]io.Closer, 0, len(msg.attachments))
	for _, att := range msg.attachments {
		f, err := r.fs.Open(att.Path)
		if err != nil {
			return nil, closers, fmt.Errorf("failed to open attachment %s: %w", att.Path, err)
		}
		closers = append(closers, f)
		data.Files = append(data.Files, &discordgo.File{
			Name:        att.Name,
			ContentType: mime.TypeByExtension(filepath.Ext(att.Name)),
			Reader:      f,
		})
	}
	return data, closers, nil
}

func attachmentNames(attachments []embeds.Attachment) []string {
	if len(attachments) == 0 {
		return nil
	}
	names := make([]string, 0, len(attachments))
	for _, att := range attachments {
		names = append(names, att.Name)
	}
	return names
}
