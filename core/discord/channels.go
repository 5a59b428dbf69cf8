package discord

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// IsTextChannel reports whether messages can be posted to the channel.
func IsTextChannel(ch *discordgo.Channel) bool {
	if ch == nil {
		return false
	}
	switch ch.Type {
	case discordgo.ChannelTypeGuildText,
		discordgo.ChannelTypeGuildNews,
		discordgo.ChannelTypeGuildVoice,
		discordgo.ChannelTypeGuildStageVoice:
		return true
	default:
		return false
	}
}

// FindTextChannel returns the first text channel whose name equals name exactly.
func FindTextChannel(channels []*discordgo.Channel, name string) *discordgo.Channel {
	for _, ch := range channels {
		if IsTextChannel(ch) && ch.Name == name {
			return ch
		}
	}
	return nil
}

// MessageTime returns when a message was created, falling back to its snowflake ID.
func MessageTime(msg *discordgo.Message) time.Time {
	if !msg.Timestamp.IsZero() {
		return msg.Timestamp
	}
	ts, err := discordgo.SnowflakeTimestamp(msg.ID)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// IsBulkDeletable reports whether msg is young enough for the bulk delete endpoint.
func IsBulkDeletable(msg *discordgo.Message, now time.Time) bool {
	created := MessageTime(msg)
	if created.IsZero() {
		return false
	}
	return now.Sub(created) < BulkDeleteWindow
}

// ToMessageEmbeds converts opaque embed documents into discordgo embeds.
func ToMessageEmbeds(docs any) ([]*discordgo.MessageEmbed, error) {
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embeds: %w", err)
	}

	var embeds []*discordgo.MessageEmbed
	if err := json.Unmarshal(data, &embeds); err != nil {
		return nil, fmt.Errorf("failed to convert embeds: %w", err)
	}
	return embeds, nil
}

// embedFields holds the JSON names of the fields modelled by discordgo.MessageEmbed.
var embedFields = jsonFieldNames(reflect.TypeOf(discordgo.MessageEmbed{}))

// UnknownEmbedFields returns the sorted top-level keys of doc that
// ToMessageEmbeds cannot carry over to discordgo.MessageEmbed.
func UnknownEmbedFields(doc map[string]any) []string {
	var unknown []string
	for key := range doc {
		if _, ok := embedFields[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func jsonFieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = struct{}{}
		}
	}
	return names
}
