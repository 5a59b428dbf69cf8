package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PurgeScope selects how the purge phase pages through channel history.
type PurgeScope string

const (
	// ScopeRecent re-reads the newest page after every deletion round and stops
	// once a page is short or holds no bot messages. Bot messages older than a
	// full page of other authors are left in place.
	ScopeRecent PurgeScope = "recent"
	// ScopeHistory pages backwards with a cursor until a short page is returned,
	// reaching every bot message in the channel.
	ScopeHistory PurgeScope = "history"
)

// ParsePurgeScope validates a configured scope. Empty selects ScopeRecent.
func ParsePurgeScope(s string) (PurgeScope, error) {
	switch PurgeScope(s) {
	case "", ScopeRecent:
		return ScopeRecent, nil
	case ScopeHistory:
		return ScopeHistory, nil
	default:
		return "", fmt.Errorf("unknown purge scope %q (want %q or %q)", s, ScopeRecent, ScopeHistory)
	}
}

// Phase is the current step of a run.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhaseLocating   Phase = "locating"
	PhaseLoading    Phase = "loading"
	PhasePurging    Phase = "purging"
	PhaseSending    Phase = "sending"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// SkipReason explains why a channel was not synced.
type SkipReason string

const (
	// SkipNoDirectory means the channel has no local directory.
	SkipNoDirectory SkipReason = "no_directory"
	// SkipNoDefinitions means the local directory holds no definition files.
	SkipNoDefinitions SkipReason = "no_definitions"
	// SkipNoChannel means no text channel with that name exists in the guild.
	SkipNoChannel SkipReason = "channel_not_found"
)

// ActionType represents the type of remote mutation.
type ActionType string

const (
	// ActionBulkDelete deletes recent messages in a single call.
	ActionBulkDelete ActionType = "bulk_delete"
	// ActionDelete deletes one message that is too old for bulk deletion.
	ActionDelete ActionType = "delete"
	// ActionSend posts one compiled message.
	ActionSend ActionType = "send"
)

// Action represents a planned or executed remote mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// MessageIDs are the messages removed by delete actions.
	MessageIDs []string `json:"message_ids,omitempty"`

	// File is the definition file a send action comes from.
	File string `json:"file,omitempty"`

	// Embeds counts the embeds of a send action.
	Embeds int `json:"embeds,omitempty"`

	// Attachments lists the uploaded file names of a send action.
	Attachments []string `json:"attachments,omitempty"`
}

// ChannelResult is the outcome of one channel.
type ChannelResult struct {
	// Channel is the channel name.
	Channel string `json:"channel"`

	// ChannelID is the remote channel ID, empty when the channel was not found.
	ChannelID string `json:"channel_id,omitempty"`

	// Skipped is set when the channel was not synced.
	Skipped SkipReason `json:"skipped,omitempty"`

	// Files are the definition files in processing order.
	Files []string `json:"files,omitempty"`

	// Messages counts compiled outbound messages.
	Messages int `json:"messages"`

	// Sent counts messages actually posted.
	Sent int `json:"sent"`

	// BulkDeleted counts messages removed through bulk deletion.
	BulkDeleted int `json:"bulk_deleted"`

	// Deleted counts messages removed one at a time.
	Deleted int `json:"deleted"`

	// Archives are the object keys of uploaded purge snapshots.
	Archives []string `json:"archives,omitempty"`

	// Actions lists the remote mutations in execution order.
	Actions []Action `json:"actions,omitempty"`
}

// Report is the outcome of a run.
type Report struct {
	// RunID identifies the run in logs, archives and the journal.
	RunID string `json:"run_id"`

	// DryRun is true when no remote mutation was performed.
	DryRun bool `json:"dry_run"`

	// Phase is the last phase reached.
	Phase Phase `json:"phase"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Channels holds one result per processed channel, in processing order.
	Channels []ChannelResult `json:"channels"`
}

// Summary provides aggregate counts for a report.
type Summary struct {
	Channels    int `json:"channels"`
	Skipped     int `json:"skipped"`
	Files       int `json:"files"`
	Messages    int `json:"messages"`
	Sent        int `json:"sent"`
	BulkDeleted int `json:"bulk_deleted"`
	Deleted     int `json:"deleted"`
}

// Summary aggregates the channel results.
func (r *Report) Summary() Summary {
	var s Summary
	s.Channels = len(r.Channels)
	for _, ch := range r.Channels {
		if ch.Skipped != "" {
			s.Skipped++
		}
		s.Files += len(ch.Files)
		s.Messages += ch.Messages
		s.Sent += ch.Sent
		s.BulkDeleted += ch.BulkDeleted
		s.Deleted += ch.Deleted
	}
	return s
}

// Options controls a single run.
type Options struct {
	// DryRun plans everything but performs no delete or send calls.
	DryRun bool

	// PurgeScope selects how history is paged during purge.
	PurgeScope PurgeScope
}

// Recorder receives run lifecycle events, e.g. to persist them.
type Recorder interface {
	BeginRun(ctx context.Context, runID string, dryRun bool) error
	RecordChannel(ctx context.Context, runID string, result ChannelResult) error
	FinishRun(ctx context.Context, runID string, runErr error) error
}

// Archiver stores a snapshot of messages before they are deleted.
// It returns the key the snapshot was stored under.
type Archiver interface {
	Archive(ctx context.Context, runID, channel string, page int, messages []*discordgo.Message) (string, error)
}
