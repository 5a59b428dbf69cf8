package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"embed-sync/core/discord"
	"embed-sync/core/logger"
	"embed-sync/feature/embeds"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Reconciler syncs local channel definitions to a Discord guild.
// A Reconciler runs strictly sequentially and must not be used by two runs at once.
type Reconciler struct {
	client   discord.Client
	fs       afero.Fs
	root     string
	guildID  string
	logger   *zap.Logger
	archiver Archiver
	recorder Recorder
	now      func() time.Time
	newID    func() string
}

// New creates a reconciler reading definitions from root on fs.
func New(client discord.Client, fs afero.Fs, root, guildID string, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		client:  client,
		fs:      fs,
		root:    root,
		guildID: guildID,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// SetArchiver enables snapshots of purged messages.
func (r *Reconciler) SetArchiver(a Archiver) {
	r.archiver = a
}

// SetRecorder enables run journaling.
func (r *Reconciler) SetRecorder(rec Recorder) {
	r.recorder = rec
}

// run holds the state of a single pass.
type run struct {
	report   *Report
	opts     Options
	log      *zap.Logger
	botID    string
	channels []*discordgo.Channel
	fetched  bool
}

// Run reconciles the named channels, or every local channel directory when
// channels is empty. The first parse or remote failure aborts the whole run.
func (r *Reconciler) Run(ctx context.Context, channels []string, opts Options) (report *Report, err error) {
	if opts.PurgeScope == "" {
		opts.PurgeScope = ScopeRecent
	}

	state := &run{
		report: &Report{
			RunID:     r.newID(),
			DryRun:    opts.DryRun,
			Phase:     PhaseIdle,
			StartedAt: r.now().UTC(),
			Channels:  []ChannelResult{},
		},
		opts: opts,
	}
	state.log = logger.WithRunID(r.logger, state.report.RunID)
	report = state.report

	if r.recorder != nil {
		if recErr := r.recorder.BeginRun(ctx, report.RunID, opts.DryRun); recErr != nil {
			state.log.Warn("Failed to journal run start", zap.Error(recErr))
		}
	}

	defer func() {
		if err != nil {
			r.setPhase(state, PhaseFailed)
		} else {
			r.setPhase(state, PhaseDone)
		}
		if r.recorder != nil {
			if recErr := r.recorder.FinishRun(ctx, report.RunID, err); recErr != nil {
				state.log.Warn("Failed to journal run end", zap.Error(recErr))
			}
		}
	}()

	r.setPhase(state, PhaseConnecting)
	if err := r.connect(ctx, state); err != nil {
		return report, err
	}

	names, err := r.channelNames(channels)
	if err != nil {
		return report, err
	}
	state.log.Info("Starting sync", zap.Strings("channels", names), zap.Bool("dry_run", opts.DryRun))

	for _, name := range names {
		result, err := r.syncChannel(ctx, state, name)
		report.Channels = append(report.Channels, result)

		if r.recorder != nil {
			if recErr := r.recorder.RecordChannel(ctx, report.RunID, result); recErr != nil {
				state.log.Warn("Failed to journal channel", zap.String("channel", name), zap.Error(recErr))
			}
		}

		if err != nil {
			return report, fmt.Errorf("channel %s: %w", name, err)
		}
	}

	return report, nil
}

// connect verifies the guild and resolves the bot identity.
func (r *Reconciler) connect(ctx context.Context, state *run) error {
	if _, err := r.client.Guild(ctx, r.guildID); err != nil {
		return err
	}

	user, err := r.client.BotUser(ctx)
	if err != nil {
		return err
	}
	state.botID = user.ID
	return nil
}

// channelNames returns the explicit list, or every subdirectory of the root sorted by name.
func (r *Reconciler) channelNames(explicit []string) ([]string, error) {
	names := make([]string, 0, len(explicit))
	for _, name := range explicit {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names, nil
	}

	exists, err := afero.DirExists(r.fs, r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to check channel root %s: %w", r.root, err)
	}
	if !exists {
		return names, nil
	}

	entries, err := afero.ReadDir(r.fs, r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel root %s: %w", r.root, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// syncChannel runs one channel through locate, load, purge and send.
func (r *Reconciler) syncChannel(ctx context.Context, state *run, name string) (ChannelResult, error) {
	result := ChannelResult{Channel: name}
	l := state.log.With(zap.String("channel", name))

	r.setPhase(state, PhaseLocating)
	dir, ok, err := r.channelDir(name)
	if err != nil {
		return result, err
	}
	if !ok {
		l.Info("Channel directory not found, skipping")
		result.Skipped = SkipNoDirectory
		return result, nil
	}

	files, err := embeds.ListDefinitionFiles(r.fs, dir)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		l.Info("No definition files, skipping")
		result.Skipped = SkipNoDefinitions
		return result, nil
	}
	result.Files = files

	channel, err := r.findChannel(ctx, state, name)
	if err != nil {
		return result, err
	}
	if channel == nil {
		l.Info("Channel not found, skipping")
		result.Skipped = SkipNoChannel
		return result, nil
	}
	result.ChannelID = channel.ID
	l = l.With(zap.String("channel_id", channel.ID))
	l.Info("Syncing channel", zap.Int("files", len(files)))

	// Every file is parsed before anything is deleted.
	r.setPhase(state, PhaseLoading)
	batches, err := r.load(l, dir, files)
	if err != nil {
		return result, err
	}
	for _, b := range batches {
		result.Messages += len(b.messages)
	}

	r.setPhase(state, PhasePurging)
	if err := r.purge(ctx, state, l, channel.ID, &result); err != nil {
		return result, err
	}

	r.setPhase(state, PhaseSending)
	if err := r.send(ctx, state, l, channel.ID, batches, &result); err != nil {
		return result, err
	}

	l.Info("Channel synced",
		zap.Int("messages", result.Messages),
		zap.Int("sent", result.Sent),
		zap.Int("bulk_deleted", result.BulkDeleted),
		zap.Int("deleted", result.Deleted),
	)
	return result, nil
}

// channelDir resolves the local directory of a channel.
func (r *Reconciler) channelDir(name string) (string, bool, error) {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false, nil
	}

	dir := filepath.Join(r.root, name)
	exists, err := afero.DirExists(r.fs, dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to check directory %s: %w", dir, err)
	}
	return dir, exists, nil
}

// findChannel looks the channel up among the guild's text channels.
// The guild channel list is fetched once per run, on first use.
func (r *Reconciler) findChannel(ctx context.Context, state *run, name string) (*discordgo.Channel, error) {
	if !state.fetched {
		channels, err := r.client.GuildChannels(ctx, r.guildID)
		if err != nil {
			return nil, err
		}
		state.channels = channels
		state.fetched = true
	}
	return discord.FindTextChannel(state.channels, name), nil
}

func (r *Reconciler) setPhase(state *run, phase Phase) {
	state.report.Phase = phase
	state.log.Debug("Phase", zap.String("phase", string(phase)))
}
