package reconcile

import (
	"context"
	"time"

	"embed-sync/core/discord"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// PurgePlan splits one page of bot messages by deletion method.
type PurgePlan struct {
	// Bulk holds messages young enough for a single bulk delete call.
	Bulk []*discordgo.Message
	// Single holds messages that must be deleted one by one.
	Single []*discordgo.Message
}

// Empty reports whether the plan deletes nothing.
func (p PurgePlan) Empty() bool {
	return len(p.Bulk) == 0 && len(p.Single) == 0
}

// Messages returns every planned message, bulk first.
func (p PurgePlan) Messages() []*discordgo.Message {
	all := make([]*discordgo.Message, 0, len(p.Bulk)+len(p.Single))
	all = append(all, p.Bulk...)
	return append(all, p.Single...)
}

// PlanPurge keeps the messages authored by botID and partitions them by age.
func PlanPurge(page []*discordgo.Message, botID string, now time.Time) PurgePlan {
	var plan PurgePlan
	for _, msg := range page {
		if msg == nil || msg.Author == nil || msg.Author.ID != botID {
			continue
		}
		if discord.IsBulkDeletable(msg, now) {
			plan.Bulk = append(plan.Bulk, msg)
		} else {
			plan.Single = append(plan.Single, msg)
		}
	}
	return plan
}

// purge removes prior bot messages page by page until a short page is returned.
func (r *Reconciler) purge(ctx context.Context, state *run, l *zap.Logger, channelID string, result *ChannelResult) error {
	before := ""
	for page := 0; ; page++ {
		messages, err := r.client.ChannelMessages(ctx, channelID, discord.MaxPageSize, before)
		if err != nil {
			return err
		}

		plan := PlanPurge(messages, state.botID, r.now())
		if !plan.Empty() {
			if err := r.applyPurge(ctx, state, l, channelID, page, plan, result); err != nil {
				return err
			}
		}

		if len(messages) < discord.MaxPageSize {
			return nil
		}

		if state.opts.PurgeScope == ScopeRecent {
			if plan.Empty() {
				l.Debug("Full page without bot messages, stopping purge")
				return nil
			}
			// A dry run deletes nothing, so re-reading the newest page would never advance.
			if !state.opts.DryRun {
				before = ""
				continue
			}
		}
		before = oldestID(messages)
	}
}

// applyPurge archives and then deletes the messages of one page.
func (r *Reconciler) applyPurge(ctx context.Context, state *run, l *zap.Logger, channelID string, page int, plan PurgePlan, result *ChannelResult) error {
	if r.archiver != nil && !state.opts.DryRun {
		key, err := r.archiver.Archive(ctx, state.report.RunID, result.Channel, page, plan.Messages())
		if err != nil {
			return err
		}
		result.Archives = append(result.Archives, key)
	}

	if len(plan.Bulk) > 0 {
		ids := messageIDs(plan.Bulk)
		result.Actions = append(result.Actions, Action{Type: ActionBulkDelete, MessageIDs: ids})
		if state.opts.DryRun {
			l.Info("Dry-run: would bulk delete messages", zap.Int("count", len(ids)))
		} else {
			if err := r.client.BulkDelete(ctx, channelID, ids); err != nil {
				return err
			}
			result.BulkDeleted += len(ids)
		}
	}

	for _, msg := range plan.Single {
		result.Actions = append(result.Actions, Action{Type: ActionDelete, MessageIDs: []string{msg.ID}})
		if state.opts.DryRun {
			l.Info("Dry-run: would delete message", zap.String("message_id", msg.ID))
			continue
		}
		if err := r.client.DeleteMessage(ctx, channelID, msg.ID); err != nil {
			return err
		}
		result.Deleted++
	}

	return nil
}

func messageIDs(messages []*discordgo.Message) []string {
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}
	return ids
}

// oldestID returns the smallest snowflake in the page.
func oldestID(messages []*discordgo.Message) string {
	oldest := ""
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		if oldest == "" || snowflakeLess(msg.ID, oldest) {
			oldest = msg.ID
		}
	}
	return oldest
}

// snowflakeLess compares decimal snowflake IDs without parsing them.
func snowflakeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
