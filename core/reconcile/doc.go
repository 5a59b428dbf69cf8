// Package reconcile makes Discord channels match their local definitions.
//
// A run walks the target channels one at a time and never overlaps remote
// calls. For each channel it:
//
// 1. Locates the local directory and its definition files (sorted byte-wise).
// A missing directory, an empty directory or a missing remote channel skips
// the channel without touching remote content.
//
// 2. Parses and compiles every definition file (see feature/embeds). A parse
// failure aborts the run before anything in the channel is deleted.
//
// 3. Purges prior messages authored by the bot, 100 per page. Messages younger
// than 14 days go into one bulk delete call per page, older ones are deleted
// individually. Paging stops at the first page shorter than 100 messages.
//
// 4. Sends the compiled messages in file order, then in-file order.
//
// Any remote failure aborts the whole run. Nothing is rolled back.
//
// # Purge Scope
//
// ScopeRecent is the default. It re-reads the newest page after each round of
// deletions and stops at a full page without bot messages, which leaves bot
// messages behind a full page of other authors untouched.
// ScopeHistory pages backwards through the channel with a cursor and reaches
// every bot message.
//
// # Collaborators
//
//   - discord.Client: remote calls.
//   - Archiver: optional snapshot of each purged page (StorageArchiver uploads to S3/MinIO).
//   - Recorder: optional run journal (see core/journal).
//
// # Usage Example
//
//	r := reconcile.New(client, afero.NewOsFs(), "channels", guildID, log)
//	report, err := r.Run(ctx, []string{"rules"}, reconcile.Options{})
package reconcile
