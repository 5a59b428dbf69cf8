// Package journal records sync runs in a SQL database.
//
// Each run gets a row in sync_runs and one row per processed channel in
// sync_channels. The journal is informational: the reconciler never reads it
// back to decide what to do, and a failed journal write only produces a
// warning.
//
// Store implements reconcile.Recorder so it can be passed straight to the
// reconciler, and exposes List for the HTTP service.
package journal
