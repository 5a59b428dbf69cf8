// Package sync exposes reconciliation runs over HTTP.
//
// Runs never overlap: the service holds a mutex for the duration of a run,
// and identical requests that arrive while a run is in flight are collapsed
// onto it with singleflight, receiving the same report.
//
// # HTTP Endpoints
//
//   - POST /sync      : Run a sync. Body: {"channels": [...], "dry_run": bool, "purge_scope": "history"}.
//   - GET  /sync/runs : Recent runs from the journal (503 when the journal is disabled).
package sync
