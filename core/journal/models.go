package journal

import "time"

// Run statuses stored in sync_runs.status.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Run is one reconciliation pass.
type Run struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	Status     string          `gorm:"size:16;index" json:"status"`
	DryRun     bool            `json:"dry_run"`
	Error      string          `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time       `gorm:"index" json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Channels   []ChannelRecord `gorm:"foreignKey:RunID" json:"channels"`
}

// TableName overrides the table name used by GORM.
func (Run) TableName() string {
	return "sync_runs"
}

// ChannelRecord is the outcome of one channel within a run.
type ChannelRecord struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	RunID       string    `gorm:"size:36;index" json:"-"`
	Channel     string    `gorm:"size:100" json:"channel"`
	Skipped     string    `gorm:"size:32" json:"skipped,omitempty"`
	Files       int       `json:"files"`
	Sent        int       `json:"sent"`
	BulkDeleted int       `json:"bulk_deleted"`
	Deleted     int       `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name used by GORM.
func (ChannelRecord) TableName() string {
	return "sync_channels"
}
