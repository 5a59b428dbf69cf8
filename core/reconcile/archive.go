package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"embed-sync/core/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/minio/minio-go/v7"
)

// Snapshot is the archived form of a purged page.
type Snapshot struct {
	RunID      string               `json:"run_id"`
	Channel    string               `json:"channel"`
	Page       int                  `json:"page"`
	ArchivedAt time.Time            `json:"archived_at"`
	Messages   []*discordgo.Message `json:"messages"`
}

// StorageArchiver uploads purge snapshots to an object storage bucket.
type StorageArchiver struct {
	client  storage.Client
	bucket  string
	region  string
	prefix  string
	now     func() time.Time
	ensured bool
}

// NewStorageArchiver creates an archiver writing under prefix in bucket.
func NewStorageArchiver(client storage.Client, bucket, region, prefix string) *StorageArchiver {
	return &StorageArchiver{
		client: client,
		bucket: bucket,
		region: region,
		prefix: prefix,
		now:    time.Now,
	}
}

// ObjectKey returns the key a snapshot is stored under.
func (a *StorageArchiver) ObjectKey(runID, channel string, page int) string {
	return path.Join(a.prefix, runID, channel, fmt.Sprintf("page-%03d.json", page))
}

// Archive uploads the messages as one JSON object. The bucket is created on first use.
func (a *StorageArchiver) Archive(ctx context.Context, runID, channel string, page int, messages []*discordgo.Message) (string, error) {
	if !a.ensured {
		if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
			return "", err
		}
		a.ensured = true
	}

	data, err := json.Marshal(Snapshot{
		RunID:      runID,
		Channel:    channel,
		Page:       page,
		ArchivedAt: a.now().UTC(),
		Messages:   messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := a.ObjectKey(runID, channel, page)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return key, nil
}
