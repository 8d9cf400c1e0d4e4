package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fiyattakip/internal/config"
	"fiyattakip/internal/logging"
	"fiyattakip/pkg/models"
)

// SnapshotStore persists the latest snapshot and a bounded price history
// per product URL in Redis.
type SnapshotStore struct {
	client *redis.Client
	config *config.Config
	logger logging.Logger
}

// HistoryEntry is one observed price point for a tracked URL
type HistoryEntry struct {
	Price      float64   `json:"price"`
	InStock    bool      `json:"inStock"`
	ObservedAt time.Time `json:"observed_at"`
}

// NewSnapshotStore creates a new Redis-backed snapshot store
func NewSnapshotStore(cfg *config.Config) *SnapshotStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &SnapshotStore{
		client: redis.NewClient(opts),
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// SaveSnapshot stores the snapshot as the latest state for its URL and,
// when the scrape succeeded with a known price, appends a history entry.
// Sentinel snapshots are never written; a transient failure must not
// overwrite the last good observation.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot *models.ProductSnapshot) error {
	if snapshot == nil || snapshot.Error {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	latestKey := s.latestKey(snapshot.URL)
	if err := s.client.Set(ctx, latestKey, payload, s.config.Redis.SnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to store latest snapshot: %w", err)
	}

	if err := s.client.SAdd(ctx, trackedSetKey, snapshot.URL).Err(); err != nil {
		return fmt.Errorf("failed to register tracked url: %w", err)
	}

	if snapshot.CurrentPrice > 0 {
		entry := HistoryEntry{
			Price:      snapshot.CurrentPrice,
			InStock:    snapshot.InStock,
			ObservedAt: time.Now().UTC(),
		}
		entryPayload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal history entry: %w", err)
		}

		historyKey := s.historyKey(snapshot.URL)
		pipe := s.client.Pipeline()
		pipe.LPush(ctx, historyKey, entryPayload)
		pipe.LTrim(ctx, historyKey, 0, int64(s.config.Redis.HistoryEntries-1))
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to append price history: %w", err)
		}
	}

	s.logger.Debug("Snapshot stored", map[string]interface{}{
		"url":    snapshot.URL,
		"source": snapshot.Source,
		"price":  snapshot.CurrentPrice,
	})
	return nil
}

// LatestSnapshot returns the last stored snapshot for the URL, or nil
// when none exists.
func (s *SnapshotStore) LatestSnapshot(ctx context.Context, url string) (*models.ProductSnapshot, error) {
	payload, err := s.client.Get(ctx, s.latestKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest snapshot: %w", err)
	}

	var snapshot models.ProductSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// PriceHistory returns the recorded price points for the URL, newest first
func (s *SnapshotStore) PriceHistory(ctx context.Context, url string) ([]HistoryEntry, error) {
	raw, err := s.client.LRange(ctx, s.historyKey(url), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read price history: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			s.logger.Warn("Skipping corrupt history entry", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TrackedURLs returns every URL that has at least one stored snapshot
func (s *SnapshotStore) TrackedURLs(ctx context.Context) ([]string, error) {
	urls, err := s.client.SMembers(ctx, trackedSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked urls: %w", err)
	}
	return urls, nil
}

// Ping tests the Redis connection
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *SnapshotStore) Close() error {
	return s.client.Close()
}

const trackedSetKey = "snapshot:tracked"

func (s *SnapshotStore) latestKey(url string) string {
	return "snapshot:latest:" + url
}

func (s *SnapshotStore) historyKey(url string) string {
	return "snapshot:history:" + url
}
