package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/codenames/internal/model"
	"github.com/mcoot/codenames/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Exported state operations

func (s *Storage) SaveExport(ctx context.Context, gameID model.GameID, export model.StateExport) error {
	data, err := json.Marshal(export)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, exportKey(gameID), data, s.cfg.ExportTTL).Err()
}

func (s *Storage) GetExport(ctx context.Context, gameID model.GameID) (*model.StateExport, error) {
	data, err := s.client.Get(ctx, exportKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrExportNotFound
		}
		return nil, err
	}

	var export model.StateExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

func (s *Storage) DeleteExport(ctx context.Context, gameID model.GameID) error {
	return s.client.Del(ctx, exportKey(gameID)).Err()
}

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	// Newest at the head, trimmed to the configured length
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, summariesKey(), data)
	if s.cfg.SummaryLimit > 0 {
		pipe.LTrim(ctx, summariesKey(), 0, int64(s.cfg.SummaryLimit-1))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	values, err := s.client.LRange(ctx, summariesKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.GameSummary, 0, len(values))
	for _, val := range values {
		var summary model.GameSummary
		if err := json.Unmarshal([]byte(val), &summary); err != nil {
			continue // Skip invalid data
		}
		summaries = append(summaries, &summary)
	}
	return summaries, nil
}

// Vocabulary operations

func (s *Storage) GetVocabulary(ctx context.Context) ([]string, error) {
	key := vocabularyKey()

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrVocabularyNotSaved
	}

	return s.client.LRange(ctx, key, 0, -1).Result()
}

func (s *Storage) SaveVocabulary(ctx context.Context, words []string) error {
	key := vocabularyKey()

	// Replace the existing list atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.RPush(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
