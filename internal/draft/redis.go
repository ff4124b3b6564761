// Package draft keeps the working draft in Redis so several devices (or the
// CLI and the API server) can share it.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

const defaultTTL = 30 * 24 * time.Hour

// RedisStore implements journal.DraftStore.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and scopes the draft key to userID.
func NewRedisStore(ctx context.Context, redisURL, userID string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client, userID), nil
}

func NewRedisStoreWithClient(client *redis.Client, userID string) *RedisStore {
	if userID == "" {
		userID = "default"
	}
	return &RedisStore{client: client, key: "voicejournal:draft:" + userID, ttl: defaultTTL}
}

func (s *RedisStore) LoadDraft(ctx context.Context) (journal.Draft, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return journal.Draft{}, nil
	}
	if err != nil {
		return journal.Draft{}, fmt.Errorf("load draft: %w", err)
	}
	var d journal.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return journal.Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

// SaveDraft refreshes the TTL on every write; an abandoned draft expires.
func (s *RedisStore) SaveDraft(ctx context.Context, d journal.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearDraft(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
