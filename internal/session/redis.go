package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/campuskit/frontdesk/internal/infra/redis"
	"github.com/campuskit/frontdesk/internal/models"
)

// RedisStore persists continuity state in Redis. A zero TTL keeps entries
// until they are explicitly cleared, matching browser local storage.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Status(ctx context.Context, assignmentID int64) (string, error) {
	status, err := s.client.Get(ctx, StatusKey(assignmentID)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read status: %w", err)
	}
	return status, nil
}

func (s *RedisStore) SetStatus(ctx context.Context, assignmentID int64, status string) error {
	if err := s.client.Set(ctx, StatusKey(assignmentID), status, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

func (s *RedisStore) Data(ctx context.Context, assignmentID int64) (*models.SubmissionData, error) {
	raw, err := s.client.Get(ctx, DataKey(assignmentID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read submission data: %w", err)
	}

	var data models.SubmissionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode submission data: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) SetData(ctx context.Context, assignmentID int64, data *models.SubmissionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode submission data: %w", err)
	}
	if err := s.client.Set(ctx, DataKey(assignmentID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write submission data: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, assignmentID int64) error {
	if err := s.client.Del(ctx, StatusKey(assignmentID), DataKey(assignmentID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}
