package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "warranty:login:failed:"

func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// LockoutStore keeps one counter per email. The counter expires window
// after the first failure, which bounds how long a lockout lasts.
type LockoutStore struct {
	client *redis.Client
	window time.Duration
}

func NewLockoutStore(client *redis.Client, window time.Duration) *LockoutStore {
	return &LockoutStore{client: client, window: window}
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *LockoutStore) FailedAttempts(ctx context.Context, email string) (int, error) {
	n, err := s.client.Get(ctx, key(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

func (s *LockoutStore) RecordFailure(ctx context.Context, email string) (int, error) {
	k := key(email)

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, s.window).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (s *LockoutStore) Clear(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}
