package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/mealfinder/internal/page"
)

// RedisStore keeps pages, flashes and page locks in Redis
type RedisStore struct {
	redis   *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
	prefix  string
}

// NewRedisStore creates a new RedisStore. Zero durations select the defaults.
func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &RedisStore{
		redis:   client,
		ttl:     ttl,
		lockTTL: lockTTL,
		prefix:  "mealfinder",
	}
}

func (s *RedisStore) pageKey(id string) string {
	return fmt.Sprintf("%s:page:%s", s.prefix, id)
}

func (s *RedisStore) flashKey(id string) string {
	return fmt.Sprintf("%s:flash:%s", s.prefix, id)
}

func (s *RedisStore) lockKey(id string) string {
	return fmt.Sprintf("%s:lock:%s", s.prefix, id)
}

// Load retrieves the page of a session
func (s *RedisStore) Load(ctx context.Context, id string) (*page.Page, error) {
	data, err := s.redis.Get(ctx, s.pageKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page from Redis: %w", err)
	}

	var p page.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return &p, nil
}

// Save stores the page of a session and refreshes its expiry
func (s *RedisStore) Save(ctx context.Context, id string, p *page.Page) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	if err := s.redis.Set(ctx, s.pageKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save page to Redis: %w", err)
	}
	return nil
}

// PutFlash merges f into the pending flash of a session. The flash is a
// hash so concurrent puts of different fields do not overwrite each other.
func (s *RedisStore) PutFlash(ctx context.Context, id string, f page.Flash) error {
	if f.Empty() {
		return nil
	}
	fields := make(map[string]any, 2)
	if f.Alert != "" {
		fields["alert"] = f.Alert
	}
	if f.ScrollTo != "" {
		fields["scroll_to"] = f.ScrollTo
	}

	key := s.flashKey(id)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save flash to Redis: %w", err)
	}
	return nil
}

// TakeFlash returns and removes the pending flash of a session
func (s *RedisStore) TakeFlash(ctx context.Context, id string) (page.Flash, error) {
	key := s.flashKey(id)
	var get *redis.MapStringStringCmd
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGetAll(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return page.Flash{}, fmt.Errorf("failed to take flash from Redis: %w", err)
	}

	fields := get.Val()
	return page.Flash{Alert: fields["alert"], ScrollTo: fields["scroll_to"]}, nil
}

// Acquire takes the page lock of a session. The lock expires on its own so
// a crashed request cannot block the session forever.
func (s *RedisStore) Acquire(ctx context.Context, id string) (bool, error) {
	ok, err := s.redis.SetNX(ctx, s.lockKey(id), time.Now().Unix(), s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	return ok, nil
}

// Release drops the page lock of a session
func (s *RedisStore) Release(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.lockKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to release session lock: %w", err)
	}
	return nil
}
