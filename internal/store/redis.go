package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	logx "courierbot/pkg/logx"
)

const redisKeyPrefix = "courier:thread:"

// redisStore keeps one TTL'd key per suppressed thread. Redis expires the
// marker itself, so no sweeper runs against this driver.
type redisStore struct {
	client *redis.Client
	log    logx.Logger
}

func openRedis(cfg Config, log logx.Logger) (Store, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &redisStore{client: client, log: log}, nil
}

// NewRedisWithClient builds a store from an existing client.
func NewRedisWithClient(client *redis.Client, log logx.Logger) Store {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &redisStore{client: client, log: log}
}

func redisKey(threadID string) string { return redisKeyPrefix + threadID }

func (s *redisStore) Get(ctx context.Context, threadID string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(threadID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get marker: %w", err)
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse marker %q: %w", raw, err)
	}
	return ts, true, nil
}

func (s *redisStore) Put(ctx context.Context, threadID string, ts int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKey(threadID), strconv.FormatInt(ts, 10), ttl).Err(); err != nil {
		return fmt.Errorf("put marker: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, threadID string) error {
	if err := s.client.Del(ctx, redisKey(threadID)).Err(); err != nil {
		return fmt.Errorf("delete marker: %w", err)
	}
	return nil
}

func (s *redisStore) Keys(ctx context.Context) ([]string, error) {
	var out []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan markers: %w", err)
	}
	return out, nil
}

func (s *redisStore) NativeTTL() bool { return true }

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error { return s.client.Close() }
