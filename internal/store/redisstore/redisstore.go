// Package redisstore persists documents in Redis. It is selected when
// REDIS_ADDR is set, for setups that already keep a Redis instance around.
// Keys carry a namespace prefix so the ledgers do not collide with other
// tenants of the same instance.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "caixalivre:doc:"

type Store struct {
	client *redis.Client
}

func New(addr string, password string, db int) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Load(ctx context.Context, key string, dest any) error {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("decode document %q: %w", key, err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, key string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save document %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
