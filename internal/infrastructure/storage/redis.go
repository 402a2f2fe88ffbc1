package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage guarda la sesión en Redis, útil cuando varias terminales comparten la misma sesión.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStorage conecta a Redis y verifica la conexión.
func NewRedisStorage(ctx context.Context, url, prefix string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: redis url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("storage: conectar a redis: %w", err)
	}
	return &RedisStorage{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.prefix+k)
	}
	if err := s.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("storage: redis del: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
