package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/despensa-api/internal/domain"
)

const redisKeyPrefix = "despensa:"

// Redis es el backend clave-valor sobre Redis.
type Redis struct {
	client *redis.Client
}

// NewRedis construye el backend con un cliente ya configurado.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get traduce redis.Nil a domain.ErrKeyNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis get %q: %w", key, domain.ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

// Set guarda sin expiración: el estado persistido no caduca.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
