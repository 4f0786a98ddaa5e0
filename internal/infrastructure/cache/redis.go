// Package cache adaptador Redis para el cache de stats del tablero de despachos.
// Las lecturas de tablero toleran consistencia eventual; un fallo de cache nunca
// es fatal para la petición.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tu-usuario/despacho-pro/internal/application/dispatch"
)

var _ dispatch.StatsCache = (*RedisCache)(nil)

// RedisCache implementación de dispatch.StatsCache sobre Redis.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache conecta al Redis en addr y verifica con PING.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get devuelve el valor de la clave; ok == false si no existe.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set guarda el valor con expiración.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
