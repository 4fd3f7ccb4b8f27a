package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"majlis-rsvp/internal/logger"
)

const sessionKeyPrefix = "admin_session:"

// RedisSessionCache stores issued admin tokens in Redis so revocation works
// across instances. Keys carry the token TTL, so expired sessions clean
// themselves up.
type RedisSessionCache struct {
	Client *redis.Client
}

func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{Client: client}
}

// InitializeSessionCache connects to Redis and verifies the connection.
func InitializeSessionCache(redisAddr string, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		if log != nil {
			log.Error("AUTH", fmt.Sprintf("Failed to connect to Redis at %s: %v", redisAddr, err))
		}
		return nil, err
	}
	if log != nil {
		log.Info("AUTH", fmt.Sprintf("Connected to Redis at %s for session cache", redisAddr))
	}
	return client, nil
}

func (c *RedisSessionCache) Register(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}
	if err := c.Client.Set(ctx, sessionKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}
	return nil
}

func (c *RedisSessionCache) Active(ctx context.Context, token string) (bool, error) {
	_, err := c.Client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session in Redis: %w", err)
	}
	return true, nil
}

func (c *RedisSessionCache) Revoke(ctx context.Context, token string) error {
	if err := c.Client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session in Redis: %w", err)
	}
	return nil
}

// sessionKey hashes the token so raw credentials never appear in Redis.
func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}
