package revocation

import (
	"context"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// redisStore implementa Store sobre redis, para despliegues donde varios
// procesos deben ver la revocación consistentemente.
type redisStore struct {
	client *rdb.Client
	prefix string
}

// NewRedis crea un store de revocación respaldado por redis.
func NewRedis(addr, password string, db int, prefix string) (Store, error) {
	if prefix == "" {
		prefix = "rvk:"
	}
	client := rdb.NewClient(&rdb.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{client: client, prefix: prefix}, nil
}

func (s *redisStore) key(tokenID string) string {
	return s.prefix + tokenID
}

func (s *redisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (s *redisStore) MarkRevoked(ctx context.Context, tokenID string) error {
	// Sin TTL: la revocación es permanente.
	if err := s.client.Set(ctx, s.key(tokenID), "1", 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error { return s.client.Close() }
