package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps challenges as JSON values that expire with the
// challenge. Redis drops expired nonces itself, so it needs no purge.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, prefix: "certichain:challenge:"}
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Put(ctx context.Context, c Challenge) error {
	ttl := time.Until(c.ExpiresAt)
	if ttl <= 0 {
		return errors.New("challenge: expiry must be in the future")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("challenge: failed to marshal: %w", err)
	}
	return s.client.Set(ctx, s.prefix+key(c.Wallet, c.Nonce), data, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, wallet, nonce string) (Challenge, error) {
	val, err := s.client.GetDel(ctx, s.prefix+key(wallet, nonce)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Challenge{}, ErrNotFound
	}
	if err != nil {
		return Challenge{}, err
	}

	var c Challenge
	if err := json.Unmarshal(val, &c); err != nil {
		return Challenge{}, fmt.Errorf("challenge: failed to unmarshal: %w", err)
	}
	if !time.Now().Before(c.ExpiresAt) {
		return Challenge{}, ErrNotFound
	}
	return c, nil
}
