package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistKeyPrefix = "auth:revoked:"

// Open connects to redis and verifies the connection.
func Open(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Denylist stores hashes of revoked auth tokens until the tokens would
// have expired anyway, after which the keys fall out on their own.
type Denylist struct {
	client *redis.Client
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

func (d *Denylist) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		// The token is already expired; nothing to deny.
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+tokenHash, "revoked", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenHash).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
