package redis

import (
	"alvant-portal/internal/domain"
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked:token:"

type tokenDenylist struct {
	client *goredis.Client
}

// NewTokenDenylist keeps one key per revoked token id, expiring with the token.
func NewTokenDenylist(client *goredis.Client) domain.TokenDenylist {
	return &tokenDenylist{client: client}
}

func (d *tokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err()
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
