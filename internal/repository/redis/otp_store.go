package redis

import (
	"alvant-portal/internal/domain"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:admin:"

// Lua script for an attempt increment that never resurrects an expired challenge
// KEYS[1] = challenge hash
// Returns: attempts after increment, or -1 if the challenge is gone
const incrAttemptsScript = `
if redis.call('EXISTS', KEYS[1]) == 0 then
    return -1
end
return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
`

type otpStore struct {
	client *goredis.Client
}

// NewOTPStore stores each challenge as a hash that expires with the challenge.
func NewOTPStore(client *goredis.Client) domain.OTPStore {
	return &otpStore{client: client}
}

func (s *otpStore) Save(ctx context.Context, email string, ch domain.OTPChallenge) error {
	key := otpKey(email)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"secret", ch.Secret,
			"attempts", ch.Attempts,
			"issued_at", ch.IssuedAt.UnixMilli(),
			"expires_at", ch.ExpiresAt.UnixMilli(),
		)
		pipe.PExpireAt(ctx, key, ch.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp challenge: %w", err)
	}
	return nil
}

func (s *otpStore) Get(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	fields, err := s.client.HGetAll(ctx, otpKey(email)).Result()
	if err != nil {
		return nil, fmt.Errorf("load otp challenge: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	issued, _ := strconv.ParseInt(fields["issued_at"], 10, 64)
	expires, _ := strconv.ParseInt(fields["expires_at"], 10, 64)

	return &domain.OTPChallenge{
		Secret:    fields["secret"],
		Attempts:  attempts,
		IssuedAt:  time.UnixMilli(issued).UTC(),
		ExpiresAt: time.UnixMilli(expires).UTC(),
	}, nil
}

func (s *otpStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	n, err := s.client.Eval(ctx, incrAttemptsScript, []string{otpKey(email)}).Int()
	if err != nil {
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	if n < 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

func (s *otpStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKey(email)).Err()
}

func otpKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
