package auth

import (
	"alvant-portal/internal/domain"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "alvant-portal"

var ErrInvalidToken = errors.New("invalid token")

// Issuer signs admin bearer tokens with HS256.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer returns an Issuer. An empty secret is replaced by a random one,
// so tokens stop validating after a restart.
func NewIssuer(secret string) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}
	return &Issuer{secret: key, now: time.Now}, nil
}

// WithClock overrides the time source, for tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue mints a token for email valid for ttl.
func (i *Issuer) Issue(email string, ttl time.Duration) (*domain.AdminToken, error) {
	now := i.now()
	exp := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AdminToken{Token: signed, ExpiresAt: exp.UTC().Truncate(time.Second)}, nil
}

// Parse validates signature, issuer and expiry and returns the claims.
func (i *Issuer) Parse(token string) (*domain.AdminClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing subject or id", ErrInvalidToken)
	}

	return &domain.AdminClaims{
		Email:     claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
