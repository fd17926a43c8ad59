package auth_test

import (
	"testing"
	"time"

	"alvant-portal/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	issuer, err := auth.NewIssuer("test-secret")
	require.NoError(t, err)
	issuer.WithClock(clock)

	t.Run("Round trips the admin email", func(t *testing.T) {
		tok, err := issuer.Issue("admin@alvant.test", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

		claims, err := issuer.Parse(tok.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin@alvant.test", claims.Email)
		assert.NotEmpty(t, claims.TokenID)
	})

	t.Run("Each token gets its own id", func(t *testing.T) {
		a, _ := issuer.Issue("admin@alvant.test", time.Hour)
		b, _ := issuer.Issue("admin@alvant.test", time.Hour)
		ca, err := issuer.Parse(a.Token)
		require.NoError(t, err)
		cb, err := issuer.Parse(b.Token)
		require.NoError(t, err)
		assert.NotEqual(t, ca.TokenID, cb.TokenID)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		tok, err := issuer.Issue("admin@alvant.test", time.Minute)
		require.NoError(t, err)

		later, _ := auth.NewIssuer("test-secret")
		later.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
		_, err = later.Parse(tok.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other, _ := auth.NewIssuer("other-secret")
		other.WithClock(clock)
		tok, err := other.Issue("admin@alvant.test", time.Hour)
		require.NoError(t, err)

		_, err = issuer.Parse(tok.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
