package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAuthorizationHeader(t *testing.T) {
	t.Run("should read bearer token", func(t *testing.T) {
		s, err := FromAuthorizationHeader("Bearer abc.def.ghi")

		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", s.Token)
		assert.True(t, s.ExpiresAt.IsZero())
	})

	t.Run("should accept lowercase scheme", func(t *testing.T) {
		s, err := FromAuthorizationHeader("bearer token-1")

		require.NoError(t, err)
		assert.Equal(t, "token-1", s.Token)
	})

	t.Run("should reject other schemes and empty values", func(t *testing.T) {
		for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcjpwYXNz"} {
			_, err := FromAuthorizationHeader(header)
			assert.ErrorIs(t, err, ErrNoSession, "header %q", header)
		}
	})
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, time.May, 28, 12, 0, 0, 0, time.UTC)

	assert.False(t, Session{Token: "t"}.Expired(now))
	assert.False(t, Session{Token: "t", ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Session{Token: "t", ExpiresAt: now}.Expired(now))
}

func TestContext(t *testing.T) {
	_, err := Current(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	ctx := WithSession(context.Background(), Session{Token: "abc"})
	s, err := Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, "Bearer", s.OAuth2Token().Type())
}
