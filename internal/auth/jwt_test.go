package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func TestNewTokenService(t *testing.T) {
	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := NewTokenService("short", time.Hour)
		assert.Error(t, err)
	})

	t.Run("accepts a long enough secret", func(t *testing.T) {
		svc, err := NewTokenService(testSecret, time.Hour)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	signed, err := svc.Generate("c7f6a1d2-0b5e-4a6c-9a1f-2d3e4f5a6b7c")
	require.NoError(t, err)

	userID, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "c7f6a1d2-0b5e-4a6c-9a1f-2d3e4f5a6b7c", userID)
}

func TestValidateRejections(t *testing.T) {
	svc, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		shortLived, err := NewTokenService(testSecret, -time.Minute)
		require.NoError(t, err)

		signed, err := shortLived.Generate("user-1")
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("another-secret-9876543210", time.Hour)
		require.NoError(t, err)

		signed, err := other.Generate("user-1")
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.Error(t, err)
	})
}
