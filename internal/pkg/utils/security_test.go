package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("Hash and verify roundtrip", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")
		assert.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)

		assert.True(t, CheckPasswordHash("s3cret-password", hash))
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")
		assert.NoError(t, err)

		assert.False(t, CheckPasswordHash("another-password", hash))
	})
}

func TestJWT(t *testing.T) {
	secret := "test-jwt-secret"

	t.Run("Generate and parse roundtrip", func(t *testing.T) {
		token, err := GenerateJWT("user-123", "patient", secret, time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		userID, role, err := ParseJWT(token, secret)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userID)
		assert.Equal(t, "patient", role)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := GenerateJWT("user-123", "patient", secret, time.Hour)
		assert.NoError(t, err)

		_, _, err = ParseJWT(token, "another-secret")
		assert.Error(t, err)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		token, err := GenerateJWT("user-123", "patient", secret, -time.Minute)
		assert.NoError(t, err)

		_, _, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, _, err := ParseJWT("not-a-token", secret)
		assert.Error(t, err)
	})
}
