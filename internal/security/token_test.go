package security

import (
	"testing"
	"time"

	"tunehub-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTokenVerifier_ValidateToken(t *testing.T) {
	const secret = "test-secret-0123456789abcdef"
	verifier := NewTokenVerifier(secret)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := MintToken(secret, 7, "c@example.com", domain.AccountRoleCustomer, time.Hour)
		assert.NoError(t, err)

		claims, err := verifier.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), claims.AccountID)
		assert.Equal(t, "c@example.com", claims.Email)
		assert.False(t, claims.IsAdmin())
	})

	t.Run("AdminRole", func(t *testing.T) {
		token, err := MintToken(secret, 1, "a@example.com", domain.AccountRoleAdmin, time.Hour)
		assert.NoError(t, err)

		claims, err := verifier.ValidateToken(token)
		assert.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		token, err := MintToken("some-other-secret", 7, "c@example.com", domain.AccountRoleCustomer, time.Hour)
		assert.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ExpiredRejected", func(t *testing.T) {
		token, err := MintToken(secret, 7, "c@example.com", domain.AccountRoleCustomer, -time.Minute)
		assert.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		_, err := verifier.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
