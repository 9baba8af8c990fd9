package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACVerifier_GenerateAndVerify(t *testing.T) {
	v := NewHMACVerifier("test_secret_key_1234567890", 15*time.Minute)

	for _, subject := range []string{"admin", "analyst@example.com", "user123"} {
		t.Run(subject, func(t *testing.T) {
			token, err := v.GenerateToken(subject)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			id, err := v.Verify(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, subject, id.Subject)
		})
	}
}

func TestHMACVerifier_InvalidTokens(t *testing.T) {
	secret := "test_secret_key_1234567890"
	v := NewHMACVerifier(secret, 15*time.Minute)

	valid, err := v.GenerateToken("testuser")
	require.NoError(t, err)

	expired, err := NewHMACVerifier(secret, -time.Hour).GenerateToken("testuser")
	require.NoError(t, err)

	foreign, err := NewHMACVerifier("wrong_secret_key", 15*time.Minute).GenerateToken("testuser")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "testuser"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expired},
		{name: "wrong secret key", token: foreign},
		{name: "tampered token", token: valid + "tampered"},
		{name: "alg none", token: none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, id.Subject)
		})
	}
}

func TestHMACVerifier_ExpiredMessage(t *testing.T) {
	v := NewHMACVerifier("test_secret_key", -time.Minute)

	token, err := v.GenerateToken("testuser")
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}
