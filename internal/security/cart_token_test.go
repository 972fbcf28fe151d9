package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTokenRoundTrip(t *testing.T) {
	tokens := NewCartTokens("test-secret", time.Hour)

	raw, err := tokens.IssueCartToken("cart-42")
	require.NoError(t, err)

	cartID, err := tokens.DecodeCartToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "cart-42", cartID)
}

func TestCartTokenWrongSecretRejected(t *testing.T) {
	issued, err := NewCartTokens("secret-a", time.Hour).IssueCartToken("cart-42")
	require.NoError(t, err)

	_, err = NewCartTokens("secret-b", time.Hour).DecodeCartToken(issued)
	assert.Error(t, err)
}

func TestCartTokenGarbageRejected(t *testing.T) {
	tokens := NewCartTokens("test-secret", time.Hour)
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tokens.DecodeCartToken(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestCartTokenExpiredRejected(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{
		"cart_id": "cart-42",
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewCartTokens("test-secret", time.Hour).DecodeCartToken(raw)
	assert.Error(t, err)
}

func TestCartTokenMissingCartID(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewCartTokens("test-secret", time.Hour).DecodeCartToken(raw)
	assert.Error(t, err)
}
