package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := TokenManager{Secret: []byte("test-secret"), TTL: time.Hour}

	token, expiresAt, err := manager.Issue("user-42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	subject, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", subject)
}

func TestTokenDefaultTTL(t *testing.T) {
	manager := TokenManager{Secret: []byte("test-secret")}

	_, expiresAt, err := manager.Issue("user-42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestTokenRequiresSecret(t *testing.T) {
	manager := TokenManager{}
	_, _, err := manager.Issue("user-42")
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	manager := TokenManager{Secret: secret, TTL: time.Hour}
	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := TokenManager{Secret: []byte("secret-a"), TTL: time.Hour}
	verifier := TokenManager{Secret: []byte("secret-b"), TTL: time.Hour}

	token, _, err := issuer.Issue("user-42")
	require.NoError(t, err)
	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := TokenManager{Secret: []byte("test-secret"), TTL: time.Hour}
	_, err := manager.Parse("not.a.token")
	assert.Error(t, err)
}
