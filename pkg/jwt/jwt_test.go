package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour, "activity-service")
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "activity-service", claims.Issuer)
}

func TestTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour, "activity-service")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-a", time.Hour, "activity-service")
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", time.Hour, "activity-service")
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("secret", -time.Minute, "activity-service")
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour, "activity-service")
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
