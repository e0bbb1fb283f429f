package services

import (
	"testing"
	"time"

	"github.com/junoapp/juno-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := NewTokenService("test-secret")

	user := &models.User{ID: 42, Email: "rider@school.edu"}
	token, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, "rider@school.edu", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret")
	other := NewTokenService("other-secret")

	token, err := tokens.Issue(&models.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	tokens := &TokenService{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := tokens.Issue(&models.User{ID: 1, Email: "a@b.co"})
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	tokens := NewTokenService("test-secret")

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Validate(input)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
