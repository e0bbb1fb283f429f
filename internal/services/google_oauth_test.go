package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGoogleOAuthService_IsConfigured(t *testing.T) {
	log := zap.NewNop()

	require.False(t, NewGoogleOAuthService("", "", "http://localhost:8080", log).IsConfigured())
	require.False(t, NewGoogleOAuthService("id", "", "http://localhost:8080", log).IsConfigured())
	require.True(t, NewGoogleOAuthService("id", "secret", "http://localhost:8080", log).IsConfigured())
}

func TestGoogleOAuthService_GenerateState(t *testing.T) {
	svc := NewGoogleOAuthService("id", "secret", "http://localhost:8080", zap.NewNop())

	first, err := svc.GenerateState()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.GenerateState()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestGoogleOAuthService_AuthCodeURL(t *testing.T) {
	svc := NewGoogleOAuthService("client-id", "secret", "http://localhost:8080", zap.NewNop())

	url := svc.AuthCodeURL("state-token")
	require.Contains(t, url, "client_id=client-id")
	require.Contains(t, url, "state=state-token")
	require.True(t, strings.Contains(url, "redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fauth%2Fgoogle%2Fcallback"))
}
