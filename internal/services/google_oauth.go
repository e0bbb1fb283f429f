package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuthService drives the provider side of the login flow: redirect
// URL construction, code exchange, and userinfo retrieval.
type GoogleOAuthService struct {
	config      *oauth2.Config
	log         *zap.Logger
	userInfoURL string
}

// NewGoogleOAuthService creates a new GoogleOAuthService.
func NewGoogleOAuthService(clientID, clientSecret, baseURL string, log *zap.Logger) *GoogleOAuthService {
	return &GoogleOAuthService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		log:         log,
		userInfoURL: defaultUserInfoURL,
	}
}

// IsConfigured returns true if Google OAuth credentials are set.
func (s *GoogleOAuthService) IsConfigured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// GenerateState returns a cryptographically random state parameter.
func (s *GoogleOAuthService) GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// AuthCodeURL returns the provider consent URL for the given state.
func (s *GoogleOAuthService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Exchange trades the authorization code for the provider profile.
func (s *GoogleOAuthService) Exchange(ctx context.Context, code string) (*ProviderProfile, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := s.config.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("provider profile missing email")
	}

	s.log.Debug("google user info fetched",
		zap.String("google_id", info.ID),
		zap.String("email", info.Email))

	return &ProviderProfile{
		ProviderID: info.ID,
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		PictureURL: info.Picture,
	}, nil
}
