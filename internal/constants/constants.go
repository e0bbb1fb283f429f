package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID     = "userID"
	SessionCookieName    = "juno_oauth"
	SessionKeyOAuthState = "oauth_state"
)

// Validation limits
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6

	MinRidePassengers = 1
	MaxRidePassengers = 8
	MaxPricePerSeat   = 100.0

	SearchResultLimit = 20
	NearbyRideLimit   = 20
)

// Timing
const (
	TokenTTL        = 7 * 24 * time.Hour
	OAuthStateTTL   = 10 * time.Minute
	GeocodeTimeout  = 10 * time.Second
	GeocodeCacheTTL = 24 * time.Hour
)
