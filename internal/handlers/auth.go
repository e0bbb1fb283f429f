package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/constants"
	"github.com/junoapp/juno-backend/internal/dto"
	apierrors "github.com/junoapp/juno-backend/internal/errors"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	oauthService *services.GoogleOAuthService
	log          *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *services.AuthService,
	tokenService *services.TokenService,
	oauthService *services.GoogleOAuthService,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		oauthService: oauthService,
		log:          log,
	}
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *dto.ProfileDTO, token string) {
	c.JSON(status, gin.H{
		"token": token,
		"user":  user,
	})
}

// Signup registers a new user and issues a bearer token.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username  string `json:"username" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	profile := dto.ToProfileDTO(*user)
	h.respondWithToken(c, http.StatusCreated, &profile, token)
}

// Login authenticates a user by email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	profile := dto.ToProfileDTO(*user)
	h.respondWithToken(c, http.StatusOK, &profile, token)
}

// Logout is a client-side operation for stateless bearer tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToProfileDTO(*user),
	})
}

// GoogleLogin redirects to the provider consent screen. The state parameter
// rides in the cookie session until the callback.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.oauthService.IsConfigured() {
		apierrors.InternalError(c, "Google OAuth not configured")
		return
	}

	state, err := h.oauthService.GenerateState()
	if err != nil {
		h.log.Error("failed to generate oauth state", zap.Error(err))
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyOAuthState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.AuthCodeURL(state))
}

// GoogleCallback resolves the provider assertion into a user and issues a
// bearer token. First-time resolution creates the user; the operation is
// idempotent per email.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn("google oauth denied", zap.String("error", errParam))
		apierrors.Unauthorized(c, "Provider authentication failed")
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(constants.SessionKeyOAuthState).(string)
	session.Delete(constants.SessionKeyOAuthState)
	if err := session.Save(); err != nil {
		h.log.Warn("failed to clear oauth state", zap.Error(err))
	}

	state := c.Query("state")
	if state == "" || state != expectedState {
		apierrors.Unauthorized(c, "Invalid state parameter")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.Unauthorized(c, "Authorization code not found")
		return
	}

	profile, err := h.oauthService.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Warn("google oauth exchange failed", zap.Error(err))
		apierrors.Unauthorized(c, "Provider authentication failed")
		return
	}

	user, err := h.authService.ResolveOrCreateFromProvider(*profile)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	h.log.Info("oauth login",
		zap.Uint64("user_id", user.ID),
		zap.String("email", user.Email))

	userProfile := dto.ToProfileDTO(*user)
	h.respondWithToken(c, http.StatusOK, &userProfile, token)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Username must be at least %d characters", constants.MinUsernameLength))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidEmail):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
