package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/junoapp/juno-backend/internal/database"
	"github.com/junoapp/juno-backend/internal/dto"
	"github.com/junoapp/juno-backend/internal/middleware"
	"github.com/junoapp/juno-backend/internal/models"
	"github.com/junoapp/juno-backend/internal/repository"
	"github.com/junoapp/juno-backend/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type profileTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
}

func setupProfileTestEnv(t *testing.T) profileTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	profileService := services.NewProfileService(repository.NewUserRepository(db))
	handler := NewProfileHandler(profileService)
	tokens := services.NewTokenService("test-secret")

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens))
	api.GET("/profile", handler.GetProfile)
	api.PUT("/profile", handler.UpdateProfile)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return profileTestEnv{db: db, router: r, tokens: tokens}
}

func (env profileTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@school.edu",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env profileTestEnv) put(t *testing.T, user *models.User, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	token, err := env.tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/profile", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type profileResponse struct {
	Profile dto.ProfileDTO `json:"profile"`
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")

	w := env.put(t, user, map[string]interface{}{
		"bio":                "Riding to campus daily",
		"school":             "Purdue",
		"car_make":           "Honda",
		"car_model":          "Civic",
		"car_max_passengers": 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Riding to campus daily", response.Profile.Bio)
	require.Equal(t, "Honda", response.Profile.CarMake)
	require.Equal(t, 4, response.Profile.CarMaxPassengers)
	require.True(t, response.Profile.HasVehicle)
	// Untouched fields survive the partial update.
	require.Equal(t, "rider", response.Profile.Username)
}

func TestProfileHandler_HasVehicleRequiresCarFields(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")

	w := env.put(t, user, map[string]interface{}{"bio": "No car yet"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.Profile.HasVehicle)
}

func TestProfileHandler_UpdateUsernameTaken(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")
	env.createUser(t, "taken")

	w := env.put(t, user, map[string]interface{}{"username": "taken"})
	require.Equal(t, http.StatusConflict, w.Code)

	// Re-submitting the current username is not a conflict.
	w = env.put(t, user, map[string]interface{}{"username": "rider"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestProfileHandler_UpdateUsernameTooShort(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")

	w := env.put(t, user, map[string]interface{}{"username": "ab"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_OnboardingCannotRevert(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")

	w := env.put(t, user, map[string]interface{}{"onboarding_completed": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Profile.OnboardingCompleted)

	w = env.put(t, user, map[string]interface{}{"onboarding_completed": false})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_GetProfile(t *testing.T) {
	env := setupProfileTestEnv(t)
	user := env.createUser(t, "rider")

	token, err := env.tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Profile.Email)
}
