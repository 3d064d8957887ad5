package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/auth"
	"github.com/dannyallport-cain/we-date/internal/cache"
	"github.com/dannyallport-cain/we-date/internal/database"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/router"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	cfg := config.Load()
	cfg.Redis.Addr = mr.Addr()
	redisCache := cache.NewRedisCache(&cfg.Redis)

	return &testEnv{
		engine: router.Setup(cfg, db, redisCache),
		db:     db,
		cfg:    cfg,
	}
}

func (e *testEnv) createUser(t *testing.T, email string, premium bool) (*models.User, string) {
	t.Helper()
	now := time.Now()
	dob := now.AddDate(-28, 0, -30)
	lat, lng := 51.5074, -0.1278
	u := models.User{
		Email:       email,
		DisplayName: email,
		DateOfBirth: &dob,
		Gender:      "WOMAN",
		ShowMe:      "EVERYONE",
		AgeMin:      18,
		AgeMax:      99,
		Latitude:    &lat,
		Longitude:   &lng,
		LastActive:  now,
		IsPremium:   premium,
		IsActive:    true,
	}
	require.NoError(t, e.db.Create(&u).Error)
	require.NoError(t, e.db.Create(&models.Photo{UserID: u.ID, URL: "https://cdn.example.com/p.jpg"}).Error)

	token, err := auth.GenerateAccessToken(&e.cfg.JWT, u.ID, u.Email)
	require.NoError(t, err)
	return &u, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	env := setupEnv(t)
	w := env.do(t, http.MethodGet, "/api/v1/discover", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSwipeAndMatchFlow(t *testing.T) {
	env := setupEnv(t)
	a, tokenA := env.createUser(t, "a@x.com", false)
	b, tokenB := env.createUser(t, "b@x.com", false)

	w := env.do(t, http.MethodPost, "/api/v1/swipe", tokenA,
		gin.H{"target_user_id": b.ID, "action": "LIKE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Matched bool `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Matched)

	// b sees a in liked-you before swiping back
	w = env.do(t, http.MethodGet, "/api/v1/matches/likes", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.Equal(t, 1, likes.Count)

	w = env.do(t, http.MethodPost, "/api/v1/swipe", tokenB,
		gin.H{"target_user_id": a.ID, "action": "LIKE"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Matched)

	w = env.do(t, http.MethodGet, "/api/v1/matches", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var matches struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	assert.Equal(t, 1, matches.Count)
}

func TestRewindRequiresPremiumOverHTTP(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "free@x.com", false)

	w := env.do(t, http.MethodPost, "/api/v1/swipe/rewind", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuotaExceededOverHTTP(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "actor@x.com", false)

	var lastCode int
	for i := 0; i < env.cfg.Engine.FreeDailyLikes+1; i++ {
		target, _ := env.createUser(t, fmt.Sprintf("t%d@x.com", i), false)
		w := env.do(t, http.MethodPost, "/api/v1/swipe", token,
			gin.H{"target_user_id": target.ID, "action": "LIKE"})
		lastCode = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestBoostOverHTTP(t *testing.T) {
	env := setupEnv(t)
	_, token := env.createUser(t, "prem@x.com", true)

	w := env.do(t, http.MethodPost, "/api/v1/boost", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// second activation reports the live boost
	w = env.do(t, http.MethodPost, "/api/v1/boost", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBlockHidesFromDiscovery(t *testing.T) {
	env := setupEnv(t)
	_, tokenA := env.createUser(t, "a@x.com", false)
	b, _ := env.createUser(t, "b@x.com", false)

	w := env.do(t, http.MethodGet, "/api/v1/discover", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Equal(t, 1, feed.Count)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/users/%d/block", b.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/discover", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Equal(t, 0, feed.Count)
}
