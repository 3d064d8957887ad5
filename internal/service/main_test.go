package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/database"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"
	"github.com/dannyallport-cain/we-date/internal/service"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func engineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		FreeDailyLikes:       20,
		CandidateBatchSize:   100,
		ResultSize:           20,
		RecencyWindowDays:    30,
		MinAge:               18,
		BoostDurationMinutes: 30,
		BoostCooldownDays:    30,
		NotifyTimeout:        2 * time.Second,
	}
}

func newSwipeService(db *gorm.DB, cfg *config.EngineConfig) *service.SwipeService {
	users := repository.NewUserRepository(db)
	notifier := service.NewNotificationService(repository.NewNotificationRepository(db), cfg.NotifyTimeout)
	return service.NewSwipeService(db, users, notifier, cfg)
}

func newDiscoveryService(db *gorm.DB, cfg *config.EngineConfig) *service.DiscoveryService {
	return service.NewDiscoveryService(
		repository.NewUserRepository(db),
		repository.NewDiscoveryRepository(db),
		repository.NewBoostRepository(db),
		cfg,
	)
}

type userOpt func(*models.User)

func premium() userOpt     { return func(u *models.User) { u.IsPremium = true } }
func verified() userOpt    { return func(u *models.User) { u.IsVerified = true } }
func at(lat, lng float64) userOpt {
	return func(u *models.User) { u.Latitude = &lat; u.Longitude = &lng }
}
func lastActive(daysAgo int) userOpt {
	return func(u *models.User) { u.LastActive = time.Now().AddDate(0, 0, -daysAgo) }
}
func maxDistance(miles int) userOpt {
	return func(u *models.User) { u.MaxDistance = miles }
}
// setInterests attaches interests by name, creating them on first use so
// two users can share one.
func setInterests(t *testing.T, db *gorm.DB, u *models.User, names ...string) {
	t.Helper()
	repo := repository.NewInterestRepository(db)
	rows, err := repo.EnsureByNames(context.Background(), names)
	if err != nil {
		t.Fatalf("failed to ensure interests: %v", err)
	}
	if err := repo.ReplaceForUser(context.Background(), u, rows); err != nil {
		t.Fatalf("failed to attach interests: %v", err)
	}
}

// seedUser builds an eligible user: active, with a photo and central
// London coordinates unless overridden.
func seedUser(t *testing.T, db *gorm.DB, email string, age int, gender string, opts ...userOpt) *models.User {
	t.Helper()
	now := time.Now()
	dob := now.AddDate(-age, 0, -30)
	lat, lng := 51.5074, -0.1278
	u := models.User{
		Email:       email,
		DisplayName: email,
		DateOfBirth: &dob,
		Gender:      gender,
		ShowMe:      "EVERYONE",
		AgeMin:      18,
		AgeMax:      99,
		Latitude:    &lat,
		Longitude:   &lng,
		LastActive:  now,
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(&u)
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	photo := models.Photo{UserID: u.ID, URL: "https://cdn.example.com/" + email + ".jpg"}
	if err := db.Create(&photo).Error; err != nil {
		t.Fatalf("failed to create photo for %s: %v", email, err)
	}
	return &u
}
