package repository_test

import (
	"testing"
	"time"

	"github.com/dannyallport-cain/we-date/internal/database"
	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setup in-memory DB
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

// seedUser inserts a minimally eligible user: active, with one photo and
// coordinates near central London.
func seedUser(t *testing.T, db *gorm.DB, email string, age int, gender string) *models.User {
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
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	photo := models.Photo{UserID: u.ID, URL: "https://cdn.example.com/" + email + ".jpg"}
	if err := db.Create(&photo).Error; err != nil {
		t.Fatalf("failed to create photo for %s: %v", email, err)
	}
	return &u
}
