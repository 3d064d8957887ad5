package models

import (
	"time"
)

// Boost is a time-boxed visibility override. Expiry is lazy: all reads
// filter on expires_at, there is no deactivation sweep.
type Boost struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	StartedAt       time.Time `gorm:"not null;index" json:"started_at"`
	ExpiresAt       time.Time `gorm:"not null;index" json:"expires_at"`
	IsActive        bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Boost) TableName() string {
	return "boosts"
}
