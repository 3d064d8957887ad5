package models

import (
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	DisplayName  string     `gorm:"size:64;not null" json:"display_name"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Gender       string     `gorm:"size:16;not null;index" json:"gender"`
	Bio          string     `gorm:"type:text" json:"bio"`
	JobTitle     string     `gorm:"size:128" json:"job_title"`
	Company      string     `gorm:"size:128" json:"company"`
	Location     string     `gorm:"size:128" json:"location"`

	// Discovery preferences
	ShowMe      string   `gorm:"size:16;not null;default:'EVERYONE'" json:"show_me"`
	AgeMin      int      `gorm:"default:18" json:"age_min"`
	AgeMax      int      `gorm:"default:99" json:"age_max"`
	Latitude    *float64 `gorm:"type:decimal(10,8)" json:"-"`
	Longitude   *float64 `gorm:"type:decimal(11,8)" json:"-"`
	MaxDistance int      `gorm:"default:0" json:"max_distance"` // miles, 0 = no ceiling

	LastActive   time.Time  `gorm:"index" json:"last_active"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	IsPremium    bool       `gorm:"default:false" json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until"`
	IsActive     bool       `gorm:"default:true;index" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Photos    []Photo        `gorm:"foreignKey:UserID" json:"photos,omitempty"`
	Interests []Interest     `gorm:"many2many:user_interests" json:"interests,omitempty"`
	Prompts   []PromptAnswer `gorm:"foreignKey:UserID" json:"prompts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Age returns whole years from DOB at time t; 0 when DOB is unset.
func (u *User) Age(t time.Time) int {
	if u.DateOfBirth == nil {
		return 0
	}
	age := t.Year() - u.DateOfBirth.Year()
	if t.YearDay() < u.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// PremiumNow reports whether the paid flag is effective at time t.
// A nil PremiumUntil means no expiry on record.
func (u *User) PremiumNow(t time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumUntil == nil || u.PremiumUntil.After(t)
}

// HasCoordinates reports whether both latitude and longitude are set.
func (u *User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// Completeness derives the 0-100 profile completeness score. It is never
// stored; photos, interests and prompts must be loaded by the caller.
//
// Breakdown: photos 10 each (max 3), bio 20 when longer than 10 chars,
// job title or company 15, interests 3 each (max 5), prompt answers
// 10/3 each (max 3), non-empty location 10.
func (u *User) Completeness() int {
	score := 0.0

	photos := len(u.Photos)
	if photos > 3 {
		photos = 3
	}
	score += float64(photos * 10)

	if len(strings.TrimSpace(u.Bio)) > 10 {
		score += 20
	}
	if u.JobTitle != "" || u.Company != "" {
		score += 15
	}

	interests := len(u.Interests)
	if interests > 5 {
		interests = 5
	}
	score += float64(interests * 3)

	prompts := len(u.Prompts)
	if prompts > 3 {
		prompts = 3
	}
	score += float64(prompts) * (10.0 / 3.0)

	if strings.TrimSpace(u.Location) != "" {
		score += 10
	}

	total := int(math.Round(score))
	if total > 100 {
		total = 100
	}
	return total
}

type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	Position  int       `gorm:"default:0" json:"position"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

type Interest struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Icon string `gorm:"size:16" json:"icon"`
}

func (Interest) TableName() string {
	return "interests"
}

type PromptAnswer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Question  string    `gorm:"size:255;not null" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

func (PromptAnswer) TableName() string {
	return "prompt_answers"
}
