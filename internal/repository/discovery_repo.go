package repository

import (
	"context"
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
)

// CandidateQuery carries the viewing user's eligibility window, already
// resolved by the discovery service.
type CandidateQuery struct {
	ViewerID     uint
	ShowMe       string
	MinBirthDate time.Time
	MaxBirthDate time.Time
	ActiveSince  time.Time
	Limit        int
}

// DiscoveryRepository builds the raw candidate batch for a viewer. The
// exclusion set (self, already swiped, blocks in either direction, reports)
// is pushed into the query so the batch arrives ready for scoring.
type DiscoveryRepository struct {
	db *gorm.DB
}

func NewDiscoveryRepository(db *gorm.DB) *DiscoveryRepository {
	return &DiscoveryRepository{db: db}
}

// Candidates returns up to q.Limit eligible users ordered by recency of
// activity. Ordering is provisional; the scoring engine re-sorts.
func (r *DiscoveryRepository) Candidates(ctx context.Context, q CandidateQuery) ([]models.User, error) {
	db := r.db.WithContext(ctx)

	swiped := db.Model(&models.Swipe{}).Select("target_id").Where("actor_id = ?", q.ViewerID)
	blockedMe := db.Model(&models.Block{}).Select("blocker_id").Where("blocked_id = ? AND deleted_at IS NULL", q.ViewerID)
	iBlocked := db.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ? AND deleted_at IS NULL", q.ViewerID)
	reported := db.Model(&models.Report{}).Select("reported_id").Where("reporter_id = ? AND deleted_at IS NULL", q.ViewerID)

	query := db.Model(&models.User{}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Interests").
		Preload("Prompts").
		Where("id != ?", q.ViewerID).
		Where("is_active = ?", true).
		Where("id NOT IN (?)", swiped).
		Where("id NOT IN (?)", blockedMe).
		Where("id NOT IN (?)", iBlocked).
		Where("id NOT IN (?)", reported).
		Where("EXISTS (SELECT 1 FROM photos p WHERE p.user_id = users.id)").
		Where("date_of_birth >= ? AND date_of_birth <= ?", q.MinBirthDate, q.MaxBirthDate).
		Where("last_active >= ?", q.ActiveSince)

	if q.ShowMe != domain.ShowMeEveryone {
		query = query.Where("gender = ?", q.ShowMe)
	}

	var users []models.User
	err := query.Order("last_active DESC").Limit(q.Limit).Find(&users).Error
	return users, err
}
