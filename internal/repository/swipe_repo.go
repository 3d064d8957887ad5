package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SwipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// Upsert inserts or overwrites the decision for (actor, target). The unique
// pair index guarantees one row per pair; a conflicting insert only
// reassigns action and updated_at, created_at keeps the first decision time.
func (r *SwipeRepository) Upsert(ctx context.Context, actorID, targetID uint, action string) error {
	swipe := models.Swipe{
		ActorID:  actorID,
		TargetID: targetID,
		Action:   action,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
		}).
		Create(&swipe).Error
}

// Get returns the swipe actor -> target, or nil when none exists.
func (r *SwipeRepository) Get(ctx context.Context, actorID, targetID uint) (*models.Swipe, error) {
	var s models.Swipe
	err := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestByActor returns the actor's most recently created swipe.
func (r *SwipeRepository) LatestByActor(ctx context.Context, actorID uint) (*models.Swipe, error) {
	var s models.Swipe
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC, id DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SwipeRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Swipe{}, id).Error
}

// CountPositiveSince counts the actor's LIKE/SUPER_LIKE decisions created
// at or after since. PASS never counts.
func (r *SwipeRepository) CountPositiveSince(ctx context.Context, actorID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("actor_id = ? AND action IN ? AND created_at >= ?",
			actorID, []string{domain.ActionLike, domain.ActionSuperLike}, since).
		Count(&count).Error
	return count, err
}

// IncomingLikers lists positive swipes toward userID from actors the user
// has not swiped on and has not blocked, newest first.
func (r *SwipeRepository) IncomingLikers(ctx context.Context, userID uint, limit int) ([]models.Swipe, error) {
	var swipes []models.Swipe
	err := r.db.WithContext(ctx).
		Preload("Actor.Photos").
		Where("target_id = ? AND action IN ?", userID, []string{domain.ActionLike, domain.ActionSuperLike}).
		Where("actor_id NOT IN (?)", r.db.Model(&models.Swipe{}).Select("target_id").Where("actor_id = ?", userID)).
		Where("actor_id NOT IN (?)", r.db.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ? AND deleted_at IS NULL", userID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&swipes).Error
	return swipes, err
}

// CountIncomingLikers is the DB fallback behind the cached liked-you count.
func (r *SwipeRepository) CountIncomingLikers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("target_id = ? AND action IN ?", userID, []string{domain.ActionLike, domain.ActionSuperLike}).
		Where("actor_id NOT IN (?)", r.db.Model(&models.Swipe{}).Select("target_id").Where("actor_id = ?", userID)).
		Where("actor_id NOT IN (?)", r.db.Model(&models.Block{}).Select("blocked_id").Where("blocker_id = ? AND deleted_at IS NULL", userID)).
		Count(&count).Error
	return count, err
}
