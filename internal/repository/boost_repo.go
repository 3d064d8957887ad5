package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
)

type BoostRepository struct {
	db *gorm.DB
}

func NewBoostRepository(db *gorm.DB) *BoostRepository {
	return &BoostRepository{db: db}
}

func (r *BoostRepository) Create(ctx context.Context, b *models.Boost) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// ActiveForUser returns the user's unexpired boost, or nil. Expiry is
// evaluated against now; inert rows are never updated.
func (r *BoostRepository) ActiveForUser(ctx context.Context, userID uint, now time.Time) (*models.Boost, error) {
	var b models.Boost
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("expires_at DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// LatestForUser returns the most recently started boost regardless of
// expiry, for the cooldown check.
func (r *BoostRepository) LatestForUser(ctx context.Context, userID uint) (*models.Boost, error) {
	var b models.Boost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ActiveUserIDs returns which of userIDs hold an unexpired boost at now.
func (r *BoostRepository) ActiveUserIDs(ctx context.Context, userIDs []uint, now time.Time) (map[uint]bool, error) {
	active := make(map[uint]bool, len(userIDs))
	if len(userIDs) == 0 {
		return active, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Boost{}).
		Where("user_id IN ? AND is_active = ? AND expires_at > ?", userIDs, true, now).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		active[id] = true
	}
	return active, nil
}
