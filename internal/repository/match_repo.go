package repository

import (
	"context"
	"errors"

	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertCanonical creates the match for the canonical pair if absent and
// reports whether a row was created. DoNothing on the unique pair index
// makes concurrent reciprocal swipes converge on exactly one row.
func (r *MatchRepository) UpsertCanonical(ctx context.Context, a, b uint) (bool, error) {
	u1, u2 := models.CanonicalPair(a, b)
	m := models.Match{User1ID: u1, User2ID: u2, IsActive: true}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).
		Create(&m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetPair returns the match for the canonical pair, or nil when none exists.
func (r *MatchRepository) GetPair(ctx context.Context, a, b uint) (*models.Match, error) {
	u1, u2 := models.CanonicalPair(a, b)
	var m models.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeletePair hard-deletes the match for the canonical pair. Only rewind
// uses this; blocking deactivates instead.
func (r *MatchRepository) DeletePair(ctx context.Context, a, b uint) error {
	u1, u2 := models.CanonicalPair(a, b)
	return r.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Delete(&models.Match{}).Error
}

// DeactivatePair soft-deactivates the match between two users.
func (r *MatchRepository) DeactivatePair(ctx context.Context, a, b uint) error {
	u1, u2 := models.CanonicalPair(a, b)
	return r.db.WithContext(ctx).Model(&models.Match{}).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Update("is_active", false).Error
}

// ListActiveForUser returns the user's active matches with both parties
// and their photos loaded, newest first.
func (r *MatchRepository) ListActiveForUser(ctx context.Context, userID uint) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("User1.Photos").
		Preload("User2.Photos").
		Where("is_active = ? AND (user1_id = ? OR user2_id = ?)", true, userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}
