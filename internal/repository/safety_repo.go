package repository

import (
	"context"

	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create records blocker -> blocked; re-blocking is a no-op.
func (r *BlockRepository) Create(ctx context.Context, blockerID, blockedID uint) error {
	b := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blocker_id"}, {Name: "blocked_id"}},
			DoNothing: true,
		}).
		Create(&b).Error
}

func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	return r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

// IsBlockedEitherWay reports whether a block exists in either direction.
func (r *BlockRepository) IsBlockedEitherWay(ctx context.Context, a, b uint) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&c).Error
	return c > 0, err
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
