package repository

import (
	"context"

	"github.com/dannyallport-cain/we-date/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

func (r *InterestRepository) List(ctx context.Context) ([]models.Interest, error) {
	var list []models.Interest
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

// EnsureByNames upserts interests by name and returns the full rows.
func (r *InterestRepository) EnsureByNames(ctx context.Context, names []string) ([]models.Interest, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows := make([]models.Interest, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Interest{Name: n})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return nil, err
	}
	var out []models.Interest
	err = r.db.WithContext(ctx).Where("name IN ?", names).Find(&out).Error
	return out, err
}

// ReplaceForUser swaps a user's interest associations.
func (r *InterestRepository) ReplaceForUser(ctx context.Context, user *models.User, interests []models.Interest) error {
	return r.db.WithContext(ctx).Model(user).Association("Interests").Replace(interests)
}
