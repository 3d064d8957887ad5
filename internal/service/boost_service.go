package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"gorm.io/gorm"
)

// BoostService grants the time-boxed visibility override. Expiry is read
// lazily from expires_at everywhere, so activation is the only write.
type BoostService struct {
	users  *repository.UserRepository
	boosts *repository.BoostRepository
	cfg    *config.EngineConfig
}

func NewBoostService(users *repository.UserRepository, boosts *repository.BoostRepository, cfg *config.EngineConfig) *BoostService {
	return &BoostService{users: users, boosts: boosts, cfg: cfg}
}

// Activate creates a boost for the actor. Premium only; refused while a
// boost is still live. The rolling cooldown blocks activation only when
// EnforceBoostCooldown is set, otherwise it is advisory and logged.
func (s *BoostService) Activate(ctx context.Context, actorID uint) (*models.Boost, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("actor not found")
		}
		return nil, err
	}

	now := time.Now()
	if !actor.PremiumNow(now) {
		return nil, domain.EntitlementRequired("boost requires premium")
	}

	if active, err := s.boosts.ActiveForUser(ctx, actorID, now); err != nil {
		return nil, err
	} else if active != nil {
		return nil, domain.BoostAlreadyActive(active.ExpiresAt)
	}

	last, err := s.boosts.LatestForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if last != nil {
		cooldownEnd := last.StartedAt.AddDate(0, 0, s.cfg.BoostCooldownDays)
		if cooldownEnd.After(now) {
			if s.cfg.EnforceBoostCooldown {
				return nil, domain.CooldownActive(cooldownEnd)
			}
			log.Printf("[boost] cooldown until %s not enforced for user %d", cooldownEnd.Format(time.RFC3339), actorID)
		}
	}

	boost := &models.Boost{
		UserID:          actorID,
		DurationMinutes: s.cfg.BoostDurationMinutes,
		StartedAt:       now,
		ExpiresAt:       now.Add(time.Duration(s.cfg.BoostDurationMinutes) * time.Minute),
		IsActive:        true,
	}
	if err := s.boosts.Create(ctx, boost); err != nil {
		return nil, err
	}
	return boost, nil
}
