package service

import (
	"context"
	"errors"
	"time"

	"github.com/dannyallport-cain/we-date/config"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"gorm.io/gorm"
)

// SwipeResult is the outcome of a recorded decision.
type SwipeResult struct {
	Matched   bool `json:"matched"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
}

// SwipeAllowance reports the actor's standing against the daily quota.
type SwipeAllowance struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
	Limit     int  `json:"limit"`
	IsPremium bool `json:"is_premium"`
}

// RewindResult returns what the undone swipe was, for caller display.
type RewindResult struct {
	TargetID uint   `json:"target_user_id"`
	Action   string `json:"action"`
}

// SwipeService persists directional decisions, detects reciprocal likes
// and owns the rewind operation. The swipe upsert and match creation run
// in one transaction; the canonical unique key, not a lock, guards racing
// reciprocal swipes.
type SwipeService struct {
	db       *gorm.DB
	users    *repository.UserRepository
	notifier *NotificationService
	cfg      *config.EngineConfig
}

func NewSwipeService(db *gorm.DB, users *repository.UserRepository, notifier *NotificationService, cfg *config.EngineConfig) *SwipeService {
	return &SwipeService{db: db, users: users, notifier: notifier, cfg: cfg}
}

// Record persists actor's decision on target, returning whether it
// completed a match. PASS is never rate-limited; LIKE/SUPER_LIKE consume
// the free-tier quota unless the actor is premium.
func (s *SwipeService) Record(ctx context.Context, actorID, targetID uint, action string) (*SwipeResult, error) {
	if !domain.ValidAction(action) {
		return nil, domain.InvalidArgument("action must be LIKE, PASS or SUPER_LIKE")
	}
	if actorID == targetID {
		return nil, domain.InvalidArgument("cannot swipe on yourself")
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("actor not found")
		}
		return nil, err
	}
	if ok, err := s.users.Exists(ctx, targetID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.NotFound("target user not found")
	}
	// a blocked user is indistinguishable from a missing one
	if blocked, err := repository.NewBlockRepository(s.db).IsBlockedEitherWay(ctx, actorID, targetID); err != nil {
		return nil, err
	} else if blocked {
		return nil, domain.NotFound("target user not found")
	}

	now := time.Now()
	result := &SwipeResult{Remaining: -1, Limit: -1}

	positive := domain.PositiveAction(action)
	if positive && !actor.PremiumNow(now) {
		allowance, err := s.allowance(ctx, actorID, false, now)
		if err != nil {
			return nil, err
		}
		if !allowance.Allowed {
			return nil, domain.QuotaExceeded(allowance.Limit)
		}
		result.Remaining = allowance.Remaining - 1
		result.Limit = allowance.Limit
	}

	var matchCreated bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		swipes := repository.NewSwipeRepository(tx)
		if err := swipes.Upsert(ctx, actorID, targetID, action); err != nil {
			return err
		}
		if !positive {
			return nil
		}
		reciprocal, err := swipes.Get(ctx, targetID, actorID)
		if err != nil {
			return err
		}
		if reciprocal == nil || !reciprocal.Positive() {
			return nil
		}
		created, err := repository.NewMatchRepository(tx).UpsertCanonical(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		result.Matched = true
		matchCreated = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Side effects are best-effort and never roll back the swipe.
	if action == domain.ActionSuperLike {
		s.notifier.NotifySuperLike(targetID, actorID)
	}
	if matchCreated {
		s.notifier.NotifyNewMatch(actorID, targetID)
	}
	return result, nil
}

// Limits reports the actor's current daily allowance.
func (s *SwipeService) Limits(ctx context.Context, actorID uint) (*SwipeAllowance, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("actor not found")
		}
		return nil, err
	}
	now := time.Now()
	return s.allowance(ctx, actorID, actor.PremiumNow(now), now)
}

// allowance counts today's positive swipes against the free-tier limit.
// The day starts at local midnight; the reset is computed, never scheduled.
func (s *SwipeService) allowance(ctx context.Context, actorID uint, premium bool, now time.Time) (*SwipeAllowance, error) {
	if premium {
		return &SwipeAllowance{Allowed: true, Remaining: 9999, Limit: -1, IsPremium: true}, nil
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := repository.NewSwipeRepository(s.db).CountPositiveSince(ctx, actorID, startOfDay)
	if err != nil {
		return nil, err
	}
	remaining := s.cfg.FreeDailyLikes - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &SwipeAllowance{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Limit:     s.cfg.FreeDailyLikes,
	}, nil
}

// Rewind undoes the actor's most recent swipe and hard-deletes any match
// it created. Premium only. Notifications already delivered for the undone
// match are not retracted.
func (s *SwipeService) Rewind(ctx context.Context, actorID uint) (*RewindResult, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("actor not found")
		}
		return nil, err
	}
	if !actor.PremiumNow(time.Now()) {
		return nil, domain.EntitlementRequired("rewind requires premium")
	}

	last, err := repository.NewSwipeRepository(s.db).LatestByActor(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("no swipe to rewind")
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewSwipeRepository(tx).DeleteByID(ctx, last.ID); err != nil {
			return err
		}
		matches := repository.NewMatchRepository(tx)
		m, err := matches.GetPair(ctx, actorID, last.TargetID)
		if err != nil {
			return err
		}
		if m != nil {
			// the one place a match is hard-deleted: it should never
			// have existed
			return matches.DeletePair(ctx, actorID, last.TargetID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RewindResult{TargetID: last.TargetID, Action: last.Action}, nil
}
