package models

import (
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
)

// Swipe records a directional decision actor -> target.
//
// The unique (actor_id, target_id) index gives upsert semantics: a repeat
// decision overwrites the row, it never duplicates. CreatedAt survives
// overwrites, so "most recent swipe" (rewind) follows first-decision order.
type Swipe struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ActorID  uint   `gorm:"not null;uniqueIndex:idx_swipe_actor_target;index:idx_swipe_actor_created" json:"actor_id"`
	TargetID uint   `gorm:"not null;uniqueIndex:idx_swipe_actor_target;index" json:"target_id"`
	Action   string `gorm:"size:16;not null;index" json:"action"` // LIKE, PASS, SUPER_LIKE

	CreatedAt time.Time `gorm:"index:idx_swipe_actor_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Actor  User `gorm:"foreignKey:ActorID" json:"-"`
	Target User `gorm:"foreignKey:TargetID" json:"-"`
}

func (Swipe) TableName() string {
	return "swipes"
}

// Positive reports whether this swipe can complete a match.
func (s *Swipe) Positive() bool {
	return domain.PositiveAction(s.Action)
}
