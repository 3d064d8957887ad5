package models

import (
	"time"
)

// Match is an unordered pair stored canonically: User1ID always holds the
// smaller identifier. The unique (user1_id, user2_id) index makes the pair
// unique no matter which side completed the match.
//
// Matches are soft-deactivated when either party blocks the other, and
// hard-deleted only by rewind.
type Match struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	User1ID  uint `gorm:"not null;uniqueIndex:idx_match_pair" json:"user1_id"`
	User2ID  uint `gorm:"not null;uniqueIndex:idx_match_pair" json:"user2_id"`
	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User1 User `gorm:"foreignKey:User1ID" json:"-"`
	User2 User `gorm:"foreignKey:User2ID" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}

// CanonicalPair orders two user ids deterministically (smaller first).
func CanonicalPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// OtherUserID returns the id of the party that is not userID.
func (m *Match) OtherUserID(userID uint) uint {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// OtherUser returns the loaded party that is not userID.
func (m *Match) OtherUser(userID uint) *User {
	if m.User1ID == userID {
		return &m.User2
	}
	return &m.User1
}
