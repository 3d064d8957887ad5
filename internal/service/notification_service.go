package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"
)

// NotificationService is the engine's fire-and-forget sink. Delivery runs
// under a bounded timeout and failures are logged, never surfaced: a lost
// notification must not roll back the swipe or match that caused it.
type NotificationService struct {
	repo    *repository.NotificationRepository
	timeout time.Duration
}

func NewNotificationService(repo *repository.NotificationRepository, timeout time.Duration) *NotificationService {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &NotificationService{repo: repo, timeout: timeout}
}

func (s *NotificationService) notify(userID uint, notifType, title, body string, data map[string]interface{}) {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	err := s.repo.Create(ctx, &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		log.Printf("[notify] deliver %s to user %d failed: %v", notifType, userID, err)
	}
}

func (s *NotificationService) NotifySuperLike(targetID, fromID uint) {
	s.notify(targetID, domain.NotificationSuperLike,
		"Someone Super Liked you!",
		"You got a Super Like! Check it out.",
		map[string]interface{}{"from_user_id": fromID})
}

// NotifyNewMatch informs both parties of a freshly created match.
func (s *NotificationService) NotifyNewMatch(a, b uint) {
	s.notify(a, domain.NotificationNewMatch,
		"It's a Match!",
		"You matched with someone!",
		map[string]interface{}{"matched_user_id": b})
	s.notify(b, domain.NotificationNewMatch,
		"It's a Match!",
		"You matched with someone!",
		map[string]interface{}{"matched_user_id": a})
}
