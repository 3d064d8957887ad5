package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dannyallport-cain/we-date/internal/cache"
	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matches *repository.MatchRepository
	swipes  *repository.SwipeRepository
	cache   *cache.RedisCache
}

func NewMatchHandler(matches *repository.MatchRepository, swipes *repository.SwipeRepository, cache *cache.RedisCache) *MatchHandler {
	return &MatchHandler{matches: matches, swipes: swipes, cache: cache}
}

type matchView struct {
	MatchID   uint         `json:"match_id"`
	User      *models.User `json:"user"`
	MatchedAt time.Time    `json:"matched_at"`
}

// List returns the caller's active matches shaped around the other user.
func (h *MatchHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rows, err := h.matches.ListActiveForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	views := make([]matchView, 0, len(rows))
	for i := range rows {
		views = append(views, matchView{
			MatchID:   rows[i].ID,
			User:      rows[i].OtherUser(userID),
			MatchedAt: rows[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"matches": views, "count": len(views)})
}

// Likes returns who liked the caller. The count is served cache-first
// from Redis; on a miss the database count is stored back with a TTL.
func (h *MatchHandler) Likes(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	count, hit, err := h.cache.GetLikedYouCount(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[matches] liked-you cache read failed for user %d: %v", userID, err)
	}
	if !hit {
		count, err = h.swipes.CountIncomingLikers(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := h.cache.SetLikedYouCount(c.Request.Context(), userID, count); err != nil {
			log.Printf("[matches] liked-you cache write failed for user %d: %v", userID, err)
		}
	}

	likes, err := h.swipes.IncomingLikers(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	likers := make([]gin.H, 0, len(likes))
	for i := range likes {
		likers = append(likers, gin.H{
			"user":     likes[i].Actor,
			"action":   likes[i].Action,
			"liked_at": likes[i].CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "likers": likers})
}
