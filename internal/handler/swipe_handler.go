package handler

import (
	"log"
	"net/http"

	"github.com/dannyallport-cain/we-date/internal/cache"
	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipes *service.SwipeService
	cache  *cache.RedisCache
}

func NewSwipeHandler(swipes *service.SwipeService, cache *cache.RedisCache) *SwipeHandler {
	return &SwipeHandler{swipes: swipes, cache: cache}
}

// Record persists a swipe. A positive action changes the target's
// liked-you count, so its cached value is invalidated after commit.
func (h *SwipeHandler) Record(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		TargetUserID uint   `json:"target_user_id" binding:"required"`
		Action       string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}

	result, err := h.swipes.Record(c.Request.Context(), userID, req.TargetUserID, req.Action)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if domain.PositiveAction(req.Action) {
		if err := h.cache.InvalidateLikedYouCount(c.Request.Context(), req.TargetUserID); err != nil {
			log.Printf("[swipe] liked-you cache invalidation failed for user %d: %v", req.TargetUserID, err)
		}
	}
	c.JSON(http.StatusOK, result)
}

// Rewind undoes the caller's most recent swipe. Premium only.
func (h *SwipeHandler) Rewind(c *gin.Context) {
	userID := middleware.GetUserID(c)
	result, err := h.swipes.Rewind(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if domain.PositiveAction(result.Action) {
		if err := h.cache.InvalidateLikedYouCount(c.Request.Context(), result.TargetID); err != nil {
			log.Printf("[swipe] liked-you cache invalidation failed for user %d: %v", result.TargetID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"rewound": result})
}

// Limits reports the caller's remaining daily likes.
func (h *SwipeHandler) Limits(c *gin.Context) {
	userID := middleware.GetUserID(c)
	allowance, err := h.swipes.Limits(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, allowance)
}
