package handler

import (
	"net/http"

	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	discovery *service.DiscoveryService
}

func NewDiscoveryHandler(discovery *service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discovery: discovery}
}

// Discover returns the scored, ordered candidate feed for the caller.
// ?expand_distance=true doubles the caller's distance ceiling for this
// request only.
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	userID := middleware.GetUserID(c)
	expand := c.Query("expand_distance") == "true"

	candidates, err := h.discovery.Discover(c.Request.Context(), userID, expand)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"count":      len(candidates),
	})
}
