package handler

import (
	"net/http"

	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/gin-gonic/gin"
)

type BoostHandler struct {
	boosts *service.BoostService
}

func NewBoostHandler(boosts *service.BoostService) *BoostHandler {
	return &BoostHandler{boosts: boosts}
}

// Activate starts a visibility boost for the caller. Premium only.
func (h *BoostHandler) Activate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	boost, err := h.boosts.Activate(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"boost": boost})
}
