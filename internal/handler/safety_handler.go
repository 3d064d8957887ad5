package handler

import (
	"net/http"
	"strconv"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/models"
	"github.com/dannyallport-cain/we-date/internal/repository"

	"github.com/gin-gonic/gin"
)

type SafetyHandler struct {
	users   *repository.UserRepository
	blocks  *repository.BlockRepository
	reports *repository.ReportRepository
	matches *repository.MatchRepository
}

func NewSafetyHandler(users *repository.UserRepository, blocks *repository.BlockRepository, reports *repository.ReportRepository, matches *repository.MatchRepository) *SafetyHandler {
	return &SafetyHandler{users: users, blocks: blocks, reports: reports, matches: matches}
}

func pathUserID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.InvalidArgument("invalid user id")
	}
	return uint(id), nil
}

// Block hides the target from the caller in both directions and
// deactivates any existing match between them.
func (h *SafetyHandler) Block(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := pathUserID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if targetID == userID {
		abortWithError(c, domain.InvalidArgument("cannot block yourself"))
		return
	}
	exists, err := h.users.Exists(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !exists {
		abortWithError(c, domain.NotFound("user not found"))
		return
	}
	if err := h.blocks.Create(c.Request.Context(), userID, targetID); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.matches.DeactivatePair(c.Request.Context(), userID, targetID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": true})
}

func (h *SafetyHandler) Unblock(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := pathUserID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.blocks.Delete(c.Request.Context(), userID, targetID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": false})
}

// Report files a report against the target. Reported users never
// reappear in the caller's feed.
func (h *SafetyHandler) Report(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, err := pathUserID(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if targetID == userID {
		abortWithError(c, domain.InvalidArgument("cannot report yourself"))
		return
	}
	var req struct {
		Reason  string `json:"reason" binding:"required"`
		Details string `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}
	exists, err := h.users.Exists(c.Request.Context(), targetID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !exists {
		abortWithError(c, domain.NotFound("user not found"))
		return
	}
	report := &models.Report{
		ReporterID: userID,
		ReportedID: targetID,
		Reason:     req.Reason,
		Details:    req.Details,
	}
	if err := h.reports.Create(c.Request.Context(), report); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report_id": report.ID})
}
