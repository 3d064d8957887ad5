package handler

import (
	"net/http"
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"display_name" binding:"required"`
		DateOfBirth string `json:"date_of_birth" binding:"required"` // YYYY-MM-DD
		Gender      string `json:"gender" binding:"required"`
		ShowMe      string `json:"show_me"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		abortWithError(c, domain.InvalidArgument("date_of_birth must be YYYY-MM-DD"))
		return
	}
	user, tokens, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		ShowMe:      req.ShowMe,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "tokens": tokens})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}
	user, tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}
	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
