package handler

import (
	"net/http"
	"time"

	"github.com/dannyallport-cain/we-date/internal/domain"
	"github.com/dannyallport-cain/we-date/internal/middleware"
	"github.com/dannyallport-cain/we-date/internal/repository"
	"github.com/dannyallport-cain/we-date/pkg/geo"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	users     *repository.UserRepository
	interests *repository.InterestRepository
}

func NewMeHandler(users *repository.UserRepository, interests *repository.InterestRepository) *MeHandler {
	return &MeHandler{users: users, interests: interests}
}

// GetProfile returns the caller's profile including the derived
// completeness score.
func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"age":          u.Age(time.Now()),
		"completeness": u.Completeness(),
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		DisplayName *string  `json:"display_name"`
		Bio         *string  `json:"bio"`
		JobTitle    *string  `json:"job_title"`
		Company     *string  `json:"company"`
		Location    *string  `json:"location"`
		ShowMe      *string  `json:"show_me"`
		AgeMin      *int     `json:"age_min"`
		AgeMax      *int     `json:"age_max"`
		MaxDistance *int     `json:"max_distance"`
		Interests   []string `json:"interests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}

	u, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.JobTitle != nil {
		u.JobTitle = *req.JobTitle
	}
	if req.Company != nil {
		u.Company = *req.Company
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.ShowMe != nil {
		switch *req.ShowMe {
		case domain.ShowMeMan, domain.ShowMeWoman, domain.ShowMeEveryone:
			u.ShowMe = *req.ShowMe
		default:
			abortWithError(c, domain.InvalidArgument("show_me must be MAN, WOMAN or EVERYONE"))
			return
		}
	}
	if req.AgeMin != nil {
		u.AgeMin = *req.AgeMin
	}
	if req.AgeMax != nil {
		u.AgeMax = *req.AgeMax
	}
	if u.AgeMin < 18 || u.AgeMax < u.AgeMin {
		abortWithError(c, domain.InvalidArgument("invalid age range"))
		return
	}
	if req.MaxDistance != nil {
		if *req.MaxDistance < 0 {
			abortWithError(c, domain.InvalidArgument("max_distance must be >= 0"))
			return
		}
		u.MaxDistance = *req.MaxDistance
	}
	if err := h.users.Update(c.Request.Context(), u); err != nil {
		abortWithError(c, err)
		return
	}

	if req.Interests != nil {
		rows, err := h.interests.EnsureByNames(c.Request.Context(), req.Interests)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := h.interests.ReplaceForUser(c.Request.Context(), u, rows); err != nil {
			abortWithError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "completeness": u.Completeness()})
}

// ListInterests returns the interest catalogue for profile editing.
func (h *MeHandler) ListInterests(c *gin.Context) {
	list, err := h.interests.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": list})
}

// UpdateLocation stores validated coordinates for the caller.
func (h *MeHandler) UpdateLocation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, domain.InvalidArgument(err.Error()))
		return
	}
	if !geo.Valid(*req.Latitude, *req.Longitude) {
		abortWithError(c, domain.InvalidArgument("coordinates out of range"))
		return
	}
	if err := h.users.UpdateCoordinates(c.Request.Context(), userID, *req.Latitude, *req.Longitude); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
