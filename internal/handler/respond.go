package handler

import (
	"log"
	"net/http"

	"github.com/dannyallport-cain/we-date/internal/domain"

	"github.com/gin-gonic/gin"
)

// abortWithError translates a domain error into an HTTP status and a JSON
// body carrying the machine-readable code. Unknown errors become a
// generic 500; nothing in the engine is allowed to crash the process.
func abortWithError(c *gin.Context, err error) {
	de := domain.AsError(err)
	if de == nil {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": de.Message, "code": de.Code}
	var status int
	switch de.Code {
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeUnauthorized:
		status = http.StatusUnauthorized
	case domain.CodeEntitlementRequired:
		status = http.StatusForbidden
	case domain.CodeQuotaExceeded:
		status = http.StatusTooManyRequests
		body["limit"] = de.Limit
		body["remaining"] = de.Remaining
	case domain.CodeBoostAlreadyActive, domain.CodeCooldownActive:
		status = http.StatusConflict
		if de.ExpiresAt != nil {
			body["expires_at"] = de.ExpiresAt
		}
	case domain.CodeInvalidArgument:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, body)
}
