package domain

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeEntitlementRequired = "PREMIUM_REQUIRED"
	CodeQuotaExceeded       = "QUOTA_EXCEEDED"
	CodeBoostAlreadyActive  = "BOOST_ALREADY_ACTIVE"
	CodeCooldownActive      = "COOLDOWN_ACTIVE"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
)

// Error is the engine's error taxonomy. Handlers translate it to an HTTP
// status and a JSON body; extra fields (quota, expiry) ride along so
// callers can route to an upsell or show the existing boost.
type Error struct {
	Code      string
	Message   string
	Limit     int        // QUOTA_EXCEEDED
	Remaining int        // QUOTA_EXCEEDED
	ExpiresAt *time.Time // BOOST_ALREADY_ACTIVE, COOLDOWN_ACTIVE
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func InvalidArgument(msg string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

func EntitlementRequired(msg string) *Error {
	return &Error{Code: CodeEntitlementRequired, Message: msg}
}

func QuotaExceeded(limit int) *Error {
	return &Error{
		Code:    CodeQuotaExceeded,
		Message: "daily like limit reached",
		Limit:   limit,
	}
}

func BoostAlreadyActive(expiresAt time.Time) *Error {
	return &Error{
		Code:      CodeBoostAlreadyActive,
		Message:   "boost already active",
		ExpiresAt: &expiresAt,
	}
}

func CooldownActive(until time.Time) *Error {
	return &Error{
		Code:      CodeCooldownActive,
		Message:   "boost cooldown active",
		ExpiresAt: &until,
	}
}

// AsError unwraps err into a domain *Error, mapping common infra errors
// (gorm record-not-found) on the way. Returns nil for unknown errors so
// handlers fall back to a generic 500.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record not found")
	}
	return nil
}
