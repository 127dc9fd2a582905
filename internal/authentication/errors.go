package authentication

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrNotFound            = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid identifier or password")
	ErrMissingToken        = errors.New("token missing")
	ErrMalformed           = errors.New("token malformed")
	ErrExpired             = errors.New("token expired")
	ErrInvalidSignature    = errors.New("token signature invalid")
	ErrSuperseded          = errors.New("token superseded by a newer login")
	ErrStoreUnavailable    = errors.New("account store unavailable")
)

const (
	codeReauthenticate = "reauthenticate"
	retryAfterSeconds  = 1
)

// errorResponse maps service errors onto HTTP. notFoundStatus differs between
// credential lookups (404) and token routes (401).
func errorResponse(err error, notFoundStatus int) (int, gin.H) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_input"}
	case errors.Is(err, ErrDuplicateIdentifier):
		return http.StatusConflict, gin.H{"error": "identifier already registered", "code": "duplicate_identifier"}
	case errors.Is(err, ErrNotFound):
		return notFoundStatus, gin.H{"error": "account not found", "code": "not_found"}
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"error": "invalid credentials", "code": "invalid_credentials"}
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized, gin.H{"error": "token required", "code": "missing_token"}
	case errors.Is(err, ErrMalformed):
		return http.StatusUnauthorized, gin.H{"error": "malformed token", "code": "malformed_token"}
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusUnauthorized, gin.H{"error": "invalid token signature", "code": "invalid_signature"}
	case errors.Is(err, ErrExpired):
		return http.StatusUnauthorized, gin.H{"error": "session expired, please log in again", "code": codeReauthenticate}
	case errors.Is(err, ErrSuperseded):
		return http.StatusUnauthorized, gin.H{"error": "session replaced by a newer login, please log in again", "code": codeReauthenticate}
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable", "code": "store_unavailable"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal error", "code": "internal"}
	}
}

func abortWithError(c *gin.Context, err error, notFoundStatus int) {
	status, body := errorResponse(err, notFoundStatus)
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	c.AbortWithStatusJSON(status, body)
}
