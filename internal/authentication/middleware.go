package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expensaver/expensaver-api/internal/account"
)

// ContextClaimKey is the key under which the validated Claim is stored in Gin context.
const ContextClaimKey = "claim"

// AuthMiddleware rejects the request unless it carries a current access token.
// Downstream handlers read the Claim with ClaimFromContext or the bare account ID
// under account.ContextAccountIDKey.
func AuthMiddleware(service AuthenticationService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, err, http.StatusUnauthorized)
			return
		}

		claim, err := service.ValidateAccess(c.Request.Context(), rawToken)
		if err != nil {
			if errors.Is(err, ErrStoreUnavailable) {
				logger.Error("access token validation failed", zap.Error(err))
			} else {
				logger.Warn("access token rejected", zap.Error(err))
			}
			abortWithError(c, err, http.StatusUnauthorized)
			return
		}

		c.Set(ContextClaimKey, claim)
		c.Set(account.ContextAccountIDKey, claim.Subject)
		c.Next()
	}
}

func RoleMiddleware(requiredRole account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, ok := ClaimFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if claim.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "code": "forbidden"})
			return
		}
		c.Next()
	}
}

func ClaimFromContext(c *gin.Context) (*Claim, bool) {
	raw, exists := c.Get(ContextClaimKey)
	if !exists {
		return nil, false
	}
	claim, ok := raw.(*Claim)
	return claim, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformed
	}
	return parts[1], nil
}
