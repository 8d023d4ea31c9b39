package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/response"
	"vidtube/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenVerifier is the slice of the token issuer the guard needs.
type TokenVerifier interface {
	Verify(raw string, kind token.Kind) (*token.Claims, error)
}

// UserResolver loads the identity behind a verified token.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticate validates the access token and attaches the live identity
// to the request context under "user_id" and "user". The cookie copy of
// the token wins over the Authorization header. The guard makes no
// ownership decisions; handlers compare owner ids themselves.
func Authenticate(tokens TokenVerifier, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			response.AbortError(c, http.StatusUnauthorized, "NO_TOKEN", "Authentication required")
			return
		}

		claims, err := tokens.Verify(raw, token.KindAccess)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				response.AbortError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token expired, please refresh")
				return
			}
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Access token is invalid")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Token outlived the account.
				response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
				return
			}
			response.AbortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve user")
			return
		}

		user.Sanitize()
		c.Set("user_id", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
