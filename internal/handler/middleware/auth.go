package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"homestay/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator is the slice of the jwt service the middleware needs.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const ctxUserIDKey = "user_id"

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func extractToken(c *gin.Context) string {
	token := cookie.GetAccessToken(c)
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}
	}
	return token
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		userID, err := m.tokenValidator.ValidateAccessToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not
// abort on failure. Listing and profile reads use it to decide how much the
// viewer may see.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := m.tokenValidator.ValidateAccessToken(token)
		if err != nil {
			// Invalid token; continue as an anonymous viewer.
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// ViewerID returns the authenticated user or nil for anonymous requests.
func ViewerID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}
