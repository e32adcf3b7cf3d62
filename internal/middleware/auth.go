package middleware

import (
	"net/http"
	"strings"

	"coursehub/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey = "userId"
	emailKey  = "userEmail"
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request context. The token asserts identity only; admin checks happen
// against the store inside the privileged flows.
func RequireAuth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)

		c.Next()
	}
}

// OptionalAuth parses the token when one is present but never rejects the
// request. Anonymous viewers get course detail pages too.
func OptionalAuth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := tokens.Validate(parts[1]); err == nil {
					c.Set(userIDKey, claims.UserID)
					c.Set(emailKey, claims.Email)
				}
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
