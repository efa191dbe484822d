package middleware

import (
	"net/http"
	"strings"

	"lostlink/internal/auth"
	"lostlink/internal/store"

	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the acting user from the Authorization header and sets
// it on the context. Missing or invalid tokens are ignored here so that
// optional-auth routes degrade to the anonymous view; AuthRequired enforces
// presence where it matters.
func LoadUser(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := auth.VerifyToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		// Resolve the actual record, not just the claims: a deleted user's
		// still-valid token must not authenticate.
		user, err := s.UserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(CheckUserKey, user)
		c.Next()
	}
}

// AuthRequired ensures a user was resolved by LoadUser.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		c.Next()
	}
}
