package middleware

import (
	"context"
	"net/http"

	"shop-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const userKey = "currentUser"

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth resolves the session token from the "token" header (or
// cookie) and stores the user on the request context.
func RequireAuth(auth TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token == "" {
			token, _ = c.Cookie("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token was not provided"})
			return
		}

		user, err := auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRoles gates a route on the authenticated user's role.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token was not provided"})
			return
		}
		if !user.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized for this route"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
