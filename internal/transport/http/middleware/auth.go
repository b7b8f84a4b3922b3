package middleware

import (
	"net/http"
	"strings"

	applog "github.com/ErlanBelekov/task-tracker/internal/log"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// TokenResolver maps a raw session token to a user ID. Implemented by
// usecase.AuthUsecase, which owns the signing key; this middleware only
// extracts the token.
type TokenResolver interface {
	ResolveToken(rawToken string) (string, error)
}

// Auth resolves the Bearer token and sets "userID" in the gin context.
func Auth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := resolver.ResolveToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set("userID", userID)
		c.Request = c.Request.WithContext(applog.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
