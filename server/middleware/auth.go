package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptkit/auth"
	"github.com/kbukum/promptkit/observability"
)

// AuthConfig configures the bearer authentication middleware.
type AuthConfig struct {
	// Validator verifies the bearer token.
	Validator auth.TokenValidator
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
}

// Auth validates "Authorization: Bearer <token>" and stores the claims in
// the request context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		claims, err := cfg.Validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		ctx := auth.WithClaims(c.Request.Context(), claims)
		observability.SetSpanAttribute(ctx, observability.AttrSubject, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
