package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agentdesk/internal/domain"
	"agentdesk/internal/infrastructure/auth"
	"agentdesk/internal/infrastructure/metrics"
)

const principalContextKey = "principal"

// AuthMiddleware validates the bearer token and attaches the principal
// to the request.
func AuthMiddleware(issuer *auth.TokenIssuer, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		principal, err := issuer.Verify(c.Request.Context(), token)
		if err != nil {
			metrics.RecordAuthAttempt("token", "failure")
			logger.Warn().
				Err(err).
				Str("path", c.Request.URL.Path).
				Str("error_code", "7cc94dc0-00ec-4782-9bce-1c7492753ae1").
				Msg("Rejected bearer token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		metrics.RecordAuthAttempt("token", "success")
		c.Set(principalContextKey, *principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
