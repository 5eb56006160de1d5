package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-screening-backend/config"
	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/auth"
)

// SessionAuth verifies the bearer token minted when the session was
// started and pins it to the session named in the path. A token for one
// session cannot drive another.
func SessionAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		sessionID, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session token", nil)
			c.Abort()
			return
		}

		if pathID := c.Param("id"); pathID != "" && pathID != sessionID {
			response.Error(c, http.StatusForbidden, "Token does not belong to this session", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeySessionID), sessionID)
		c.Next()
	}
}

// AdminAuth guards the stored-record endpoints with the static admin
// token from the environment. Unset token means the endpoints are off.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminToken == "" {
			response.Error(c, http.StatusServiceUnavailable, "Admin endpoints are not configured", nil)
			c.Abort()
			return
		}

		token := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.AdminToken)) != 1 {
			response.Error(c, http.StatusUnauthorized, "Invalid admin token", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
