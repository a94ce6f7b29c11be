package middleware

import (
	"net/http"
	"strings"

	"iotplatform"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
	"iotplatform/pkg"

	"github.com/gin-gonic/gin"
)

// DevUserID is the identity every request carries in dev mode
const DevUserID uint = 1

func AuthMiddleware(cfg iotplatform.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Mode == "dev" {
			c.Set(pkg.ContextUserID, DevUserID)
			c.Set(pkg.ContextUserRole, string(models.RoleAdmin))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Authorization header required"})
			return
		}

		// Bearer token format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Invalid authorization header format"})
			return
		}

		claims, err := pkg.ValidateTokenForIssuer(parts[1], cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "Could not validate credentials"})
			return
		}

		c.Set(pkg.ContextUserID, claims.UserID)
		c.Set(pkg.ContextUserRole, claims.Role)
		c.Next()
	}
}
