package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/dto"
)

type AuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
}

type authHandler struct {
	logger outbound.LoggerPort
	cfg    *config.AuthConfig
}

func NewAuthHandler(cfg *config.AuthConfig, logger outbound.LoggerPort) AuthHandler {
	return &authHandler{
		logger: logger,
		cfg:    cfg,
	}
}

// AuthMiddleware checks the bearer token against the configured static API
// key. A no-op when auth is disabled.
func (h *authHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.cfg.Enabled {
			c.Next()

			return
		}

		apiKey := bearerToken(c.GetHeader("Authorization"))
		if apiKey == "" || apiKey != h.cfg.APIKey {
			h.logger.WarnWithFields("Unauthorized request: invalid API key", map[string]interface{}{
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				"Invalid authentication credentials",
				"invalid_request_error", nil, "invalid_api_key"))

			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}

	return parts[1]
}
