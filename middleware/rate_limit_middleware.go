package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/dto"
)

// RateLimitHandler throttles clients per IP: each client gets Max requests
// per Window, refilled continuously.
type RateLimitHandler interface {
	RateLimitMiddleware() gin.HandlerFunc
}

type rateLimitHandler struct {
	logger   outbound.LoggerPort
	cfg      *config.RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimitHandler(cfg *config.RateLimitConfig, logger outbound.LoggerPort) RateLimitHandler {
	return &rateLimitHandler{
		logger:   logger,
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (h *rateLimitHandler) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.cfg.Enabled {
			c.Next()

			return
		}

		if !h.limiterFor(c.ClientIP()).Allow() {
			h.logger.WarnWithFields("Rate limit exceeded", map[string]interface{}{
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				"Rate limit exceeded",
				"rate_limit_error", nil, "too_many_requests"))

			return
		}

		c.Next()
	}
}

func (h *rateLimitHandler) limiterFor(clientIP string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	limiter, ok := h.limiters[clientIP]
	if !ok {
		perSecond := float64(h.cfg.Max) / h.cfg.Window.Seconds()
		limiter = rate.NewLimiter(rate.Limit(perSecond), h.cfg.Max)
		h.limiters[clientIP] = limiter
	}

	return limiter
}
