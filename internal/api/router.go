// Package api exposes the honeypot engine over HTTP. The message endpoints
// always answer 200 with a well-formed envelope; transport-level rejections
// (auth, throttling) are the only non-200 responses.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scamtrap/honeypot-engine/internal/config"
	"github.com/scamtrap/honeypot-engine/internal/pipeline"
	"github.com/scamtrap/honeypot-engine/internal/signals"
)

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, p *pipeline.Pipeline, extractor *signals.Extractor, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS, configurable via ALLOWED_ORIGINS (comma-separated, * for any).
	allowedOrigins := cfg.API.AllowedOrigins
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, x-api-key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if cfg.API.RateLimitPerMin > 0 {
		r.Use(NewRateLimiter(cfg.API.RateLimitPerMin, cfg.API.RateLimitBurst).Middleware())
	}

	handler := &Handler{pipeline: p, extractor: extractor, log: log}

	r.GET("/", handler.handleRoot)

	protected := r.Group("/", APIKeyMiddleware(cfg.API.Key))
	{
		protected.POST("/", handler.handleMessage)
		protected.POST("/honeypot", handler.handleMessage)
		protected.POST("/debug", handler.handleDebug)
	}

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Endpoint, gin.WrapH(promhttp.Handler()))
	}

	return r
}
