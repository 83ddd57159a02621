package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/sangkips/billbook-api/internal/config"
)

var (
	defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// always allowed, whatever the configuration says
	requiredCORSHeaders = []string{"Authorization", IdempotencyKeyHeader}
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     lo.Ternary(len(cfg.AllowedOrigins) > 0, cfg.AllowedOrigins, defaultCORSOrigins),
		AllowMethods:     lo.Ternary(len(cfg.AllowedMethods) > 0, cfg.AllowedMethods, defaultCORSMethods),
		AllowHeaders:     lo.Union(lo.Ternary(len(cfg.AllowedHeaders) > 0, cfg.AllowedHeaders, defaultCORSHeaders), requiredCORSHeaders),
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", ReplayedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(corsConfig)
}
