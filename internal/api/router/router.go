package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/api/handler"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/api/middleware"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/redis"
)

// Setup builds the Gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── Health ──
	r.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
		}
		c.JSON(200, gin.H{"status": "ok", "redis": redisStatus})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	}
	{
		availability := v1.Group("/availability")
		{
			availability.POST("/free-slots", h.Availability.FreeSlots)
			availability.POST("/conflicts", h.Availability.Conflicts)
			availability.POST("/status", h.Availability.Status)
			availability.POST("/suggestions", h.Availability.Suggestions)
			availability.POST("/date-check", h.Availability.CheckDate)
			availability.GET("/format-range", h.Availability.FormatRange)
		}

		loanRequests := v1.Group("/loan-requests")
		{
			loanRequests.POST("/validate", h.LoanRequest.Validate)
		}

		export := v1.Group("/export")
		{
			export.POST("/availability", h.Export.ExportAvailability)
		}

		calendars := v1.Group("/calendars")
		{
			calendars.POST("/export", h.Calendar.ExportCalendar)
			calendars.POST("/import", h.Calendar.ImportCalendar)
		}
	}

	return r
}
