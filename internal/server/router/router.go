package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/egguard/egguard-backend/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(eggs *handlers.EggHandler, farms *handlers.FarmHandler, notifications *handlers.NotificationHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/robots/:robot_id/eggs", eggs.Register)
		v1.GET("/farms/:farm_id/eggs", eggs.ListByFarm)
		v1.PATCH("/farms/:farm_id/eggs/picked", eggs.MarkPicked)

		v1.GET("/farms/:farm_id/stats", farms.GetStats)

		v1.POST("/robots/:robot_id/notifications", notifications.Register)
		v1.GET("/farms/:farm_id/notifications", notifications.ListByFarm)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
