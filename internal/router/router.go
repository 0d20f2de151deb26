package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/anypeace-oss/jeda/internal/handler"
	"github.com/anypeace-oss/jeda/internal/middleware"
	"github.com/anypeace-oss/jeda/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	settingsHandler *handler.SettingsHandler,
	statsHandler *handler.StatsHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(rate.Limit(5), 10))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	settings := api.Group("/settings")
	settings.Use(middleware.Auth(authService))
	settings.GET("", settingsHandler.Get)
	settings.POST("", settingsHandler.Update)

	stats := api.Group("/stats")
	stats.Use(middleware.Auth(authService))
	stats.POST("/track", statsHandler.Track)
	stats.GET("/summary", statsHandler.Summary)
	stats.GET("/rankings", statsHandler.Rankings)

	return engine
}
