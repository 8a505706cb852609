package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"certificates-backend/internal/shared/middleware"
	"certificates-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupEventRoutes(v1, c)
		setupCertificateRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)

		auth.POST("/register",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.AdminMiddleware(),
			c.UserHandler.Register)

		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
		auth.PUT("/password", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.ChangePassword)
	}
}

func setupEventRoutes(v1 *gin.RouterGroup, c *container.Container) {
	events := v1.Group("/events")
	events.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		events.POST("", c.EventHandler.Create)
		events.GET("", c.EventHandler.List)
		events.GET("/:id", c.EventHandler.Get)
		events.PUT("/:id", c.EventHandler.Update)
		events.DELETE("/:id", c.EventHandler.Delete)

		events.POST("/:id/certificates/import", c.CertificateHandler.Import)
		events.POST("/:id/certificates", c.CertificateHandler.CreateManual)
		events.GET("/:id/certificates", c.CertificateHandler.ListByEvent)
		events.GET("/:id/certificates/summary", c.CertificateHandler.Summary)
		events.GET("/:id/certificates/export", c.CertificateHandler.ExportArchive)
	}
}

func setupCertificateRoutes(v1 *gin.RouterGroup, c *container.Container) {
	certs := v1.Group("/certificates")
	{
		// Public: verification by printed code and self-service download.
		certs.POST("/validate", c.CertificateHandler.Validate)
		certs.GET("/hash/:hash/download", c.CertificateHandler.DownloadByHash)
	}

	operator := v1.Group("/certificates")
	operator.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		operator.GET("/:id", c.CertificateHandler.Get)
		operator.PUT("/:id", c.CertificateHandler.Update)
		operator.DELETE("/:id", c.CertificateHandler.Delete)
		operator.GET("/:id/download", c.CertificateHandler.Download)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/certificates/cleanup", c.CertificateHandler.TriggerCleanup)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis being down degrades verification caching only, so it never
		// flips the status code.
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
