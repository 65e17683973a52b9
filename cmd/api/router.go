package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"speakers-backend/internal/infrastructure/storage"
	"speakers-backend/internal/shared/middleware"
	"speakers-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Photos saved by the local driver are served directly; the minio
	// driver serves them from the bucket endpoint instead.
	if local, ok := c.Assets.(*storage.LocalStore); ok {
		router.Static("/uploads", local.Dir())
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupSpeakerRoutes(api, c)
	}

	return router
}

func setupSpeakerRoutes(api *gin.RouterGroup, c *container.Container) {
	// Photo staging runs before the handler so the service always works
	// with an already stored file, whatever the outcome of the request.
	uploadPhoto := middleware.SpeakerPhotoUpload(c.Assets)

	speakers := api.Group("/eminent-speakers")
	{
		speakers.POST("", uploadPhoto, c.SpeakerHandler.Create)
		speakers.GET("", c.SpeakerHandler.List)
		speakers.GET("/:id", c.SpeakerHandler.GetByID)
		speakers.PUT("/:id", uploadPhoto, c.SpeakerHandler.Update)
		speakers.DELETE("/:id", c.SpeakerHandler.Delete)
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

			if err := appCtx.DB.Ping(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

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
