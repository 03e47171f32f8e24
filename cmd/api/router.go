package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/shared/audit"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	api.Use(audit.Middleware(c.Audit))
	{
		api.GET("/health", healthHandler(c))

		api.GET("/books", c.BookHandler.List)
		api.POST("/books", c.BookHandler.Upsert)

		api.GET("/reviews", c.ReviewHandler.ListByBook)
		api.POST("/reviews", c.ReviewHandler.Add)
		api.DELETE("/reviews/:id", c.ReviewHandler.Delete)
	}

	return router
}

// healthHandler reports per-store connectivity. Redis being down degrades the
// report without failing it.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{
			"postgres": "ok",
			"mongo":    "ok",
			"redis":    "disabled",
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Mongo.HealthCheck(ctx.Request.Context()); err != nil {
			checks["mongo"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if c.Cache != nil {
			checks["redis"] = "ok"
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				checks["redis"] = err.Error()
			}
		}

		healthy := status == http.StatusOK
		response.JSON(ctx, status, gin.H{
			"healthy": healthy,
			"checks":  checks,
		})
	}
}
