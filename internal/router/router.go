package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/mealfinder/internal/api"
	"github.com/pageza/mealfinder/internal/metrics"
	"github.com/pageza/mealfinder/internal/middleware"
)

// Options tunes the router
type Options struct {
	CORSOrigins   []string
	SessionMaxAge int
}

// SetupRouter configures the application routes
func SetupRouter(pageHandler *api.PageHandler, mealsHandler *api.MealsHandler, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Browser page
	site := router.Group("")
	site.Use(middleware.Session(opts.SessionMaxAge))
	pageHandler.RegisterRoutes(site)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.CORS(opts.CORSOrigins), middleware.ErrorHandler(api.StatusFor))
	mealsHandler.RegisterRoutes(v1)

	return router
}

// HealthCheck returns the health status of the service
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Meal Finder is running",
	})
}
