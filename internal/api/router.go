package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfinder/internal/config"
	"wayfinder/internal/handler"
	"wayfinder/internal/middleware"
)

// Handlers groups the handlers mounted by the router.
type Handlers struct {
	Trips    *handler.TripHandler
	Visits   *handler.VisitHandler
	Activity *handler.ActivityHandler
	Ingest   *handler.IngestHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the map frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Wayfinder API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		// Ingestion from the Overland app, guarded by the static
		// verification token
		api.POST("/overland",
			middleware.RequireVerificationToken(cfg.VerificationToken),
			h.Ingest.PostOverland,
		)

		// Read API; JWT auth only when a secret is configured
		read := api.Group("")
		read.Use(middleware.RequireJWT(cfg.JWTSecret))
		{
			read.GET("/trips/plot", h.Trips.GetTripPlot)
			read.GET("/visits/plot", h.Visits.GetVisitPlot)
			read.GET("/activity/history", h.Activity.GetHistory)
		}
	}

	return r
}
