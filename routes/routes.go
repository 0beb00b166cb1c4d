package routes

import (
	"time"

	"dashdine/handlers"
	"dashdine/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Gig          *handlers.GigHandler
	Availability *handlers.AvailabilityHandler
	Progress     *handlers.ProgressHandler
}

// RegisterRoutes wires all rider endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api/rider")
	api.Use(middleware.JWTAuthRiderMiddleware())
	{
		api.GET("/gigs/dates", hb.Gig.GetAvailableDates)
		api.GET("/gigs/slots/:date", hb.Gig.GetSlotsForDate)
		api.POST("/gigs/selection/toggle", hb.Gig.ToggleSlotSelection)
		api.DELETE("/gigs/selection", hb.Gig.ClearSelection)
		api.POST("/gigs/book", hb.Gig.BookSelection)
		api.GET("/gigs", hb.Gig.ListGigs)

		api.POST("/availability/online", hb.Availability.GoOnline)
		api.POST("/availability/offline", hb.Availability.GoOffline)
		api.GET("/availability", hb.Availability.GetAvailability)

		api.GET("/progress/today", hb.Progress.GetTodayProgress)
	}
}
