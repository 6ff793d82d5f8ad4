// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/bookings"
	"cinebook/internal/locks"
	"cinebook/internal/movies"
	"cinebook/internal/notifications"
	"cinebook/internal/screenings"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config           *config.Config
	db               *database.DB
	locker           locks.Coordinator
	publisher        notifications.Producer
	log              *logger.Logger
	screeningService screenings.Service // shared with the booking pipeline
}

// NewRouter creates a new router instance. publisher may be nil when event
// publishing is disabled.
func NewRouter(cfg *config.Config, db *database.DB, locker locks.Coordinator, publisher notifications.Producer, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		locker:    locker,
		publisher: publisher,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupMovieRoutes(api)

		// Screening routes must come before booking routes so the booking
		// pipeline can share the screening service
		r.setupScreeningRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupMovieRoutes configures the movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())

	var catalogCache cache.Service
	if r.db.GetRedisClient() != nil {
		catalogCache = cache.NewService(r.db.GetRedisClient())
	}

	movieService := movies.NewService(movieRepo, catalogCache)
	movieController := movies.NewController(movieService)

	movies.SetupMovieRoutes(rg, movieController)
}

// setupScreeningRoutes configures screening catalog and ledger routes
func (r *Router) setupScreeningRoutes(rg *gin.RouterGroup) {
	screeningRepo := screenings.NewRepository(r.db.GetPostgreSQL())
	r.screeningService = screenings.NewService(screeningRepo)
	screeningController := screenings.NewController(r.screeningService)

	screenings.SetupScreeningRoutes(rg, screeningController)
}

// setupBookingRoutes configures the admission pipeline routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())

	var publisher bookings.EventPublisher
	if r.publisher != nil {
		publisher = r.publisher
	}

	bookingService := bookings.NewService(bookingRepo, r.screeningService, r.locker, publisher, r.log)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}
