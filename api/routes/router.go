package routes

import (
	"net/http"
	"time"

	"audease/internal/assistant"
	"audease/internal/auth"
	"audease/internal/bookings"
	"audease/internal/scheduling"
	"audease/internal/shared/config"
	"audease/internal/shared/database"
	"audease/internal/shared/validation"
	"audease/internal/venues"
	"audease/pkg/cache"
	"audease/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	log          *logger.Logger
	cacheService cache.Service
	notifier     bookings.Notifier

	bookingService bookings.Service
	venueService   venues.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		log:          log,
		cacheService: cache.NewService(db.GetRedisClient()),
	}
}

// SetNotifier attaches the booking event publisher. Must be called
// before SetupRoutes.
func (r *Router) SetNotifier(notifier bookings.Notifier) {
	r.notifier = notifier
}

// BookingService exposes the wired booking service for background jobs.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	validation.RegisterCustom()

	r.setupHealthRoutes(engine)

	workingWindows, err := scheduling.ParseWindows(r.config.Booking.WorkingHours)
	if err != nil {
		return err
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupVenueRoutes(api)
		r.setupBookingRoutes(api, workingWindows)
		r.setupAssistantRoutes(api)
	}
	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "audease-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "audease-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo)
	venueService.SetCacheService(r.cacheService)
	venueController := venues.NewController(venueService)

	r.venueService = venueService

	venues.SetupVenueRoutes(rg, venueController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, workingWindows []scheduling.Interval) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, venueRepo, workingWindows, r.log)
	bookingService.SetCacheService(r.cacheService)
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
		bookingService.SetUserDirectory(auth.NewRepository(r.db.GetPostgreSQL()))
	}
	bookingController := bookings.NewController(bookingService)

	r.bookingService = bookingService

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupAssistantRoutes(rg *gin.RouterGroup) {
	assistantService := assistant.NewService(r.bookingService, r.venueService, r.cacheService, r.config.Redis.ChatSessionTTL)
	assistantController := assistant.NewController(assistantService)

	assistant.SetupAssistantRoutes(rg, assistantController)
}
