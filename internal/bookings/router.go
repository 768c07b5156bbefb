package bookings

import (
	"audease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.GET("/availability", controller.CheckAvailability) // GET /api/v1/bookings/availability
		bookings.GET("/event-types", controller.GetEventTypes)      // GET /api/v1/bookings/event-types
		bookings.POST("", controller.CreateBooking)                 // POST /api/v1/bookings
		bookings.GET("", controller.GetMyBookings)                  // GET /api/v1/bookings
		bookings.GET("/:id", controller.GetBooking)                 // GET /api/v1/bookings/:id
		bookings.PATCH("/:id/cancel", controller.CancelBooking)     // PATCH /api/v1/bookings/:id/cancel
	}

	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListBookings)                  // GET /api/v1/admin/bookings
		admin.PATCH("/:id/decision", controller.DecideBooking)  // PATCH /api/v1/admin/bookings/:id/decision
	}
}
