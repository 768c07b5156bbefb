package venues

import (
	"audease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupVenueRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Catalog browsing and recommendation for any signed-in user
	venues := rg.Group("/venues")
	venues.Use(middleware.JWTAuth())
	{
		venues.GET("", controller.ListVenues)              // GET /api/v1/venues
		venues.GET("/recommend", controller.RecommendVenue) // GET /api/v1/venues/recommend?expected_attendance=120
		venues.GET("/:id", controller.GetVenue)            // GET /api/v1/venues/:id
	}

	// Catalog management is admin-only
	admin := rg.Group("/admin/venues")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateVenue)            // POST /api/v1/admin/venues
		admin.PUT("/:id", controller.UpdateVenue)         // PUT /api/v1/admin/venues/:id
		admin.DELETE("/:id", controller.DeactivateVenue)  // DELETE /api/v1/admin/venues/:id
	}
}
