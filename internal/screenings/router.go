package screenings

import (
	"github.com/gin-gonic/gin"
)

func SetupScreeningRoutes(router *gin.RouterGroup, controller *Controller) {
	screenings := router.Group("/screenings")
	{
		screenings.POST("", controller.CreateScreening)
		screenings.GET("/available", controller.ListAvailableScreenings)
		screenings.GET("/today", controller.ListTodayScreenings)
		screenings.GET("/:id", controller.GetScreening)
	}

	// Screenings browsed per movie live under the movie resource.
	router.GET("/movies/:id/screenings", controller.ListScreeningsByMovie)
}
